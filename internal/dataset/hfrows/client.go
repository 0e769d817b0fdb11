package hfrows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleursexport/internal/audio"
	"fleursexport/internal/dataset"
	"fleursexport/internal/logging"
)

const (
	defaultBaseURL     = "https://datasets-server.huggingface.co"
	defaultDataset     = "google/fleurs"
	defaultUserAgent   = "fleursexport/dev"
	defaultHTTPTimeout = 60 * time.Second
	// MaxPageSize is the largest page the rows endpoint serves.
	MaxPageSize = 100
)

// Cache stores response bodies by key. rowcache.Store satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// Config describes the datasets-server client configuration.
type Config struct {
	BaseURL    string
	Dataset    string
	Token      string
	UserAgent  string
	PageSize   int
	HTTPClient *http.Client
	Cache      Cache
	Logger     *slog.Logger
}

// Client reads FLEURS rows from the Hugging Face datasets-server API.
type Client struct {
	baseURL   *url.URL
	dataset   string
	token     string
	userAgent string
	pageSize  int
	http      *http.Client
	cache     Cache
	logger    *slog.Logger
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("hfrows: parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("hfrows: base url must be http(s), got %q", base)
	}
	name := strings.TrimSpace(cfg.Dataset)
	if name == "" {
		name = defaultDataset
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:   baseURL,
		dataset:   name,
		token:     strings.TrimSpace(cfg.Token),
		userAgent: userAgent,
		pageSize:  pageSize,
		http:      client,
		cache:     cfg.Cache,
		logger:    logging.NewComponentLogger(cfg.Logger, "hfrows"),
	}, nil
}

// Dataset returns the dataset repository the client reads.
func (c *Client) Dataset() string {
	return c.dataset
}

// Open implements dataset.Builder. The first source page is fetched eagerly
// so an unknown language fails here rather than on the first Next.
func (c *Client) Open(ctx context.Context, req dataset.Request) (dataset.Stream, error) {
	if c == nil {
		return nil, errors.New("hfrows: client is nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src := c.newIter(req.SourceLang, req.Split)
	if err := src.fill(ctx); err != nil {
		return nil, err
	}
	var tgt dataset.RowIter
	if req.TargetLang != req.SourceLang {
		tgt = c.newIter(req.TargetLang, req.Split)
	}
	c.logger.Debug("rows stream opened",
		logging.String(logging.FieldEventType, "stream_opened"),
		logging.String("request", req.String()),
		logging.Int("num_rows_total", src.total),
	)
	return dataset.PairRows(req, src, tgt), nil
}

// CheckDataset asks the is-valid endpoint whether the dataset can be read.
func (c *Client) CheckDataset(ctx context.Context) error {
	endpoint := c.baseURL.JoinPath("is-valid")
	endpoint.RawQuery = url.Values{"dataset": {c.dataset}}.Encode()
	body, err := c.get(ctx, endpoint.String(), "is-valid")
	if err != nil {
		return err
	}
	var payload validResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("hfrows: decode is-valid response: %w", err)
	}
	if !payload.Preview && !payload.Viewer {
		return fmt.Errorf("hfrows: dataset %s has no rows preview", c.dataset)
	}
	return nil
}

// Page fetches one page of rows for a language config and split.
func (c *Client) Page(ctx context.Context, lang, split string, offset, length int) (RowsPage, error) {
	key := fmt.Sprintf("rows:%s:%s:%s:%d:%d", c.dataset, lang, split, offset, length)
	body, hit, err := c.cacheGet(ctx, key)
	if err != nil {
		return RowsPage{}, err
	}
	if !hit {
		endpoint := c.baseURL.JoinPath("rows")
		endpoint.RawQuery = url.Values{
			"dataset": {c.dataset},
			"config":  {lang},
			"split":   {split},
			"offset":  {strconv.Itoa(offset)},
			"length":  {strconv.Itoa(length)},
		}.Encode()
		body, err = c.get(ctx, endpoint.String(), "rows")
		if err != nil {
			if isStatus(err, http.StatusNotFound) {
				return RowsPage{}, fmt.Errorf("%w: %s/%s: %w", dataset.ErrUnknownLanguage, lang, split, err)
			}
			return RowsPage{}, err
		}
	}

	var page RowsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return RowsPage{}, fmt.Errorf("hfrows: decode rows response: %w", err)
	}
	if !hit {
		c.cachePut(ctx, key, body)
	}
	c.logger.Debug("rows page fetched",
		logging.String(logging.FieldLanguage, lang),
		logging.Int("offset", offset),
		logging.Int("rows", len(page.Rows)),
		logging.Bool("cached", hit),
	)
	return page, nil
}

// Audio downloads and decodes a WAV audio cell.
func (c *Client) Audio(ctx context.Context, key, src string) (dataset.Waveform, error) {
	body, hit, err := c.cacheGet(ctx, key)
	if err != nil {
		return dataset.Waveform{}, err
	}
	if !hit {
		body, err = c.get(ctx, src, "audio")
		if err != nil {
			return dataset.Waveform{}, err
		}
	}
	w, err := audio.DecodeWAV(bytes.NewReader(body))
	if err != nil {
		return dataset.Waveform{}, fmt.Errorf("hfrows: decode audio: %w", err)
	}
	if !hit {
		c.cachePut(ctx, key, body)
	}
	return w, nil
}

func (c *Client) get(ctx context.Context, target, what string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("hfrows: build %s request: %w", what, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hfrows: %s request failed: %w", what, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{
			What:   what,
			Status: resp.Status,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hfrows: read %s response: %w", what, err)
	}
	return body, nil
}

func (c *Client) cacheGet(ctx context.Context, key string) ([]byte, bool, error) {
	if c.cache == nil {
		return nil, false, nil
	}
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("hfrows: cache lookup %s: %w", key, err)
	}
	return data, ok, nil
}

func (c *Client) cachePut(ctx context.Context, key string, data []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, key, data); err != nil {
		logging.WarnWithContext(c.logger, "cache write failed", "cache_write_failed",
			logging.String("key", key),
			logging.Error(err),
			logging.String(logging.FieldImpact, "response will be fetched again next run"),
		)
	}
}

// StatusError reports a non-2xx response.
type StatusError struct {
	What   string
	Status string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hfrows: %s failed (%s): %s", e.What, e.Status, e.Body)
}

func isStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}
