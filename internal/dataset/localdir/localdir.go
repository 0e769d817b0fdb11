// Package localdir reads FLEURS samples from a local mirror of the dataset.
//
// The mirror follows the layout of the upstream archive: for each language
// config L and split S, L/S.tsv lists the utterances and L/audio/S/ holds
// the referenced WAV files.
package localdir

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fleursexport/internal/audio"
	"fleursexport/internal/dataset"
	"fleursexport/internal/logging"
)

// TSV columns of a FLEURS split file.
const (
	colID = iota
	colFileName
	colRawTranscription
	colTranscription
	minColumns
)

// Builder opens streams over a local FLEURS mirror.
type Builder struct {
	root   string
	logger *slog.Logger
}

// New returns a Builder rooted at root.
func New(root string, logger *slog.Logger) (*Builder, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("localdir: root directory is required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("localdir: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("localdir: %s is not a directory", root)
	}
	return &Builder{root: root, logger: logging.NewComponentLogger(logger, "localdir")}, nil
}

// Open implements dataset.Builder.
func (b *Builder) Open(ctx context.Context, req dataset.Request) (dataset.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	src, err := b.openIter(req.SourceLang, req.Split)
	if err != nil {
		return nil, err
	}
	var tgt dataset.RowIter
	if req.TargetLang != req.SourceLang {
		t, err := b.openIter(req.TargetLang, req.Split)
		if err != nil {
			_ = src.Close()
			return nil, err
		}
		tgt = t
	}
	b.logger.Debug("local stream opened",
		logging.String(logging.FieldEventType, "stream_opened"),
		logging.String("request", req.String()),
		logging.String("root", b.root),
	)
	return dataset.PairRows(req, src, tgt), nil
}

func (b *Builder) openIter(lang, split string) (*tsvIter, error) {
	path := filepath.Join(b.root, lang, split+".tsv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s (no %s)", dataset.ErrUnknownLanguage, lang, path)
	}
	if err != nil {
		return nil, fmt.Errorf("localdir: open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.Comma = '\t'
	// Transcripts may contain bare quotes.
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return &tsvIter{
		file:     f,
		reader:   r,
		path:     path,
		audioDir: filepath.Join(b.root, lang, "audio", split),
	}, nil
}

type tsvIter struct {
	file     *os.File
	reader   *csv.Reader
	path     string
	audioDir string
	line     int
}

func (it *tsvIter) NextRow(ctx context.Context) (dataset.Row, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Row{}, err
	}
	for {
		record, err := it.reader.Read()
		if errors.Is(err, io.EOF) {
			return dataset.Row{}, io.EOF
		}
		it.line++
		if err != nil {
			return dataset.Row{}, fmt.Errorf("localdir: read %s line %d: %w", it.path, it.line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < minColumns {
			return dataset.Row{}, fmt.Errorf("localdir: %s line %d: expected at least %d columns, got %d", it.path, it.line, minColumns, len(record))
		}
		text := record[colRawTranscription]
		if text == "" {
			text = record[colTranscription]
		}
		audioPath := filepath.Join(it.audioDir, record[colFileName])
		return dataset.Row{
			ID:   strings.TrimSpace(record[colID]),
			Text: text,
			LoadAudio: func(context.Context) (dataset.Waveform, error) {
				return readWAV(audioPath)
			},
		}, nil
	}
}

func (it *tsvIter) Close() error {
	return it.file.Close()
}

func readWAV(path string) (dataset.Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataset.Waveform{}, fmt.Errorf("localdir: open audio: %w", err)
	}
	defer f.Close()
	w, err := audio.DecodeWAV(f)
	if err != nil {
		return dataset.Waveform{}, fmt.Errorf("localdir: decode %s: %w", path, err)
	}
	return w, nil
}
