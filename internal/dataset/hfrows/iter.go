package hfrows

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fleursexport/internal/dataset"
)

type rowIter struct {
	client *Client
	lang   string
	split  string
	offset int
	total  int
	buf    []RowEntry
	done   bool
}

func (c *Client) newIter(lang, split string) *rowIter {
	return &rowIter{client: c, lang: lang, split: split, total: -1}
}

// fill fetches the next page when the buffer is empty.
func (it *rowIter) fill(ctx context.Context) error {
	if len(it.buf) > 0 || it.done {
		return nil
	}
	if it.total >= 0 && it.offset >= it.total {
		it.done = true
		return nil
	}
	page, err := it.client.Page(ctx, it.lang, it.split, it.offset, it.client.pageSize)
	if err != nil {
		return err
	}
	it.total = page.NumRowsTotal
	if len(page.Rows) == 0 {
		it.done = true
		return nil
	}
	it.offset += len(page.Rows)
	it.buf = page.Rows
	return nil
}

func (it *rowIter) NextRow(ctx context.Context) (dataset.Row, error) {
	if err := it.fill(ctx); err != nil {
		return dataset.Row{}, err
	}
	if len(it.buf) == 0 {
		return dataset.Row{}, io.EOF
	}
	entry := it.buf[0]
	it.buf = it.buf[1:]

	src := entry.Row.audioSrc()
	key := fmt.Sprintf("audio:%s:%s:%s:%d", it.client.dataset, it.lang, it.split, entry.RowIdx)
	client := it.client
	return dataset.Row{
		ID:   entry.Row.id(),
		Text: entry.Row.text(),
		LoadAudio: func(ctx context.Context) (dataset.Waveform, error) {
			if src == "" {
				return dataset.Waveform{}, errors.New("audio cell is empty")
			}
			return client.Audio(ctx, key, src)
		},
	}, nil
}

func (it *rowIter) Close() error {
	it.buf = nil
	it.done = true
	return nil
}
