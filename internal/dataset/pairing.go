package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Row is one record of a language config before pairing. LoadAudio is only
// invoked when the request asks for audio on that side.
type Row struct {
	ID        string
	Text      string
	LoadAudio func(ctx context.Context) (Waveform, error)
}

// RowIter walks the rows of one language config and split in dataset order.
// NextRow returns io.EOF once the rows are exhausted.
type RowIter interface {
	NextRow(ctx context.Context) (Row, error)
	Close() error
}

// PairRows turns row iterators into a sample stream. When tgt is nil both
// sides come from the same source row. Otherwise target rows are read
// incrementally and matched by ID; source rows without a target are skipped.
func PairRows(req Request, src, tgt RowIter) Stream {
	return &pairedStream{
		req:  req,
		src:  src,
		tgt:  tgt,
		seen: make(map[string]Row),
	}
}

type pairedStream struct {
	req     Request
	src     RowIter
	tgt     RowIter
	seen    map[string]Row
	tgtDone bool
}

func (s *pairedStream) Next(ctx context.Context) (Sample, error) {
	for {
		srcRow, err := s.src.NextRow(ctx)
		if err != nil {
			return nil, err
		}
		tgtRow := srcRow
		if s.tgt != nil {
			var ok bool
			tgtRow, ok, err = s.lookupTarget(ctx, srcRow.ID)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		return s.build(ctx, srcRow, tgtRow)
	}
}

func (s *pairedStream) lookupTarget(ctx context.Context, id string) (Row, bool, error) {
	for {
		if row, ok := s.seen[id]; ok {
			return row, true, nil
		}
		if s.tgtDone {
			return Row{}, false, nil
		}
		row, err := s.tgt.NextRow(ctx)
		if errors.Is(err, io.EOF) {
			s.tgtDone = true
			continue
		}
		if err != nil {
			return Row{}, false, fmt.Errorf("target rows: %w", err)
		}
		// FLEURS repeats IDs for multiple recordings of a sentence; the
		// first one wins.
		if _, dup := s.seen[row.ID]; !dup {
			s.seen[row.ID] = row
		}
	}
}

func (s *pairedStream) build(ctx context.Context, srcRow, tgtRow Row) (Sample, error) {
	pair := Pair{
		Src: Utterance{ID: srcRow.ID, Transcript: srcRow.Text, Language: s.req.SourceLang},
		Tgt: Utterance{ID: tgtRow.ID, Transcript: tgtRow.Text, Language: s.req.TargetLang},
	}
	if s.req.IncludeSourceAudio {
		w, err := loadAudio(ctx, srcRow)
		if err != nil {
			return nil, fmt.Errorf("source audio for row %s: %w", srcRow.ID, err)
		}
		pair.Src.Audio = w
	}
	if s.req.IncludeTargetAudio {
		if s.tgt == nil && s.req.IncludeSourceAudio {
			pair.Tgt.Audio = pair.Src.Audio
		} else {
			w, err := loadAudio(ctx, tgtRow)
			if err != nil {
				return nil, fmt.Errorf("target audio for row %s: %w", tgtRow.ID, err)
			}
			pair.Tgt.Audio = w
		}
	}
	return pair, nil
}

func loadAudio(ctx context.Context, row Row) (Waveform, error) {
	if row.LoadAudio == nil {
		return Waveform{}, errors.New("row has no audio")
	}
	return row.LoadAudio(ctx)
}

func (s *pairedStream) Close() error {
	err := s.src.Close()
	if s.tgt != nil {
		err = errors.Join(err, s.tgt.Close())
	}
	return err
}
