package dataset

import (
	"context"
	"errors"
	"io"
	"testing"
)

type sliceRows struct {
	rows   []Row
	pos    int
	reads  int
	closed bool
	err    error
}

func (s *sliceRows) NextRow(context.Context) (Row, error) {
	s.reads++
	if s.err != nil {
		return Row{}, s.err
	}
	if s.pos >= len(s.rows) {
		return Row{}, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}

func (s *sliceRows) Close() error {
	s.closed = true
	return nil
}

func row(id, text string, loads *int) Row {
	return Row{ID: id, Text: text, LoadAudio: func(context.Context) (Waveform, error) {
		*loads++
		return Waveform{Samples: []float32{0.25}, SampleRate: 16000, Channels: 1}, nil
	}}
}

func TestPairRowsSameLanguageUsesOneRow(t *testing.T) {
	loads := 0
	src := &sliceRows{rows: []Row{row("1", "a", &loads), row("2", "b", &loads)}}
	req := Request{SourceLang: "hi_in", TargetLang: "hi_in", Split: "test", IncludeSourceAudio: true, IncludeTargetAudio: true}
	stream := PairRows(req, src, nil)

	sample, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sample.Source().Text() != "a" || sample.Target().Text() != "a" {
		t.Fatalf("unexpected texts %q/%q", sample.Source().Text(), sample.Target().Text())
	}
	if len(sample.Target().Waveform().Samples) != 1 {
		t.Fatal("target audio missing")
	}
	if loads != 1 {
		t.Fatalf("expected one audio load, got %d", loads)
	}
	if _, err := stream.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := stream.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if err := stream.Close(); err != nil || !src.closed {
		t.Fatal("expected source iterator closed")
	}
}

func TestPairRowsMatchesByIDAndSkipsUnmatched(t *testing.T) {
	loads := 0
	src := &sliceRows{rows: []Row{row("1", "s1", &loads), row("9", "s9", &loads), row("3", "s3", &loads)}}
	tgt := &sliceRows{rows: []Row{row("3", "t3", &loads), row("1", "t1", &loads), row("1", "t1-dup", &loads)}}
	req := Request{SourceLang: "hi_in", TargetLang: "ta_in", Split: "test"}
	stream := PairRows(req, src, tgt)

	first, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Target().Text() != "t1" || first.Target().Lang() != "ta_in" {
		t.Fatalf("unexpected first target %q", first.Target().Text())
	}
	if tgt.reads != 2 {
		t.Fatalf("target rows should be read incrementally, got %d reads", tgt.reads)
	}
	second, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Source().Text() != "s3" || second.Target().Text() != "t3" {
		t.Fatalf("unexpected second pair %q/%q", second.Source().Text(), second.Target().Text())
	}
	if _, err := stream.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
	if loads != 0 {
		t.Fatal("audio must not load when not requested")
	}
	_ = stream.Close()
	if !src.closed || !tgt.closed {
		t.Fatal("expected both iterators closed")
	}
}

func TestPairRowsPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	src := &sliceRows{rows: []Row{{ID: "1", Text: "x"}}}
	tgt := &sliceRows{err: boom}
	stream := PairRows(Request{SourceLang: "a_b", TargetLang: "c_d", Split: "test"}, src, tgt)
	if _, err := stream.Next(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	src = &sliceRows{rows: []Row{{ID: "1", Text: "x"}}}
	stream = PairRows(Request{SourceLang: "a_b", TargetLang: "a_b", Split: "test", IncludeSourceAudio: true}, src, nil)
	if _, err := stream.Next(context.Background()); err == nil {
		t.Fatal("expected error for row without audio loader")
	}
}
