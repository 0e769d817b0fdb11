package testsupport

import (
	"context"
	"fmt"
	"io"
	"sync"

	"fleursexport/internal/dataset"
)

// Utterance builds a deterministic mono 16 kHz utterance with n samples.
func Utterance(lang, text string, n int) dataset.Utterance {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(i%64)/64 - 0.5
	}
	return dataset.Utterance{
		ID:         text,
		Audio:      dataset.Waveform{Samples: samples, SampleRate: 16000, Channels: 1},
		Transcript: text,
		Language:   lang,
	}
}

// Pairs builds n same-language pairs whose transcripts are "<lang> source i"
// and "<lang> target i".
func Pairs(lang string, n int) []dataset.Sample {
	out := make([]dataset.Sample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, dataset.Pair{
			Src: Utterance(lang, fmt.Sprintf("%s source %d", lang, i), 160+i),
			Tgt: Utterance(lang, fmt.Sprintf("%s target %d", lang, i), 320+i),
		})
	}
	return out
}

// FakeBuilder serves in-memory samples keyed by source language.
type FakeBuilder struct {
	Samples map[string][]dataset.Sample
	// FailAt makes Next return NextErr once a language's stream reaches
	// the given index.
	FailAt  map[string]int
	NextErr error
	OpenErr error

	mu       sync.Mutex
	requests []dataset.Request
	nexts    map[string]int
	closed   map[string]int
}

// Open records the request and returns a stream over the configured samples.
func (b *FakeBuilder) Open(_ context.Context, req dataset.Request) (dataset.Stream, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, req)
	if b.OpenErr != nil {
		return nil, b.OpenErr
	}
	samples, ok := b.Samples[req.SourceLang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dataset.ErrUnknownLanguage, req.SourceLang)
	}
	failAt := -1
	if idx, ok := b.FailAt[req.SourceLang]; ok {
		failAt = idx
	}
	return &fakeStream{builder: b, lang: req.SourceLang, samples: samples, failAt: failAt}, nil
}

// Requests returns the requests seen so far.
func (b *FakeBuilder) Requests() []dataset.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]dataset.Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// NextCalls returns how many times Next was called for lang.
func (b *FakeBuilder) NextCalls(lang string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nexts[lang]
}

// Closed returns how many streams for lang were closed.
func (b *FakeBuilder) Closed(lang string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed[lang]
}

type fakeStream struct {
	builder *FakeBuilder
	lang    string
	samples []dataset.Sample
	pos     int
	failAt  int
}

func (s *fakeStream) Next(context.Context) (dataset.Sample, error) {
	s.builder.mu.Lock()
	if s.builder.nexts == nil {
		s.builder.nexts = make(map[string]int)
	}
	s.builder.nexts[s.lang]++
	s.builder.mu.Unlock()

	if s.failAt >= 0 && s.pos == s.failAt {
		return nil, s.builder.NextErr
	}
	if s.pos >= len(s.samples) {
		return nil, io.EOF
	}
	sample := s.samples[s.pos]
	s.pos++
	return sample, nil
}

func (s *fakeStream) Close() error {
	s.builder.mu.Lock()
	defer s.builder.mu.Unlock()
	if s.builder.closed == nil {
		s.builder.closed = make(map[string]int)
	}
	s.builder.closed[s.lang]++
	return nil
}
