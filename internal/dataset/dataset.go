package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownLanguage is returned by Builder.Open when the source does not
// carry the requested language config.
var ErrUnknownLanguage = errors.New("dataset: unknown language")

// Waveform is interleaved PCM audio normalized to [-1, 1].
type Waveform struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// frames returns the number of sample frames (samples per channel).
func (w Waveform) frames() int {
	if w.Channels <= 1 {
		return len(w.Samples)
	}
	return len(w.Samples) / w.Channels
}

// Duration returns the playback length, or zero when the rate is unknown.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(w.frames()) * time.Second / time.Duration(w.SampleRate)
}

// Side is one half of a paired sample.
type Side interface {
	Waveform() Waveform
	Text() string
	Lang() string
}

// Sample is a matched source/target utterance pair.
type Sample interface {
	Source() Side
	Target() Side
}

// Request scopes a stream to a language pair and split.
type Request struct {
	SourceLang         string
	TargetLang         string
	Split              string
	IncludeSourceAudio bool
	IncludeTargetAudio bool
}

// Validate reports missing request fields.
func (r Request) Validate() error {
	if strings.TrimSpace(r.SourceLang) == "" {
		return errors.New("dataset: source language is required")
	}
	if strings.TrimSpace(r.TargetLang) == "" {
		return errors.New("dataset: target language is required")
	}
	if strings.TrimSpace(r.Split) == "" {
		return errors.New("dataset: split is required")
	}
	return nil
}

func (r Request) String() string {
	return fmt.Sprintf("%s->%s/%s", r.SourceLang, r.TargetLang, r.Split)
}

// Stream yields samples in dataset order. Next returns io.EOF once the
// stream is exhausted. Streams are single-pass.
type Stream interface {
	Next(ctx context.Context) (Sample, error)
	Close() error
}

// Builder opens sample streams.
type Builder interface {
	Open(ctx context.Context, req Request) (Stream, error)
}

// Utterance is the concrete Side produced by the adapters in this module.
type Utterance struct {
	ID         string
	Audio      Waveform
	Transcript string
	Language   string
}

func (u Utterance) Waveform() Waveform { return u.Audio }

func (u Utterance) Text() string { return u.Transcript }

func (u Utterance) Lang() string { return u.Language }

// Pair is the concrete Sample produced by the adapters in this module.
type Pair struct {
	Src Utterance
	Tgt Utterance
}

func (p Pair) Source() Side { return p.Src }

func (p Pair) Target() Side { return p.Tgt }
