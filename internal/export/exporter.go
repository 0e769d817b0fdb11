package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"fleursexport/internal/audio"
	"fleursexport/internal/dataset"
	"fleursexport/internal/fileutil"
	"fleursexport/internal/logging"
)

// DefaultSplit is the evaluation split exported when none is configured.
const DefaultSplit = "test"

var separator = strings.Repeat("-", 60)

// RunConfig is the immutable input of one export run.
type RunConfig struct {
	Languages  []string
	Limit      int
	OutputRoot string
	Split      string
}

// Validate checks the run configuration.
func (rc RunConfig) Validate() error {
	if len(rc.Languages) == 0 {
		return errors.New("export: at least one language is required")
	}
	for _, lang := range rc.Languages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("export: empty language code")
		}
	}
	if rc.Limit <= 0 {
		return fmt.Errorf("export: limit must be positive, got %d", rc.Limit)
	}
	if strings.TrimSpace(rc.OutputRoot) == "" {
		return errors.New("export: output root is required")
	}
	return nil
}

// Options tunes an Exporter.
type Options struct {
	AudioFormat audio.Format
	// Console receives plain separator lines between samples and languages.
	// Nil disables them.
	Console io.Writer
}

// Exporter streams samples from a dataset.Builder to disk.
type Exporter struct {
	builder dataset.Builder
	logger  *slog.Logger
	format  audio.Format
	console io.Writer
}

// LanguageResult summarizes one language of a run.
type LanguageResult struct {
	Language string
	Dir      string
	Written  int
	// Exhausted is true when the stream ended before the limit.
	Exhausted bool
	Elapsed   time.Duration
}

// New constructs an Exporter. A nil logger discards log output.
func New(builder dataset.Builder, logger *slog.Logger, opts Options) (*Exporter, error) {
	if builder == nil {
		return nil, errors.New("export: dataset builder is required")
	}
	format := opts.AudioFormat
	if format == "" {
		format = audio.FormatWAV
	}
	if format != audio.FormatWAV && format != audio.FormatRaw {
		return nil, fmt.Errorf("export: unsupported audio format %q", format)
	}
	return &Exporter{
		builder: builder,
		logger:  logging.NewComponentLogger(logger, "exporter"),
		format:  format,
		console: opts.Console,
	}, nil
}

// Export processes every language in order. It returns the results of the
// languages it finished, plus the partially exported one when an error
// aborts the run.
func (e *Exporter) Export(ctx context.Context, rc RunConfig) ([]LanguageResult, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	split := rc.Split
	if strings.TrimSpace(split) == "" {
		split = DefaultSplit
	}

	if e.format == audio.FormatRaw {
		logging.WarnWithContext(e.logger, "audio files are headerless float32 dumps despite the .wav extension",
			"raw_audio_format",
			logging.String(logging.FieldErrorHint, "set export.audio_format = \"wav\" for playable files"),
			logging.String(logging.FieldImpact, "exported .wav files cannot be opened by audio tools"),
		)
	}

	results := make([]LanguageResult, 0, len(rc.Languages))
	for _, lang := range rc.Languages {
		result, err := e.ExportLanguage(ctx, lang, rc.Limit, rc.OutputRoot, split)
		results = append(results, result)
		if err != nil {
			return results, err
		}
		e.printSeparator()
	}
	return results, nil
}

// ExportLanguage writes up to limit samples for lang under outputRoot.
func (e *Exporter) ExportLanguage(ctx context.Context, lang string, limit int, outputRoot, split string) (LanguageResult, error) {
	start := time.Now()
	layout := NewLayout(outputRoot, lang)
	result := LanguageResult{Language: lang, Dir: layout.Root}
	logger := e.logger.With(logging.String(logging.FieldLanguage, lang))

	if err := fileutil.EnsureDirs(layout.Dirs()...); err != nil {
		return result, fmt.Errorf("export %s: prepare output tree: %w", lang, err)
	}

	stream, err := e.builder.Open(ctx, dataset.Request{
		SourceLang:         lang,
		TargetLang:         lang,
		Split:              split,
		IncludeSourceAudio: true,
		IncludeTargetAudio: true,
	})
	if err != nil {
		return result, fmt.Errorf("export %s: open dataset: %w", lang, err)
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil {
			logging.WarnWithContext(logger, "closing dataset stream failed", "stream_close_failed",
				logging.Error(cerr),
				logging.String(logging.FieldImpact, "none; all samples were already written"),
			)
		}
	}()

	logger.Info("language export started",
		logging.String(logging.FieldEventType, "language_started"),
		logging.Int("limit", limit),
		logging.String("split", split),
		logging.String("dir", layout.Root),
	)

	i := 0
	for i < limit {
		if err := ctx.Err(); err != nil {
			result.Written = i
			result.Elapsed = time.Since(start)
			return result, err
		}
		sample, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			result.Exhausted = true
			break
		}
		if err != nil {
			result.Written = i
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("export %s: fetch sample %d: %w", lang, i, err)
		}
		if err := e.writeSample(layout, i, sample); err != nil {
			result.Written = i
			result.Elapsed = time.Since(start)
			return result, fmt.Errorf("export %s: sample %d: %w", lang, i, err)
		}

		src, tgt := sample.Source(), sample.Target()
		logger.Info("sample exported",
			logging.String(logging.FieldEventType, "sample_exported"),
			logging.Int("index", i),
			logging.String("source_audio", layout.SourceAudioPath(i)),
			logging.Duration("source_duration", src.Waveform().Duration()),
			logging.String("source_lang", src.Lang()),
			logging.String("target_lang", tgt.Lang()),
			logging.String("target_text", tgt.Text()),
		)
		e.printSeparator()
		i++
	}

	result.Written = i
	result.Elapsed = time.Since(start)
	logger.Info("language export complete",
		logging.String(logging.FieldEventType, "language_complete"),
		logging.Int("written", i),
		logging.Int("limit", limit),
		logging.Bool("exhausted", result.Exhausted),
		logging.Duration("elapsed", result.Elapsed.Round(time.Millisecond)),
	)
	return result, nil
}

func (e *Exporter) writeSample(layout Layout, i int, sample dataset.Sample) error {
	src, tgt := sample.Source(), sample.Target()
	if src == nil || tgt == nil {
		return errors.New("sample is missing a source or target side")
	}
	if err := audio.WriteFile(layout.SourceAudioPath(i), src.Waveform(), e.format); err != nil {
		return fmt.Errorf("write source audio: %w", err)
	}
	if err := audio.WriteFile(layout.TargetAudioPath(i), tgt.Waveform(), e.format); err != nil {
		return fmt.Errorf("write target audio: %w", err)
	}
	if err := fileutil.WriteFile(layout.SourceTextPath(i), []byte(src.Text())); err != nil {
		return fmt.Errorf("write source text: %w", err)
	}
	if err := fileutil.WriteFile(layout.TargetTextPath(i), []byte(tgt.Text())); err != nil {
		return fmt.Errorf("write target text: %w", err)
	}
	return nil
}

func (e *Exporter) printSeparator() {
	if e.console == nil {
		return
	}
	fmt.Fprintln(e.console, separator)
}
