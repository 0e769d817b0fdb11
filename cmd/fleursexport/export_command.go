package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"fleursexport/internal/audio"
	"fleursexport/internal/config"
	"fleursexport/internal/dataset/hfrows"
	"fleursexport/internal/export"
	"fleursexport/internal/language"
	"fleursexport/internal/logging"
	"fleursexport/internal/preflight"
	"fleursexport/internal/rowcache"
	"fleursexport/internal/runlock"
	"fleursexport/internal/source"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var overrides config.Overrides
	var skipPreflight bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export paired FLEURS samples for each configured language",
		Long: "Streams paired source/target samples for each language and writes\n" +
			"<output>/<lang>/{source_audio,target_audio,source_text,target_text}/ files.\n" +
			"Re-running overwrites indices up to the limit; higher indices are left as-is.",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := overrides.Apply(base)
			if err != nil {
				return fmt.Errorf("apply flags: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			console := cmd.OutOrStdout()
			if quiet {
				console = nil
			}
			return runExport(runCtx, cfg, exportRun{
				console:       console,
				out:           cmd.OutOrStdout(),
				skipPreflight: skipPreflight,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&overrides.Languages, "lang", "l", nil, "Language code to export (repeatable; replaces export.languages)")
	flags.IntVarP(&overrides.Limit, "limit", "n", 0, "Maximum samples per language")
	flags.StringVarP(&overrides.OutputRoot, "output", "o", "", "Output root directory")
	flags.StringVar(&overrides.Split, "split", "", "Dataset split (train, validation, test)")
	flags.StringVar(&overrides.AudioFormat, "audio-format", "", "Audio encoding: wav or raw")
	flags.StringVar(&overrides.SourceKind, "source", "", "Dataset source: hf or local")
	flags.StringVar(&overrides.LocalDir, "local-dir", "", "Local FLEURS mirror directory (used with --source local)")
	flags.BoolVar(&skipPreflight, "skip-preflight", false, "Skip readiness checks before exporting")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress separator lines and the summary table")
	return cmd
}

type exportRun struct {
	console       io.Writer
	out           io.Writer
	skipPreflight bool
}

func runExport(ctx context.Context, cfg *config.Config, run exportRun) error {
	runID := uuid.NewString()
	logger, err := logging.NewFromConfig(cfg, runID)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logging.NewComponentLogger(logger, "cli")

	if !run.skipPreflight {
		results := preflight.RunAll(ctx, cfg)
		if failed := preflight.Failed(results); len(failed) > 0 {
			return fmt.Errorf("preflight failed: %s", preflight.Summary(results))
		}
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	var cache hfrows.Cache
	if cfg.Cache.Enabled {
		store, err := rowcache.Open(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer store.Close()
		cache = store
	}

	builder, err := source.New(cfg, cache, logger)
	if err != nil {
		return fmt.Errorf("init dataset source: %w", err)
	}
	format, err := audio.ParseFormat(cfg.Export.AudioFormat)
	if err != nil {
		return err
	}
	exporter, err := export.New(builder, logger, export.Options{AudioFormat: format, Console: run.console})
	if err != nil {
		return err
	}

	logger.Info("export started",
		logging.String(logging.FieldEventType, "run_started"),
		logging.Any("languages", cfg.Export.Languages),
		logging.Int("limit", cfg.Export.Limit),
		logging.String("output_root", cfg.Export.OutputRoot),
		logging.String("source", cfg.Source.Kind),
		logging.String("audio_format", string(format)),
	)

	start := time.Now()
	results, runErr := exporter.Export(ctx, export.RunConfig{
		Languages:  cfg.Export.Languages,
		Limit:      cfg.Export.Limit,
		OutputRoot: cfg.Export.OutputRoot,
		Split:      cfg.Export.Split,
	})
	logRunEnd(logger, runErr, time.Since(start))

	if run.console != nil && len(results) > 0 {
		fmt.Fprintln(run.out, renderExportSummary(results, cfg.Export.Limit, runErr, newStatusColorizer(run.out)))
	}
	return runErr
}

func logRunEnd(logger *slog.Logger, err error, elapsed time.Duration) {
	switch {
	case err == nil:
		logger.Info("export finished",
			logging.String(logging.FieldEventType, "run_finished"),
			logging.Duration("elapsed", elapsed.Round(time.Millisecond)),
		)
	case errors.Is(err, context.Canceled):
		logging.WarnWithContext(logger, "export cancelled", "run_cancelled",
			logging.String(logging.FieldImpact, "files written before cancellation remain on disk"),
		)
	default:
		logger.Error("export failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.Error(err),
		)
	}
}

func renderExportSummary(results []export.LanguageResult, limit int, runErr error, colors statusColorizer) string {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		status := colors.ok("complete")
		switch {
		case runErr != nil && i == len(results)-1:
			status = colors.fail("failed")
		case r.Exhausted:
			status = colors.warn("exhausted")
		}
		rows = append(rows, []string{
			r.Language,
			language.DisplayName(r.Language),
			fmt.Sprintf("%d/%d", r.Written, limit),
			status,
			r.Elapsed.Round(time.Millisecond).String(),
			r.Dir,
		})
	}
	return renderTable(
		[]string{"Code", "Language", "Samples", "Status", "Elapsed", "Directory"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	)
}
