package main

import (
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-biosignal/internal/export"
	"github.com/cwbudde/algo-biosignal/internal/loader"
	"github.com/cwbudde/algo-biosignal/internal/metrics"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

type analyzeOutputs struct {
	column      string
	features    string
	psd         string
	filtered    string
	metricsFile string
}

func (a *app) analyzeCmd() *cobra.Command {
	var out analyzeOutputs
	cmd := &cobra.Command{
		Use:   "analyze <recording>",
		Short: "Filter a recording and extract per-window features",
		Long: `Reads one channel (one sample per line, or CSV with a header row),
applies the configured notch and band-pass filters with zero phase, cuts the
result into overlapping windows and extracts the feature set of every window.

The features table is written as CSV to --out, or to stdout when --out is
not given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0], out)
		},
	}

	a.addWindowFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&out.column, "column", "", "sample column of a CSV recording (default: first)")
	f.StringVarP(&out.features, "out", "o", "", "features CSV path (default: stdout)")
	f.StringVar(&out.psd, "psd-out", "", "write window and signal PSDs as CSV")
	f.StringVar(&out.filtered, "filtered-out", "", "write the cleaned signal, one sample per line")
	f.StringVar(&out.metricsFile, "metrics-out", "", "write Prometheus text exposition metrics")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, path string, out analyzeOutputs) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	raw, err := loader.Load(path, loader.Options{Channel: a.channel, SampleRate: a.rate, Column: out.column})
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := metrics.New(raw.Channel)
	res, err := pipeline.Run(ctx, raw, cfg, pipeline.WithLogger(a.logger), pipeline.WithObserver(obs))
	if err != nil {
		return err
	}
	for _, ferr := range res.Table.Errors() {
		a.logger.Debug("missing cell", zap.Error(ferr))
	}

	if out.features == "" {
		if err := export.WriteFeatures(cmd.OutOrStdout(), res.Table); err != nil {
			return err
		}
	} else if err := export.WriteFile(out.features, func(w io.Writer) error {
		return export.WriteFeatures(w, res.Table)
	}); err != nil {
		return err
	}

	if out.psd != "" {
		if err := export.WriteFile(out.psd, func(w io.Writer) error {
			return export.WritePSDs(w, res)
		}); err != nil {
			return err
		}
	}
	if out.filtered != "" {
		if err := export.WriteFile(out.filtered, func(w io.Writer) error {
			return export.WriteSignal(w, res.Cleaned)
		}); err != nil {
			return err
		}
	}
	if out.metricsFile != "" {
		if err := obs.WriteTextfile(out.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	a.logger.Info("analysis written",
		zap.String("recording", path),
		zap.Int("windows", res.Table.Len()),
		zap.Int("missing_cells", res.Table.MissingCount()))
	return nil
}
