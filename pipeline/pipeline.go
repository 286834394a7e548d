// Package pipeline runs the conditioning and feature-extraction chain over
// one channel: filter, segment, then a bounded worker pool computing the
// PSD and feature vector of every window, and finally aggregation.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-biosignal/dsp/filter/stage"
	"github.com/cwbudde/algo-biosignal/dsp/segment"
	"github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/measure/features"
)

// Result is the read-only output of Run.
type Result struct {
	Cleaned signal.Cleaned
	Windows []segment.Window
	// PSDs holds the periodogram of each window, indexed like Windows.
	PSDs []spectrum.PSD
	// SignalPSD is the Welch estimate of the whole cleaned signal.
	SignalPSD spectrum.PSD
	Table     features.Table
	Elapsed   time.Duration
}

// Run validates cfg against raw, then filters, segments and extracts
// features. Configuration errors are returned before any sample is
// processed. Cancelling ctx stops scheduling new windows and Run returns
// ctx.Err() without a result.
func Run(ctx context.Context, raw signal.Raw, cfg Config, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	begin := time.Now()

	if err := raw.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(raw.SampleRate); err != nil {
		return nil, err
	}
	extractor, err := features.NewExtractor(cfg.Features, raw.SampleRate)
	if err != nil {
		return nil, err
	}
	chain, err := stage.Build(cfg.Filters, raw.SampleRate)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := chain.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("filter stage: %w", err)
	}
	windows, err := segment.Segment(cleaned.Samples(), cfg.WindowLen, cfg.Stride)
	if err != nil {
		return nil, fmt.Errorf("windowing: %w", err)
	}

	workers := cfg.Workers
	if o.workers > 0 {
		workers = o.workers
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	log := o.logger.With(zap.String("channel", raw.Channel))
	log.Info("run started",
		zap.Int("samples", raw.Len()),
		zap.Float64("sample_rate", raw.SampleRate),
		zap.Int("windows", len(windows)),
		zap.Int("features", len(extractor.Schema())),
		zap.Int("workers", workers))

	vectors, psds, err := extract(ctx, extractor, windows, workers, o.observer, log)
	if err != nil {
		log.Info("run cancelled", zap.Error(err))
		return nil, err
	}

	table, err := features.Aggregate(vectors, raw.SampleRate, raw.Start)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	welch, err := spectrum.Welch(cleaned.Samples(), raw.SampleRate, cfg.WelchSegmentLen, cfg.WelchSegmentLen/2)
	if err != nil {
		return nil, fmt.Errorf("signal psd: %w", err)
	}

	res := &Result{
		Cleaned:   cleaned,
		Windows:   windows,
		PSDs:      psds,
		SignalPSD: welch,
		Table:     table,
		Elapsed:   time.Since(begin),
	}
	log.Info("run finished",
		zap.Duration("elapsed", res.Elapsed),
		zap.Int("rows", table.Len()),
		zap.Int("missing_cells", table.MissingCount()))
	return res, nil
}

func extract(
	ctx context.Context,
	e *features.Extractor,
	windows []segment.Window,
	workers int,
	obs Observer,
	log *zap.Logger,
) ([]features.Vector, []spectrum.PSD, error) {
	vectors := make([]features.Vector, len(windows))
	psds := make([]spectrum.PSD, len(windows))
	total := len(windows)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range windows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			psd, err := spectrum.Periodogram(w.Samples, e.SampleRate())
			if err == nil {
				psds[i] = psd
				vectors[i] = e.ExtractWithPSD(w, psd)
			} else {
				vectors[i] = e.Extract(w)
			}

			for _, name := range vectors[i].Schema {
				if ferr, ok := vectors[i].Errors[name]; ok {
					log.Debug("feature not computed",
						zap.Int("window", w.Index),
						zap.String("feature", name),
						zap.Error(ferr))
					obs.FeatureFailed(name, ferr)
				}
			}
			obs.WindowDone(int(done.Add(1)), total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return vectors, psds, nil
}
