package pipeline

import "go.uber.org/zap"

// Observer receives progress from a running pipeline. Methods are called
// from worker goroutines and must be safe for concurrent use.
type Observer interface {
	// WindowDone reports that done of total windows are finished.
	WindowDone(done, total int)
	// FeatureFailed reports one missing cell.
	FeatureFailed(feature string, err error)
}

type nopObserver struct{}

func (nopObserver) WindowDone(int, int) {}

func (nopObserver) FeatureFailed(string, error) {}

// Option configures Run.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	observer Observer
	workers  int
}

func defaultOptions() options {
	return options{logger: zap.NewNop(), observer: nopObserver{}}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver sets the progress observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithWorkers overrides Config.Workers when n > 0.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}
