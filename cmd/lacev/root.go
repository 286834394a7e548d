package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-biosignal/dsp/segment"
	"github.com/cwbudde/algo-biosignal/internal/config"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

type app struct {
	verbose    bool
	rate       float64
	channel    string
	configPath string

	windowSeconds float64
	overlap       float64
	workers       int

	logger *zap.Logger
}

func newApp() *app {
	return &app{}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lacev",
		Short:        "Biosignal conditioning and feature extraction",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if a.logger != nil {
				return nil
			}
			cfg := zap.NewProductionConfig()
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")
	pf.Float64Var(&a.rate, "rate", 256, "sample rate in Hz")
	pf.StringVar(&a.channel, "channel", "ch0", "channel name")
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")

	root.AddCommand(a.analyzeCmd(), a.featuresCmd(), a.validateCmd(), a.filtersCmd())
	return root
}

// addWindowFlags registers the flags that override file configuration.
func (a *app) addWindowFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&a.windowSeconds, "window-seconds", segment.DefaultWindowSeconds, "analysis window length in seconds")
	f.Float64Var(&a.overlap, "overlap", segment.DefaultOverlap, "window overlap fraction in [0, 1)")
	f.IntVar(&a.workers, "workers", 0, "window worker count (0 = GOMAXPROCS)")
}

// loadConfig resolves the configuration file, then applies flags the user
// set explicitly.
func (a *app) loadConfig(cmd *cobra.Command) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig(a.rate)
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath, a.rate); err != nil {
			return pipeline.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("window-seconds") != nil && (flags.Changed("window-seconds") || flags.Changed("overlap")) {
		l, s, err := segment.FromDuration(a.rate, a.windowSeconds, a.overlap)
		if err != nil {
			return pipeline.Config{}, err
		}
		cfg.WindowLen, cfg.Stride = l, s
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers = a.workers
	}

	if err := cfg.Validate(a.rate); err != nil {
		return pipeline.Config{}, err
	}
	return cfg, nil
}
