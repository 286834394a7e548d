package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-biosignal/dsp/filter/stage"
	"github.com/cwbudde/algo-biosignal/internal/config"
)

func (a *app) featuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the feature columns of a configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, name := range cfg.Features.Schema() {
				fmt.Fprintf(w, "%2d  %s\n", i+1, name)
			}
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	var printCfg bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration against a sample rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ok: %d filters, window %d samples, stride %d, %d features\n",
				len(cfg.Filters), cfg.WindowLen, cfg.Stride, len(cfg.Features.Schema()))
			if printCfg {
				return config.Encode(w, cfg)
			}
			return nil
		},
	}
	a.addWindowFlags(cmd)
	cmd.Flags().BoolVar(&printCfg, "print", false, "print the resolved configuration as YAML")
	return cmd
}

func (a *app) filtersCmd() *cobra.Command {
	var freqs []float64
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Print the filter chain and its zero-phase magnitude response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			chain, err := stage.Build(cfg.Filters, a.rate)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tFILTER\tORDER\tPADLEN")
			for i, f := range chain.Filters() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", i, chain.Specs()[i], f.Order(), f.PadLen())
			}
			fmt.Fprintf(tw, "\nFREQ (Hz)\tRESPONSE (dB)\n")
			for _, hz := range freqs {
				if !(hz > 0 && hz < a.rate/2) {
					continue
				}
				fmt.Fprintf(tw, "%g\t%s\n", hz, formatDB(chain.ResponseDB(hz)))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Float64SliceVar(&freqs, "freqs", []float64{0.05, 0.5, 1, 4, 8, 12, 30, 32, 50, 60},
		"frequencies to evaluate, in Hz")
	return cmd
}

func formatDB(db float64) string {
	if math.IsInf(db, -1) || db < -300 {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", db)
}
