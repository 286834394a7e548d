// Command lacev filters a single-channel biosignal recording, cuts it into
// analysis windows and writes one row of entropy, fractal, spectral and
// descriptive features per window.
//
// Usage:
//
//	lacev analyze --rate 256 [flags] recording.txt
//	lacev features [--config lacev.yaml]
//	lacev validate --rate 256 --config lacev.yaml
//	lacev filters --rate 256
//
// Examples:
//
//	lacev analyze --rate 256 --out features.csv rec.csv
//	lacev analyze --rate 500 --window-seconds 30 --overlap 0.5 --workers 4 \
//	    --psd-out psd.csv --filtered-out clean.txt --metrics-out lacev.prom rec.txt
//	lacev validate --rate 256 --config lacev.yaml --print
package main

import (
	"os"
)

func main() {
	if err := newApp().rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
