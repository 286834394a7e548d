// Package export writes pipeline results as CSV and plain text.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/measure/features"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

// FeatureHeader lists the leading columns of a features CSV; the schema
// follows.
var FeatureHeader = []string{"window", "start_sample", "offset_s", "timestamp"}

// WriteFeatures writes one row per window. Missing cells are empty and the
// timestamp is RFC 3339 or empty when the recording start is unknown.
func WriteFeatures(w io.Writer, t features.Table) error {
	cw := csv.NewWriter(w)
	header := append(append([]string(nil), FeatureHeader...), t.Schema...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(header))
	for _, row := range t.Rows {
		rec[0] = strconv.Itoa(row.Window)
		rec[1] = strconv.Itoa(row.Start)
		rec[2] = formatFloat(row.Offset)
		rec[3] = ""
		if !row.Timestamp.IsZero() {
			rec[3] = row.Timestamp.Format(time.RFC3339Nano)
		}
		for i, v := range row.Values {
			rec[len(FeatureHeader)+i] = formatFloat(v)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write window %d: %w", row.Window, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SignalWindow labels the whole-signal PSD in WritePSDs output.
const SignalWindow = "signal"

// WritePSDs writes every window PSD and then the whole-signal PSD in long
// form: window, frequency_hz, power, density.
func WritePSDs(w io.Writer, res *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"window", "frequency_hz", "power", "density"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, psd := range res.PSDs {
		if err := writePSD(cw, strconv.Itoa(res.Windows[i].Index), psd); err != nil {
			return err
		}
	}
	if err := writePSD(cw, SignalWindow, res.SignalPSD); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writePSD(cw *csv.Writer, label string, psd spectrum.PSD) error {
	density := psd.Density()
	rec := make([]string, 4)
	rec[0] = label
	for k, f := range psd.Frequencies {
		rec[1] = formatFloat(f)
		rec[2] = formatFloat(psd.Power[k])
		rec[3] = formatFloat(density[k])
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write psd %s: %w", label, err)
		}
	}
	return nil
}

// WriteSignal writes the cleaned samples one per line with nine decimals,
// preceded by '#' comment lines naming the channel, rate and start.
func WriteSignal(w io.Writer, c signal.Cleaned) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# channel: %s\n# sample_rate: %g\n", c.Channel(), c.SampleRate())
	if !c.Start().IsZero() {
		fmt.Fprintf(bw, "# start: %s\n", c.Start().Format(time.RFC3339Nano))
	}
	for _, v := range c.Samples() {
		bw.WriteString(strconv.FormatFloat(v, 'f', 9, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile creates path and runs write on it.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
