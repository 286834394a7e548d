// Package loader reads single-channel recordings into signal.Raw.
//
// Two layouts are accepted. The plain layout has one sample per line with
// '#' comment lines, as written by export.WriteSignal. The tabular layout is
// comma-separated with a header row; samples come from the selected column
// (by default the first one that is not DATA or HORA) and, when DATA and
// HORA columns are present, the first row's date and time become the
// recording start.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-biosignal/dsp/signal"
)

// Options describe the recording being read.
type Options struct {
	Channel    string
	SampleRate float64
	// Column selects the sample column of a tabular file by header name.
	Column string
	// Location interprets DATA/HORA timestamps; nil means UTC.
	Location *time.Location
}

// Load reads the file at path.
func Load(path string, opts Options) (signal.Raw, error) {
	f, err := os.Open(path)
	if err != nil {
		return signal.Raw{}, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	raw, err := Read(f, opts)
	if err != nil {
		return signal.Raw{}, fmt.Errorf("%s: %w", path, err)
	}
	return raw, nil
}

// Read parses a recording from r and validates it.
func Read(r io.Reader, opts Options) (signal.Raw, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	raw := signal.Raw{Channel: opts.Channel, SampleRate: opts.SampleRate}
	sampleCol, dateCol, timeCol := 0, -1, -1
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return signal.Raw{}, fmt.Errorf("read samples: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if _, perr := parseSample(rec[0]); perr != nil {
				header := trimAll(rec)
				if sampleCol, err = pickColumn(header, opts.Column); err != nil {
					return signal.Raw{}, err
				}
				dateCol = slices.Index(header, "DATA")
				timeCol = slices.Index(header, "HORA")
				continue
			}
			if opts.Column != "" {
				return signal.Raw{}, fmt.Errorf("column %q requested but file has no header", opts.Column)
			}
		}

		if sampleCol >= len(rec) {
			return signal.Raw{}, fmt.Errorf("line %d: missing column %d", line, sampleCol)
		}
		v, err := parseSample(rec[sampleCol])
		if err != nil {
			return signal.Raw{}, fmt.Errorf("line %d: %w", line, err)
		}
		if len(raw.Samples) == 0 && dateCol >= 0 && timeCol >= 0 && max(dateCol, timeCol) < len(rec) {
			raw.Start = parseStart(rec[dateCol], rec[timeCol], opts.Location)
		}
		raw.Samples = append(raw.Samples, v)
	}

	if len(raw.Samples) == 0 {
		return signal.Raw{}, errors.New("recording has no samples")
	}
	if err := raw.Validate(); err != nil {
		return signal.Raw{}, err
	}
	return raw, nil
}

func parseSample(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("parse sample %q: %w", field, err)
	}
	return v, nil
}

// pickColumn returns the column called name or, with no name, the first
// column that is not DATA or HORA.
func pickColumn(header []string, name string) (int, error) {
	if name == "" {
		for i, h := range header {
			if h != "DATA" && h != "HORA" {
				return i, nil
			}
		}
		return 0, fmt.Errorf("header %v has no sample column", header)
	}
	i := slices.Index(header, name)
	if i < 0 {
		return 0, fmt.Errorf("column %q not in header %v", name, header)
	}
	return i, nil
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

var startLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"02-01-2006 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"02/01/2006 15:04",
	"02-01-2006 15:04",
}

// parseStart returns the zero time when the date or time cannot be parsed.
func parseStart(date, clock string, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	value := strings.TrimSpace(date) + " " + strings.TrimSpace(clock)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
