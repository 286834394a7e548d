package features

import (
	"math"
	"slices"
	"time"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Row is one window of a Table.
type Row struct {
	Window int
	Start  int
	// Offset is the window start in seconds from the first sample.
	Offset float64
	// Timestamp is the recording start plus Offset; zero when the start
	// is unknown.
	Timestamp time.Time
	Values    []float64
	Errors    map[string]error
}

// Table holds one Row per window in window order.
type Table struct {
	Schema     Schema
	SampleRate float64
	Rows       []Row
}

// Aggregate collects vectors into a Table ordered by window index. Every
// vector must carry the same schema and a matching value count; window
// indices must be unique.
func Aggregate(vectors []Vector, sampleRate float64, start time.Time) (Table, error) {
	const op = "features.Aggregate"
	if len(vectors) == 0 {
		return Table{}, core.Insufficientf(op, "no feature vectors")
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Table{}, core.ParamError(op, "sample_rate", sampleRate, "must be a finite value > 0")
	}

	schema := vectors[0].Schema
	for _, v := range vectors {
		if !v.Schema.Equal(schema) {
			return Table{}, core.Schemaf(op, "window %d has schema %v, want %v", v.Window, v.Schema, schema)
		}
		if len(v.Values) != len(schema) {
			return Table{}, core.Schemaf(op, "window %d has %d values for %d features", v.Window, len(v.Values), len(schema))
		}
	}

	sorted := slices.Clone(vectors)
	slices.SortStableFunc(sorted, func(a, b Vector) int { return a.Window - b.Window })

	t := Table{Schema: schema, SampleRate: sampleRate, Rows: make([]Row, len(sorted))}
	for i, v := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			if v.Window == prev.Window {
				return Table{}, core.Schemaf(op, "duplicate window index %d", v.Window)
			}
			if v.Start <= prev.Start {
				return Table{}, core.Schemaf(op, "window %d starts at sample %d, not after window %d at %d",
					v.Window, v.Start, prev.Window, prev.Start)
			}
		}

		offset := float64(v.Start) / sampleRate
		row := Row{
			Window: v.Window,
			Start:  v.Start,
			Offset: offset,
			Values: v.Values,
			Errors: v.Errors,
		}
		if !start.IsZero() {
			row.Timestamp = start.Add(time.Duration(math.Round(offset * float64(time.Second))))
		}
		t.Rows[i] = row
	}
	return t, nil
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Column returns one feature across all rows.
func (t Table) Column(name string) ([]float64, error) {
	i := t.Schema.Index(name)
	if i < 0 {
		return nil, core.Schemaf("features.Table.Column", "unknown feature %q", name)
	}
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		out[r] = row.Values[i]
	}
	return out, nil
}

// MissingCount returns the number of NaN cells in the table.
func (t Table) MissingCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, x := range row.Values {
			if math.IsNaN(x) {
				n++
			}
		}
	}
	return n
}

// Errors returns the recorded cell errors in row order, then schema order.
func (t Table) Errors() []error {
	var out []error
	for _, row := range t.Rows {
		if len(row.Errors) == 0 {
			continue
		}
		for _, name := range t.Schema {
			if err, ok := row.Errors[name]; ok {
				out = append(out, err)
			}
		}
	}
	return out
}
