package features

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Vector is the feature vector of one window. Values[i] belongs to
// Schema[i]; NaN marks a cell that could not be computed, with the reason
// in Errors.
type Vector struct {
	Window int
	Start  int
	Schema Schema
	Values []float64
	Errors map[string]error
}

// Value returns the value of the named feature and whether it is present
// and computed.
func (v Vector) Value(name string) (float64, bool) {
	i := v.Schema.Index(name)
	if i < 0 || i >= len(v.Values) || math.IsNaN(v.Values[i]) {
		return math.NaN(), false
	}
	return v.Values[i], true
}

// Missing returns the number of NaN cells.
func (v Vector) Missing() int {
	n := 0
	for _, x := range v.Values {
		if math.IsNaN(x) {
			n++
		}
	}
	return n
}

func (v *Vector) setError(feature string, err error) {
	if v.Errors == nil {
		v.Errors = make(map[string]error)
	}
	ce, ok := core.AsError(err)
	if !ok {
		ce = &core.Error{Kind: core.ErrNumericInstability, Op: "features.Extract", Err: err}
	}
	v.Errors[feature] = ce.WithWindow(v.Window).WithFeature(feature)
}
