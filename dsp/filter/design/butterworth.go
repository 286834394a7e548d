package design

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
)

// MaxOrder is the highest Butterworth order the designers accept.
const MaxOrder = 16

// ButterworthLP designs a lowpass Butterworth cascade of the given order.
//
// For odd orders, the final section is first-order (B2=A2=0). It returns nil
// when order is outside 1..MaxOrder or freq is not strictly inside (0, fs/2).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, Lowpass, firstOrderLP)
}

// ButterworthHP designs a highpass Butterworth cascade of the given order.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	return butterworth(freq, order, sampleRate, Highpass, firstOrderHP)
}

// ButterworthBandpass cascades a highpass at low with a lowpass at high, each
// of the given order, so the effective order is 2*order. It returns nil when
// either edge is invalid or low >= high.
func ButterworthBandpass(low, high float64, order int, sampleRate float64) []biquad.Coefficients {
	if !(low < high) {
		return nil
	}
	hp := ButterworthHP(low, order, sampleRate)
	lp := ButterworthLP(high, order, sampleRate)
	if hp == nil || lp == nil {
		return nil
	}
	return append(hp, lp...)
}

type secondOrderFunc func(freq, q, sampleRate float64) biquad.Coefficients

type firstOrderFunc func(freq, sampleRate float64) biquad.Coefficients

func butterworth(freq float64, order int, sampleRate float64, second secondOrderFunc, first firstOrderFunc) []biquad.Coefficients {
	if order <= 0 || order > MaxOrder {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, second(freq, butterworthQ(order, i), sampleRate))
	}
	if order%2 != 0 {
		sections = append(sections, first(freq, sampleRate))
	}
	return sections
}

// butterworthQ returns the quality factor of the index-th pole pair of an
// order-n Butterworth prototype.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}
