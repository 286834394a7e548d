package signal_test

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-biosignal/dsp/signal"
)

// A synthetic occipital channel: a 10 Hz alpha rhythm of 20 uV under
// 5 uV of white noise, thirty seconds at 128 Hz.
func ExampleGenerator_Raw() {
	gen := signal.NewGenerator(128, signal.WithSeed(7))
	alpha, err := gen.Sine(10, 20, 128*30)
	if err != nil {
		panic(err)
	}
	noise, err := gen.WhiteNoise(5, 128*30)
	if err != nil {
		panic(err)
	}
	x, err := signal.Sum(alpha, noise)
	if err != nil {
		panic(err)
	}

	raw := gen.Raw("O1", x)
	fmt.Println(raw.Channel, raw.Len(), raw.Duration(), raw.Nyquist(), raw.Validate())

	// Output:
	// O1 3840 30s 64 <nil>
}

func ExampleCleaned_TimeAt() {
	raw := signal.Raw{
		Channel:    "Cz",
		SampleRate: 256,
		Samples:    make([]float64, 512),
		Start:      time.Date(2023, 5, 4, 9, 30, 0, 0, time.UTC),
	}
	cleaned := signal.NewCleaned(raw, make([]float64, raw.Len()))

	fmt.Println(cleaned.TimeAt(384).Format("15:04:05.000"))

	// Output:
	// 09:30:01.500
}

func ExampleSum() {
	_, err := signal.Sum([]float64{1, 2, 3}, []float64{1, 2})
	fmt.Println(err)

	// Output:
	// sum length mismatch at 1: 2 != 3
}
