package stage_test

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/filter/stage"
	"github.com/cwbudde/algo-biosignal/dsp/signal"
)

func ExampleApply() {
	gen := signal.NewGenerator(256)
	alpha, _ := gen.Sine(10, 1, 2560)
	raw := gen.Raw("Cz", alpha)

	cleaned, err := stage.Apply(raw, stage.DefaultSpecs())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cleaned.Channel(), cleaned.Len())
	// Output:
	// Cz 2560
}

func ExampleSpec_Validate() {
	s := stage.Spec{Kind: stage.Notch, Center: 60, Q: 10}
	fmt.Println(s.Validate(100))
	// Output:
	// stage.Validate: param center=60: must lie strictly inside (0, 50) Hz
}
