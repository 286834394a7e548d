package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{name: "config", err: Configf("stage", "bad"), kind: ErrConfiguration},
		{name: "param", err: ParamError("sampen", "m", 0, "must be >= 1"), kind: ErrConfiguration},
		{name: "insufficient", err: Insufficientf("segment", "short"), kind: ErrInsufficientData},
		{name: "instability", err: Instabilityf("sampen", "no matches"), kind: ErrNumericInstability},
		{name: "schema", err: Schemaf("aggregate", "mismatch"), kind: ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Fatalf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if KindOf(wrapped) != tt.kind {
				t.Fatalf("KindOf(wrapped) = %v, want %v", KindOf(wrapped), tt.kind)
			}
		})
	}
}

func TestErrorMessageContext(t *testing.T) {
	err := ParamError("sample_entropy", "m", 0, "must be >= 1").WithWindow(3).WithFeature("sample_entropy")
	msg := err.Error()
	for _, want := range []string{"sample_entropy: ", `feature "sample_entropy"`, "window 3", "param m=0", "must be >= 1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestErrorWithWindowCopies(t *testing.T) {
	base := Insufficientf("dfa", "too short")
	w := base.WithWindow(7)
	if base.Window != NoWindow {
		t.Fatalf("base window mutated: %d", base.Window)
	}
	if w.Window != 7 {
		t.Fatalf("Window = %d, want 7", w.Window)
	}
	e, ok := AsError(fmt.Errorf("ctx: %w", w))
	if !ok || e.Window != 7 {
		t.Fatalf("AsError failed: %v %v", e, ok)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("plain")) != nil {
		t.Fatal("expected nil kind for foreign error")
	}
}
