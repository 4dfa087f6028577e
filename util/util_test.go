package util

import (
	"math"
	"testing"
)

func TestEasing(t *testing.T) {
	for _, name := range []string{"", "linear", "Linear", "inOutQuad", "OUTSINE"} {
		f, err := Easing(name)
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if got := f(0); math.Abs(got) > 1e-9 {
			t.Errorf("%q: f(0) = %v", name, got)
		}
		if got := f(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%q: f(1) = %v", name, got)
		}
	}

	lin, _ := Easing("linear")
	if got := lin(0.3); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("linear(0.3) = %v", got)
	}
}

func TestEasingUnknown(t *testing.T) {
	if _, err := Easing("wobble"); err == nil {
		t.Error("expected error for unknown easing")
	}
}

func TestClamp01(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{{-1, 0}, {0.25, 0.25}, {2, 1}} {
		if got := Clamp01(tc.in); got != tc.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
