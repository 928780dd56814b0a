package specfn

import (
	"math"
	"testing"
)

// Reference values from Abramowitz & Stegun tables 5.1 and 5.2.
func TestE1Reference(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0.1, 1.8229239584},
		{0.5, 0.5597735948},
		{1.0, 0.2193839344},
		{2.0, 0.0489005107},
		{5.0, 0.00114829559128},
		{10.0, 4.15696893e-6},
	}

	for _, tt := range tests {
		got := E1(tt.x)
		if relErr(got, tt.want) > 1e-9 {
			t.Errorf("E1(%v) = %.12g, want %.10g", tt.x, got, tt.want)
		}
	}
}

func TestEiReference(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0.5, 0.4542199049},
		{1.0, 1.8951178164},
		{2.0, 4.9542343561},
		{5.0, 40.18527536},
		{10.0, 2492.2289763},
	}

	for _, tt := range tests {
		got := Ei(tt.x)
		if relErr(got, tt.want) > 1e-9 {
			t.Errorf("Ei(%v) = %.12g, want %.10g", tt.x, got, tt.want)
		}
	}

	// asymptotic branch, looser reference
	if got := Ei(40); relErr(got, 6.0397183e15) > 1e-6 {
		t.Errorf("Ei(40) = %.8g, want ~6.0397183e15", got)
	}
}

// The power series and the asymptotic expansion must agree near the
// branch cutoff.
func TestEiBranchConsistency(t *testing.T) {
	for _, x := range []float64{34.0, 36.0} {
		s := eiSeries(x)
		a := eiAsymptotic(x)
		if relErr(s, a) > 1e-11 {
			t.Errorf("series/asymptotic mismatch at %v: %g vs %g", x, s, a)
		}
	}
}

func TestEiNegativeIsMinusE1(t *testing.T) {
	for _, x := range []float64{0.25, 1, 3, 20} {
		if got, want := Ei(-x), -E1(x); got != want {
			t.Errorf("Ei(-%v) = %v, want %v", x, got, want)
		}
	}
}

func TestE1EdgeCases(t *testing.T) {
	if !math.IsInf(E1(0), 1) {
		t.Error("E1(0) should be +Inf")
	}
	if !math.IsNaN(E1(-1)) {
		t.Error("E1(-1) should be NaN")
	}
	if !math.IsInf(Ei(0), -1) {
		t.Error("Ei(0) should be -Inf")
	}
}

// d/dx Ei(x) = exp(x)/x; check with a central difference.
func TestEiDerivative(t *testing.T) {
	for _, x := range []float64{0.5, 2, 8} {
		h := 1e-6 * x
		num := (Ei(x+h) - Ei(x-h)) / (2 * h)
		want := math.Exp(x) / x
		if relErr(num, want) > 1e-6 {
			t.Errorf("dEi/dx at %v: %v, want %v", x, num, want)
		}
	}
}

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}
