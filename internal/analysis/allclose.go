package analysis

import (
	"fmt"
	"math"
)

// Default tolerances for trajectory comparison.
const (
	DefaultRtol = 1e-5
	DefaultAtol = 1e-8
)

// AllClose reports whether |a[i]-b[i]| <= atol + rtol*|b[i]| holds for
// every component. NaN never compares close; infinities compare close
// only to an identical infinity.
func AllClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !close(a[i], b[i], rtol, atol) {
			return false
		}
	}
	return true
}

func close(x, y, rtol, atol float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}

// MaxAbsErr returns the largest absolute componentwise difference.
func MaxAbsErr(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > worst {
			worst = d
		}
	}
	return worst
}

// Residuals evaluates ref at each time and subtracts it from the
// corresponding sample.
func Residuals(times, values []float64, ref func(t float64) float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = values[i] - ref(t)
	}
	return out
}

// CompareReport summarizes a numeric-versus-reference check over one
// series.
type CompareReport struct {
	Name      string
	N         int
	MaxAbs    float64
	MaxRel    float64
	WorstTime float64
	Pass      bool
}

// Compare checks a sampled series against a reference function under
// AllClose semantics and records where the worst error occurred.
func Compare(name string, times, values []float64, ref func(t float64) float64, rtol, atol float64) CompareReport {
	rep := CompareReport{Name: name, N: len(times), Pass: true}
	for i, t := range times {
		want := ref(t)
		d := math.Abs(values[i] - want)
		if d > rep.MaxAbs {
			rep.MaxAbs = d
			rep.WorstTime = t
		}
		if want != 0 {
			if rel := d / math.Abs(want); rel > rep.MaxRel {
				rep.MaxRel = rel
			}
		}
		if !close(values[i], want, rtol, atol) {
			rep.Pass = false
		}
	}
	return rep
}

func (r CompareReport) String() string {
	status := "PASS"
	if !r.Pass {
		status = "FAIL"
	}
	return fmt.Sprintf("%-24s %s  n=%d  max|err|=%.3e  maxrel=%.3e  worst at t=%.4g",
		r.Name, status, r.N, r.MaxAbs, r.MaxRel, r.WorstTime)
}
