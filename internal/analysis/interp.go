package analysis

// Interp linearly interpolates a sampled series at t. Outside the
// sampled range it clamps to the end values. Times must be strictly
// increasing.
func Interp(times, values []float64, t float64) float64 {
	n := len(times)
	if n == 0 {
		return 0
	}
	if t <= times[0] {
		return values[0]
	}
	if t >= times[n-1] {
		return values[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if times[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	frac := (t - times[lo]) / (times[hi] - times[lo])
	return values[lo] + frac*(values[hi]-values[lo])
}

// InterpSeries evaluates Interp at each requested time.
func InterpSeries(times, values, at []float64) []float64 {
	out := make([]float64, len(at))
	for i, t := range at {
		out[i] = Interp(times, values, t)
	}
	return out
}
