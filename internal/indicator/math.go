package indicator

import (
	"math"
	"sort"
)

// ewma computes the recursive exponential moving average with smoothing
// factor 2/(span+1), seeded from the first observation. No warm-up NaNs:
// every output row is defined.
func ewma(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	for i, v := range values {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = alpha*v + (1-alpha)*out[i-1]
	}
	return out
}

// rollMean computes a simple moving average over exactly window values.
// Rows before the window fills are NaN.
func rollMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// rollMeanMin1 is rollMean with a shrinking start: the first rows average
// over however many values exist instead of producing NaN.
func rollMeanMin1(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		n := window
		if i >= window {
			sum -= values[i-window]
		} else {
			n = i + 1
		}
		out[i] = sum / float64(n)
	}
	return out
}

// dropNaN returns the defined values in order.
func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// lastN returns the trailing n values, or everything when fewer exist.
func lastN(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation (n-1 divisor), 0 when fewer
// than two values exist.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var acc float64
	for _, v := range values {
		d := v - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)-1))
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for i, v := range values {
		if i == 0 {
			lo, hi = v, v
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Stats summarizes a value window.
type Stats struct {
	Mean   float64
	Max    float64
	Min    float64
	Std    float64
	Median float64
}

func computeStats(values []float64) Stats {
	lo, hi := minMax(values)
	return Stats{
		Mean:   mean(values),
		Max:    hi,
		Min:    lo,
		Std:    stddev(values),
		Median: median(values),
	}
}
