package stats

import (
	"gonum.org/v1/gonum/stat"
)

// Returns computes simple daily returns from a price column. Steps with a
// non-positive denominator are skipped, so the result has length <= n-1 and
// is empty for fewer than two prices.
func Returns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1]
		if prev <= 0 {
			continue
		}
		out = append(out, (prices[i]-prev)/prev)
	}
	return out
}

// Mean is the arithmetic mean, 0 for an empty sequence.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Variance is the sample variance (n-1 divisor), 0 for fewer than two values.
func Variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}

// StdDev is the sample standard deviation.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.StdDev(x, nil)
}

// AlignRight truncates both sequences to their common length, keeping the
// most recent (trailing) values of each.
func AlignRight(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	return x[len(x)-n:], y[len(y)-n:]
}

// Covariance is the sample covariance of the right-aligned overlap of x and
// y, using each side's own mean over that overlap.
func Covariance(x, y []float64) float64 {
	ax, ay := AlignRight(x, y)
	if len(ax) < 2 {
		return 0
	}
	return stat.Covariance(ax, ay, nil)
}

// Correlation is the Pearson correlation of the right-aligned overlap,
// 0 when either side has no spread.
func Correlation(x, y []float64) float64 {
	ax, ay := AlignRight(x, y)
	if len(ax) < 2 {
		return 0
	}
	sx, sy := StdDev(ax), StdDev(ay)
	if sx == 0 || sy == 0 {
		return 0
	}
	return stat.Covariance(ax, ay, nil) / (sx * sy)
}
