package survey

import (
	"github.com/montanaflynn/stats"
)

// percentage returns count/total as a percentage rounded to one decimal, or
// 0 when total is 0.
func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round(float64(count)/float64(total)*100, 1)
}

// complement returns 100 - pct rounded to one decimal, or 0 when total is 0.
func complement(pct float64, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round(100-pct, 1)
}

func round(v float64, places int) float64 {
	r, err := stats.Round(v, places)
	if err != nil {
		return 0
	}
	return r
}

// mean returns the arithmetic mean rounded to two decimals.
func mean(values []float64) (float64, error) {
	m, err := stats.Mean(stats.Float64Data(values))
	if err != nil {
		return 0, err
	}
	return round(m, 2), nil
}
