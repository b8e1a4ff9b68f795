package player

import (
	"math"

	"github.com/samber/lo"
)

// NearestRate returns the supported rate closest to rate.
// Ties resolve to the slower rate.
func NearestRate(rate float64, supported []float64) float64 {
	if len(supported) == 0 {
		return rate
	}

	return lo.MinBy(supported, func(a, b float64) bool {
		da, db := math.Abs(a-rate), math.Abs(b-rate)
		if da == db {
			return a < b
		}
		return da < db
	})
}
