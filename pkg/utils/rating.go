package utils

import "math"

// RoundRating rounds a mean rating to 1 decimal place.
func RoundRating(mean float64) float64 {
	return math.Round(mean*10) / 10
}
