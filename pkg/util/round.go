package util

import "math"

// Round rounds v to the given number of decimal places.
// Output values are rounded before serialization so JSON payloads stay
// stable across platforms.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Round2 rounds to two decimal places, the portal's display precision.
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Round4 rounds to four decimal places, used for Greeks and weights.
func Round4(v float64) float64 {
	return Round(v, 4)
}
