package util

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	cases := []struct {
		v      float64
		places int
		want   float64
	}{
		{1.23456, 2, 1.23},
		{1.236, 2, 1.24},
		{-1.236, 2, -1.24},
		{10.0, 2, 10.0},
		{0.000049, 4, 0.0},
		{0.26666666, 3, 0.267},
	}
	for _, tc := range cases {
		if got := Round(tc.v, tc.places); got != tc.want {
			t.Fatalf("Round(%v, %d) = %v, want %v", tc.v, tc.places, got, tc.want)
		}
	}
}

func TestRoundPassesThroughNonFinite(t *testing.T) {
	if !math.IsNaN(Round2(math.NaN())) {
		t.Fatalf("Round2(NaN) should stay NaN")
	}
	if !math.IsInf(Round2(math.Inf(1)), 1) {
		t.Fatalf("Round2(+Inf) should stay +Inf")
	}
}
