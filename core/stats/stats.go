// Package stats has the statistical primitives behind dimension analysis.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquare computes the goodness-of-fit statistic for observed counts
// against expected counts. Categories with a non-positive expected count
// contribute nothing, since the ratio is undefined there; callers flag
// those categories separately.
func ChiSquare(observed []int, expected []float64) float64 {
	var sum float64
	for i := range observed {
		if i >= len(expected) || expected[i] <= 0 {
			continue
		}
		diff := float64(observed[i]) - expected[i]
		sum += diff * diff / expected[i]
	}
	return sum
}

// PValue returns the survival probability of the chi-squared distribution
// with df degrees of freedom at the given statistic.
func PValue(chiSquare float64, df int) float64 {
	if df < 1 {
		return 1
	}
	dist := distuv.ChiSquared{K: float64(df)}
	return dist.Survival(chiSquare)
}

// CramersV normalizes a chi-square statistic into the [0, 1] effect-size
// range given the sample size n and category count k.
func CramersV(chiSquare float64, n, k int) float64 {
	if n <= 0 || k < 2 {
		return 0
	}
	return math.Sqrt(chiSquare / (float64(n) * float64(k-1)))
}

// ProportionZ returns the z-score of an observed proportion against an
// expected proportion for a category of size n, using the normal
// approximation to the binomial.
func ProportionZ(observedRate, expectedRate float64, n int) float64 {
	if n <= 0 || expectedRate <= 0 || expectedRate >= 1 {
		return 0
	}
	se := math.Sqrt(expectedRate * (1 - expectedRate) / float64(n))
	if se == 0 {
		return 0
	}
	return (observedRate - expectedRate) / se
}
