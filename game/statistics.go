package game

import (
	"slices"

	"github.com/chewxy/math32"
)

// Sum ...
func Sum(data []float32) (result float32) {
	for _, v := range data {
		result += v
	}
	return result
}

// Mean ...
func Mean(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float32(len(data))
}

// Median returns the median of data without reordering it.
func Median(data []float32) float32 {
	count := len(data)
	if count == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if count%2 != 0 {
		return sorted[count/2]
	}
	return (sorted[count/2-1] + sorted[count/2]) * 0.5
}

// Variance ...
func Variance(data []float32) (variance float32) {
	if len(data) == 0 {
		return 0
	}
	mean := Mean(data)
	for _, number := range data {
		variance += (number - mean) * (number - mean)
	}
	return variance / float32(len(data))
}

// StandardDeviation ...
func StandardDeviation(data []float32) float32 {
	return math32.Sqrt(Variance(data))
}

// Outliers returns the amount of values outside 1.5 interquartile ranges of the quartiles.
func Outliers(data []float32) int {
	if len(data) < 4 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	half := len(sorted) / 2
	q1 := Median(sorted[:half])
	q3 := Median(sorted[len(sorted)-half:])

	iqr := q3 - q1
	low, high := q1-1.5*iqr, q3+1.5*iqr

	var n int
	for _, v := range sorted {
		if v < low || v > high {
			n++
		}
	}
	return n
}
