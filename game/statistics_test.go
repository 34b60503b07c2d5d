package game

import "testing"

func TestStatistics(t *testing.T) {
	data := []float32{4, 1, 3, 2}
	if got := Mean(data); got != 2.5 {
		t.Fatalf("expected mean 2.5, got %v", got)
	}
	if got := Median(data); got != 2.5 {
		t.Fatalf("expected median 2.5, got %v", got)
	}
	if data[0] != 4 {
		t.Fatalf("median must not reorder its input")
	}
	if got := Median([]float32{5, 1, 3}); got != 3 {
		t.Fatalf("expected odd median 3, got %v", got)
	}
	if got := Variance(data); got != 1.25 {
		t.Fatalf("expected variance 1.25, got %v", got)
	}
	if got := StandardDeviation([]float32{2, 2, 2}); got != 0 {
		t.Fatalf("expected no deviation, got %v", got)
	}
	if Mean(nil) != 0 || Median(nil) != 0 || Variance(nil) != 0 {
		t.Fatalf("empty data must yield zero")
	}
}

func TestOutliers(t *testing.T) {
	if got := Outliers([]float32{1, 1, 1, 1, 1, 1, 1, 40}); got != 1 {
		t.Fatalf("expected a single outlier, got %d", got)
	}
	if got := Outliers([]float32{1, 2, 3, 4, 5, 6}); got != 0 {
		t.Fatalf("expected no outliers, got %d", got)
	}
}
