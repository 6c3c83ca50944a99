package rank

import (
	"math"
	"testing"
)

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDenseRank(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected []int
	}{
		{
			name:     "ties keep original order",
			scores:   []float64{5, 5, 3},
			expected: []int{1, 2, 3},
		},
		{
			name:     "strictly descending input",
			scores:   []float64{30, 20, 10},
			expected: []int{1, 2, 3},
		},
		{
			name:     "ascending input",
			scores:   []float64{10, 20, 30},
			expected: []int{3, 2, 1},
		},
		{
			name:     "all equal",
			scores:   []float64{7, 7, 7, 7},
			expected: []int{1, 2, 3, 4},
		},
		{
			name:     "single row",
			scores:   []float64{1.5},
			expected: []int{1},
		},
		{
			name:     "empty",
			scores:   nil,
			expected: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DenseRank(tt.scores)
			if !equalInts(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDenseRankNaNSortsLast(t *testing.T) {
	nan := math.NaN()
	got := DenseRank([]float64{nan, 10, nan, 20})

	// NaN rows take the last ranks, keeping their own input order.
	want := []int{3, 2, 4, 1}
	if !equalInts(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDenseRankInfinity(t *testing.T) {
	got := DenseRank([]float64{1, math.Inf(1), math.Inf(-1)})
	want := []int{2, 1, 3}
	if !equalInts(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestClampNonNegative(t *testing.T) {
	in := []float64{-1, 0, 2.5, -0.001, 7}
	got := ClampNonNegative(in)
	want := []float64{0, 0, 2.5, 0, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Input is never mutated.
	if in[0] != -1 {
		t.Error("ClampNonNegative mutated its input")
	}

	// NaN passes through; ranking handles it.
	if !math.IsNaN(ClampNonNegative([]float64{math.NaN()})[0]) {
		t.Error("NaN did not pass through clamp")
	}
}

func TestDelta(t *testing.T) {
	got := Delta([]int{2, 3, 1}, []int{3, 2, 1})
	want := []int{1, -1, 0}
	if !equalInts(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDistribution(t *testing.T) {
	got := Distribution([]int{1, -1, 0, 1, 1, -2})
	want := []Bucket{{-2, 1}, {-1, 1}, {0, 1}, {1, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	rankA := []int{2, 3, 1}
	rankB := []int{3, 2, 1}
	delta := Delta(rankA, rankB)

	s := Summarize(rankA, rankB, delta, 2)

	if s.TopKOverlap != 1 {
		t.Errorf("TopKOverlap = %d, want 1", s.TopKOverlap)
	}
	if s.Improved != 1 {
		t.Errorf("Improved = %d, want 1", s.Improved)
	}
	if s.Worsened != 1 {
		t.Errorf("Worsened = %d, want 1", s.Worsened)
	}
	want := 2.0 / 3.0
	if math.Abs(s.AvgRankShift-want) > 1e-12 {
		t.Errorf("AvgRankShift = %v, want %v", s.AvgRankShift, want)
	}
}
