// Package rank turns score vectors into dense ranks and computes the
// comparison measures shown to analysts: rank deltas, their distribution,
// and top-K summary metrics.
package rank

import (
	"math"
	"sort"
)

// ClampNonNegative raises negative scores to zero, leaving everything else
// untouched (NaN propagates). It is applied uniformly to every formula's
// output before ranking and never inside evaluation, so raw evaluation
// results still show negative values.
func ClampNonNegative(scores []float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		if s < 0 {
			out[i] = 0
		} else {
			out[i] = s
		}
	}
	return out
}

// DenseRank assigns rank 1 to the highest score and rank N to the lowest,
// with no gaps and no shared ranks. Ties keep their original row order:
// among equal scores, the row that appears first gets the lower rank.
// NaN scores sort last, also in original row order.
func DenseRank(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		aNaN, bNaN := math.IsNaN(sa), math.IsNaN(sb)
		if aNaN || bNaN {
			return !aNaN && bNaN
		}
		return sa > sb
	})

	ranks := make([]int, len(scores))
	for pos, i := range order {
		ranks[i] = pos + 1
	}
	return ranks
}

// Delta computes rank_b - rank_a per row. A positive delta means formula B
// ranks the row worse than formula A; a negative delta means it improved.
// Both slices must come from the same table and have equal length.
func Delta(rankA, rankB []int) []int {
	out := make([]int, len(rankA))
	for i := range rankA {
		out[i] = rankB[i] - rankA[i]
	}
	return out
}

// Bucket is one bar of the rank change distribution.
type Bucket struct {
	Delta int `json:"delta"`
	Count int `json:"count"`
}

// Distribution counts rows per delta value, ordered by ascending delta.
func Distribution(delta []int) []Bucket {
	counts := make(map[int]int)
	for _, d := range delta {
		counts[d]++
	}

	values := make([]int, 0, len(counts))
	for d := range counts {
		values = append(values, d)
	}
	sort.Ints(values)

	buckets := make([]Bucket, len(values))
	for i, d := range values {
		buckets[i] = Bucket{Delta: d, Count: counts[d]}
	}
	return buckets
}

// Summary holds the headline comparison metrics for one simulation.
type Summary struct {
	TopK         int     `json:"top_k"`
	TopKOverlap  int     `json:"top_k_overlap"`
	AvgRankShift float64 `json:"avg_rank_shift"`
	Improved     int     `json:"improved"`
	Worsened     int     `json:"worsened"`
}

// Summarize computes the four headline metrics: how many rows sit in both
// top-K lists, the mean absolute rank shift, and how many rows moved up
// (delta < 0) or down (delta > 0) under formula B.
func Summarize(rankA, rankB, delta []int, topK int) Summary {
	s := Summary{TopK: topK}

	for i := range rankA {
		if rankA[i] <= topK && rankB[i] <= topK {
			s.TopKOverlap++
		}
	}

	var total float64
	for _, d := range delta {
		if d < 0 {
			s.Improved++
			total -= float64(d)
		} else if d > 0 {
			s.Worsened++
			total += float64(d)
		}
	}
	if len(delta) > 0 {
		s.AvgRankShift = total / float64(len(delta))
	}

	return s
}
