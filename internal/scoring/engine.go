// Package scoring implements the RKS rating and push-ACC inversion engine.
package scoring

import "sort"

// minRKSAcc is the ACC floor below which a chart contributes zero RKS.
const minRKSAcc = 70.0

// Rated is one scored chart carrying the fields the engine needs:
// its RKS contribution and whether it was an all-perfect clear.
type Rated struct {
	SongID     string
	Difficulty int
	Constant   float64
	Acc        float64
	RKS        float64
	IsAP       bool
}

// ChartRKS computes the single-chart RKS for an accuracy/constant pair.
//
//	rks = ((acc-55)/45)^2 * constant   when acc >= 70
//	rks = 0                            otherwise
func ChartRKS(acc, constant float64) float64 {
	if acc < minRKSAcc {
		return 0
	}
	factor := (acc - 55.0) / 45.0
	return factor * factor * constant
}

// Composite computes a player's composite RKS from their best-27
// (non-AP-restricted) and best-3-AP chart lists, both already sorted by
// RKS descending. The denominator is fixed at 30 regardless of how many
// charts qualify — spec.md §4.3.
func Composite(sortedByRKSDesc []Rated) (exact float64) {
	b27 := 0.0
	for i, r := range sortedByRKSDesc {
		if i >= 27 {
			break
		}
		b27 += r.RKS
	}

	ap3 := 0.0
	apCount := 0
	for _, r := range sortedByRKSDesc {
		if !r.IsAP {
			continue
		}
		if apCount >= 3 {
			break
		}
		ap3 += r.RKS
		apCount++
	}

	return (b27 + ap3) / 30.0
}

// SortByRKSDesc sorts a copy of records by RKS descending, stable for
// equal values so callers get deterministic push-ACC simulations.
func SortByRKSDesc(records []Rated) []Rated {
	sorted := make([]Rated, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RKS > sorted[j].RKS
	})
	return sorted
}

// BlendCompositeRKS blends the best-27 average with the top-AP average
// per the archive recompute rule (spec.md §4.4), using literal constants
// regardless of any configured best-N-count (resolved Open Question).
func BlendCompositeRKS(bestNAvg, apAvg float64, apCount int) float64 {
	switch {
	case apCount <= 0:
		return bestNAvg
	case apCount == 1:
		return bestNAvg*5.0/6.0 + apAvg/6.0
	case apCount == 2:
		return bestNAvg*2.0/3.0 + apAvg/3.0
	default:
		return bestNAvg*0.5 + apAvg*0.5
	}
}
