package scoring

import (
	"fmt"
	"math"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultPushAccCacheSize matches the original's 5000-entry cache size,
// used when the caller passes a non-positive size.
const defaultPushAccCacheSize = 5000

// binarySearchIterations is the fixed number of bisection steps used to
// invert the target RKS threshold into an ACC value.
const binarySearchIterations = 10

// PushAccEngine computes, and caches, the minimum ACC a chart needs to
// raise a player's rounded composite RKS by 0.01.
type PushAccEngine struct {
	cache *lru.Cache[string, float64]
}

// NewPushAccEngine builds a push-ACC engine with a bounded LRU cache
// holding at most size entries (config.ScoringConfig.PushAccCacheSize).
func NewPushAccEngine(size int) *PushAccEngine {
	if size <= 0 {
		size = defaultPushAccCacheSize
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		// Only returns an error for a non-positive size, guarded above.
		panic(err)
	}
	return &PushAccEngine{cache: cache}
}

func cacheKey(songID string, difficulty int) string {
	return fmt.Sprintf("%s-%d", songID, difficulty)
}

// ChartConstantLookup resolves the static constant for a chart, used by
// RankPushAcc to compute push-ACC across an entire record set.
type ChartConstantLookup func(songID string, difficulty int) (constant float64, ok bool)

// RankedPushAcc is one chart's computed push-ACC, used by the bulk export.
type RankedPushAcc struct {
	SongID     string
	Difficulty int
	PushAcc    float64
}

// RankPushAcc computes push-ACC for every chart in records whose
// constant is known and positive and whose current ACC is below 100,
// sorted ascending by push-ACC (lowest required ACC first).
func (e *PushAccEngine) RankPushAcc(records []Rated, lookup ChartConstantLookup) []RankedPushAcc {
	sorted := SortByRKSDesc(records)

	var ranked []RankedPushAcc
	for _, r := range records {
		if r.Acc >= 100.0 {
			continue
		}
		constant, ok := lookup(r.SongID, r.Difficulty)
		if !ok || constant <= 0 {
			continue
		}
		pushAcc := e.Calculate(r.SongID, r.Difficulty, constant, sorted)
		if pushAcc <= r.Acc {
			continue
		}
		ranked = append(ranked, RankedPushAcc{SongID: r.SongID, Difficulty: r.Difficulty, PushAcc: pushAcc})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].PushAcc < ranked[j].PushAcc })
	return ranked
}

// Calculate returns the push-ACC for one chart given the player's full,
// RKS-sorted record set. sortedByRKSDesc must already exclude nothing —
// the target chart's own current record, if present, is excluded
// internally during simulation.
func (e *PushAccEngine) Calculate(songID string, difficulty int, constant float64, sortedByRKSDesc []Rated) float64 {
	key := cacheKey(songID, difficulty)
	if v, ok := e.cache.Get(key); ok {
		return v
	}

	result := calculateTargetPushAcc(songID, difficulty, constant, sortedByRKSDesc)
	e.cache.Add(key, result)
	return result
}

// calculateTargetPushAcc implements the four-step inversion: compute the
// current exact RKS, derive the next 0.01 threshold, bound-check ACC=100,
// then binary-search the minimum ACC that clears the threshold.
func calculateTargetPushAcc(songID string, difficulty int, constant float64, sortedByRKSDesc []Rated) float64 {
	currentExact := exactCompositeRKS(sortedByRKSDesc)

	threshold := nextRKSStep(currentExact)
	if currentExact >= threshold {
		return 100.0
	}

	rksAt100 := simulate(songID, difficulty, constant, 100.0, sortedByRKSDesc)
	if rksAt100 < threshold {
		return 100.0
	}

	currentAcc := 70.0
	for _, r := range sortedByRKSDesc {
		if r.SongID == songID && r.Difficulty == difficulty {
			currentAcc = r.Acc
			break
		}
	}

	low, high := currentAcc, 100.0
	for i := 0; i < binarySearchIterations; i++ {
		mid := low + (high-low)/2
		if simulate(songID, difficulty, constant, mid, sortedByRKSDesc) >= threshold {
			high = mid
		} else {
			low = mid
		}
	}

	result := high
	if result < currentAcc {
		result = currentAcc
	}
	final := math.Ceil(result*1000) / 1000
	if final > 100.0 {
		final = 100.0
	}
	return final
}

// nextRKSStep derives the next composite-RKS value at which the rounded
// (two-decimal) composite RKS would tick up by 0.01, using the exact
// value's third decimal digit to decide whether the floor already
// rounded up.
func nextRKSStep(exact float64) float64 {
	thirdDecimal := math.Mod(exact*1000.0, 10.0)
	floor := math.Floor(exact*100.0) / 100.0
	if thirdDecimal >= 5.0 {
		return floor + 0.015
	}
	return floor + 0.005
}

func exactCompositeRKS(sortedByRKSDesc []Rated) float64 {
	return Composite(sortedByRKSDesc)
}

// simulate recomputes composite RKS with the target chart's record
// replaced (or inserted) at the given test ACC, then re-sorted.
func simulate(songID string, difficulty int, constant, testAcc float64, sortedByRKSDesc []Rated) float64 {
	simulated := make([]Rated, 0, len(sortedByRKSDesc)+1)
	for _, r := range sortedByRKSDesc {
		if r.SongID == songID && r.Difficulty == difficulty {
			continue
		}
		simulated = append(simulated, r)
	}

	simulated = append(simulated, Rated{
		SongID:     songID,
		Difficulty: difficulty,
		Constant:   constant,
		Acc:        testAcc,
		RKS:        ChartRKS(testAcc, constant),
		IsAP:       testAcc >= 100.0,
	})

	return Composite(SortByRKSDesc(simulated))
}
