package scoring_test

import (
	"testing"

	"github.com/liverty-music/archive-core/internal/scoring"
	"github.com/stretchr/testify/assert"
)

func TestChartRKS(t *testing.T) {
	tests := []struct {
		name     string
		acc      float64
		constant float64
		want     float64
	}{
		{name: "full acc", acc: 100.0, constant: 16.0, want: 16.0},
		{name: "below floor", acc: 69.99, constant: 16.0, want: 0},
		{name: "exactly at floor", acc: 70.0, constant: 16.0, want: (70.0 - 55.0) / 45.0 * (70.0 - 55.0) / 45.0 * 16.0},
		{name: "zero constant", acc: 100.0, constant: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.ChartRKS(tt.acc, tt.constant)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComposite(t *testing.T) {
	t.Run("fewer than 27 charts and no AP", func(t *testing.T) {
		records := []scoring.Rated{
			{SongID: "a", RKS: 15.0},
			{SongID: "b", RKS: 14.0},
		}
		got := scoring.Composite(records)
		assert.InDelta(t, 29.0/30.0, got, 1e-9)
	})

	t.Run("best 27 plus top 3 AP", func(t *testing.T) {
		records := make([]scoring.Rated, 0, 30)
		for i := 0; i < 27; i++ {
			records = append(records, scoring.Rated{SongID: "base", RKS: 16.0})
		}
		for i := 0; i < 5; i++ {
			records = append(records, scoring.Rated{SongID: "ap", RKS: 10.0, IsAP: true})
		}
		got := scoring.Composite(records)
		want := (27.0*16.0 + 3.0*10.0) / 30.0
		assert.InDelta(t, want, got, 1e-9)
	})

	t.Run("empty record set", func(t *testing.T) {
		got := scoring.Composite(nil)
		assert.Zero(t, got)
	})
}

func TestSortByRKSDesc(t *testing.T) {
	records := []scoring.Rated{
		{SongID: "low", RKS: 5.0},
		{SongID: "high", RKS: 15.0},
		{SongID: "mid", RKS: 10.0},
	}

	sorted := scoring.SortByRKSDesc(records)

	assert.Equal(t, []string{"high", "mid", "low"}, []string{sorted[0].SongID, sorted[1].SongID, sorted[2].SongID})
	// The input slice must not be mutated.
	assert.Equal(t, "low", records[0].SongID)
}

func TestBlendCompositeRKS(t *testing.T) {
	tests := []struct {
		name     string
		bestN    float64
		ap       float64
		apCount  int
		wantRKS  float64
	}{
		{name: "no AP charts", bestN: 15.0, ap: 0, apCount: 0, wantRKS: 15.0},
		{name: "one AP chart", bestN: 15.0, ap: 9.0, apCount: 1, wantRKS: 15.0*5.0/6.0 + 9.0/6.0},
		{name: "two AP charts", bestN: 15.0, ap: 9.0, apCount: 2, wantRKS: 15.0*2.0/3.0 + 9.0/3.0},
		{name: "three or more AP charts", bestN: 15.0, ap: 9.0, apCount: 3, wantRKS: 15.0*0.5 + 9.0*0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.BlendCompositeRKS(tt.bestN, tt.ap, tt.apCount)
			assert.InDelta(t, tt.wantRKS, got, 1e-9)
		})
	}
}
