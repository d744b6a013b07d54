package rdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/entity/mocks"
	"github.com/liverty-music/archive-core/internal/infrastructure/database/rdb"
	"github.com/liverty-music/archive-core/internal/scoring"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newArchiveRepository(t *testing.T, historyMax int, storePushAcc bool) (*rdb.ArchiveRepository, *mocks.MockChartTable) {
	t.Helper()
	cleanTables(t, testDB)
	chartTable := mocks.NewMockChartTable(t)
	engine := scoring.NewPushAccEngine(100)
	return rdb.NewArchiveRepository(testDB, chartTable, engine, historyMax, storePushAcc), chartTable
}

func scoreRow(songID string, difficulty entity.Difficulty, acc float64, isCurrent bool) *entity.ScoreRow {
	return &entity.ScoreRow{
		SongID:     songID,
		Difficulty: difficulty,
		Score:      900000,
		Acc:        acc,
		RKS:        scoring.ChartRKS(acc, 15.0),
		IsCurrent:  isCurrent,
		PlayTime:   time.Now(),
	}
}

func TestArchiveRepository_ReplaceCurrent_EmptyBatch(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)

	err := repo.ReplaceCurrent(context.Background(), &entity.ScoreBatch{})

	assert.Error(t, err)
}

func TestArchiveRepository_ReplaceCurrent_InsertsScoresAndHeader(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)
	ctx := context.Background()

	batch := &entity.ScoreBatch{
		PlayerID:   "player-1",
		PlayerName: "Alice",
		Scores: []*entity.ScoreRow{
			scoreRow("song-a", entity.DifficultyIN, 98.5, true),
			scoreRow("song-b", entity.DifficultyHD, 100.0, true),
		},
	}

	err := repo.ReplaceCurrent(ctx, batch)
	assert.NoError(t, err)

	archive, err := repo.GetArchive(ctx, "player-1")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", archive.PlayerName)
	assert.Len(t, archive.Current, 2)
}

func TestArchiveRepository_ReplaceCurrent_DemotesPriorScoresToHistory(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)
	ctx := context.Background()

	first := &entity.ScoreBatch{
		PlayerID: "player-1", PlayerName: "Alice",
		Scores: []*entity.ScoreRow{scoreRow("song-a", entity.DifficultyIN, 95.0, true)},
	}
	assert.NoError(t, repo.ReplaceCurrent(ctx, first))

	second := &entity.ScoreBatch{
		PlayerID: "player-1", PlayerName: "Alice",
		Scores: []*entity.ScoreRow{scoreRow("song-a", entity.DifficultyIN, 98.0, true)},
	}
	assert.NoError(t, repo.ReplaceCurrent(ctx, second))

	archive, err := repo.GetArchive(ctx, "player-1")
	assert.NoError(t, err)
	assert.Len(t, archive.Current, 1)
	assert.InDelta(t, 98.0, archive.Current[0].Acc, 0.0001)

	key := entity.ChartKey{SongID: "song-a", Difficulty: entity.DifficultyIN}
	assert.Len(t, archive.History[key], 1)
	assert.InDelta(t, 95.0, archive.History[key][0].Acc, 0.0001)
}

func TestArchiveRepository_GetArchive_NotFound(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)

	_, err := repo.GetArchive(context.Background(), "no-such-player")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestArchiveRepository_RecomputeCompositeRKS(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)
	ctx := context.Background()

	batch := &entity.ScoreBatch{
		PlayerID: "player-1", PlayerName: "Alice",
		Scores: []*entity.ScoreRow{
			scoreRow("song-a", entity.DifficultyIN, 100.0, true),
		},
	}
	batch.Scores[0].IsAP = true
	assert.NoError(t, repo.ReplaceCurrent(ctx, batch))

	err := repo.RecomputeCompositeRKS(ctx, "player-1")
	assert.NoError(t, err)

	archive, err := repo.GetArchive(ctx, "player-1")
	assert.NoError(t, err)
	assert.Greater(t, archive.CompositeRKS, 0.0)
}

func TestArchiveRepository_RecomputeCompositeRKS_ExcludesLegacyScores(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)
	ctx := context.Background()

	legacy := scoreRow("song-a", entity.DifficultyAT, 100.0, true)
	legacy.IsLegacy = true
	batch := &entity.ScoreBatch{PlayerID: "player-1", PlayerName: "Alice", Scores: []*entity.ScoreRow{legacy}}
	assert.NoError(t, repo.ReplaceCurrent(ctx, batch))

	err := repo.RecomputeCompositeRKS(ctx, "player-1")
	assert.NoError(t, err)

	archive, err := repo.GetArchive(ctx, "player-1")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, archive.CompositeRKS)
}

func TestArchiveRepository_RecomputePushAcc_DisabledIsNoop(t *testing.T) {
	repo, _ := newArchiveRepository(t, 5, false)
	ctx := context.Background()

	batch := &entity.ScoreBatch{
		PlayerID: "player-1", PlayerName: "Alice",
		Scores: []*entity.ScoreRow{scoreRow("song-a", entity.DifficultyIN, 95.0, true)},
	}
	assert.NoError(t, repo.ReplaceCurrent(ctx, batch))

	err := repo.RecomputePushAcc(ctx, "player-1")
	assert.NoError(t, err)

	_, err = repo.RankPushAcc(ctx, "player-1")
	assert.Error(t, err)
}

func TestArchiveRepository_RecomputePushAcc_AndRank(t *testing.T) {
	repo, chartTable := newArchiveRepository(t, 5, true)
	ctx := context.Background()

	chartTable.EXPECT().Constant(mock.Anything, mock.Anything).Return(15.0, nil).Maybe()

	batch := &entity.ScoreBatch{
		PlayerID: "player-1", PlayerName: "Alice",
		Scores: []*entity.ScoreRow{scoreRow("song-a", entity.DifficultyIN, 95.0, true)},
	}
	assert.NoError(t, repo.ReplaceCurrent(ctx, batch))

	assert.NoError(t, repo.RecomputePushAcc(ctx, "player-1"))

	rows, err := repo.RankPushAcc(ctx, "player-1")
	assert.NoError(t, err)
	if assert.Len(t, rows, 1) {
		assert.Equal(t, "song-a", rows[0].SongID)
		assert.Greater(t, rows[0].PushAcc, 95.0)
	}
}

func TestArchiveRepository_RecomputePushAcc_SkipsChartsAtMaxedAcc(t *testing.T) {
	repo, chartTable := newArchiveRepository(t, 5, true)
	ctx := context.Background()

	chartTable.EXPECT().Constant(mock.Anything, mock.Anything).Return(15.0, nil).Maybe()

	maxed := scoreRow("song-a", entity.DifficultyIN, 100.0, true)
	maxed.IsAP = true
	batch := &entity.ScoreBatch{PlayerID: "player-1", PlayerName: "Alice", Scores: []*entity.ScoreRow{maxed}}
	assert.NoError(t, repo.ReplaceCurrent(ctx, batch))

	assert.NoError(t, repo.RecomputePushAcc(ctx, "player-1"))

	_, err := repo.RankPushAcc(ctx, "player-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
