package usecase_test

import (
	"context"
	"testing"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/entity/mocks"
	"github.com/liverty-music/archive-core/internal/usecase"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-logging/logging"
	"github.com/stretchr/testify/assert"
)

func TestSongUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	logger, _ := logging.New()

	t.Run("success", func(t *testing.T) {
		chartTable := mocks.NewMockChartTable(t)
		uc := usecase.NewSongUseCase(chartTable, logger)

		song := &entity.SongInfo{SongID: "song-1", Title: "Rrhar'il"}
		chartTable.EXPECT().Resolve(ctx, "rrhar").Return(song, nil).Once()

		got, err := uc.Resolve(ctx, "rrhar")

		assert.NoError(t, err)
		assert.Equal(t, song, got)
	})

	t.Run("error - empty query", func(t *testing.T) {
		chartTable := mocks.NewMockChartTable(t)
		uc := usecase.NewSongUseCase(chartTable, logger)

		got, err := uc.Resolve(ctx, "")

		assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
		assert.Nil(t, got)
	})

	t.Run("error - not found propagates", func(t *testing.T) {
		chartTable := mocks.NewMockChartTable(t)
		uc := usecase.NewSongUseCase(chartTable, logger)

		chartTable.EXPECT().Resolve(ctx, "unknown").Return(nil, apperr.ErrNotFound).Once()

		got, err := uc.Resolve(ctx, "unknown")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
	})
}
