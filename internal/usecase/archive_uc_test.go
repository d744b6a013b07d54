package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/entity/mocks"
	"github.com/liverty-music/archive-core/internal/usecase"
	"github.com/liverty-music/archive-core/pkg/cache"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/pannpers/go-logging/logging"
	"github.com/stretchr/testify/assert"
)

func newArchiveUseCase(t *testing.T) (usecase.ArchiveUseCase, *mocks.MockArchiveRepository, *mocks.MockIdentityRepository, *mocks.MockUpstreamClient, *mocks.MockChartTable) {
	t.Helper()
	archiveRepo := mocks.NewMockArchiveRepository(t)
	identityRepo := mocks.NewMockIdentityRepository(t)
	upstream := mocks.NewMockUpstreamClient(t)
	chartTable := mocks.NewMockChartTable(t)
	logger, _ := logging.New()
	archiveCache := cache.NewMemoryCache[string, *entity.PlayerArchive](10, time.Minute)
	t.Cleanup(func() { _ = archiveCache.Close() })

	uc := usecase.NewArchiveUseCase(archiveRepo, identityRepo, upstream, chartTable, archiveCache, logger)
	return uc, archiveRepo, identityRepo, upstream, chartTable
}

func TestArchiveUseCase_GetAggregates(t *testing.T) {
	ctx := context.Background()

	t.Run("error - neither token nor platform pair given", func(t *testing.T) {
		uc, _, _, _, _ := newArchiveUseCase(t)

		got, err := uc.GetAggregates(ctx, &usecase.AggregatesRequest{})

		assert.ErrorIs(t, err, apperr.New(codes.InvalidArgument, "either a token or a (platform, platformID) pair is required"))
		assert.Nil(t, got)
	})

	t.Run("error - no binding for platform pair", func(t *testing.T) {
		uc, _, identityRepo, _, _ := newArchiveUseCase(t)

		identityRepo.EXPECT().FindBinding(ctx, "discord", "42").Return(nil, apperr.ErrNotFound).Once()

		got, err := uc.GetAggregates(ctx, &usecase.AggregatesRequest{Platform: "discord", PlatformID: "42"})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("error - upstream rejects token resolved from platform pair", func(t *testing.T) {
		uc, _, identityRepo, upstream, _ := newArchiveUseCase(t)

		binding := &entity.PlatformBinding{InternalUserID: "user-1", SessionToken: "stale-token"}
		identityRepo.EXPECT().FindBinding(ctx, "discord", "42").Return(binding, nil).Once()
		upstream.EXPECT().FetchSaveEnvelope(ctx, "stale-token").Return(nil, apperr.ErrUnauthenticated).Once()
		upstream.EXPECT().FetchProfile(ctx, "stale-token").Return(nil, apperr.ErrUnauthenticated).Maybe()

		got, err := uc.GetAggregates(ctx, &usecase.AggregatesRequest{Platform: "discord", PlatformID: "42"})

		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Nil(t, got)
	})

	t.Run("error - binding not found for direct token", func(t *testing.T) {
		uc, _, identityRepo, _, _ := newArchiveUseCase(t)

		identityRepo.EXPECT().FindBindingByToken(ctx, "tok").Return(nil, apperr.ErrNotFound).Once()

		got, err := uc.GetAggregates(ctx, &usecase.AggregatesRequest{Token: "tok"})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestArchiveUseCase_GetArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("error - empty player id", func(t *testing.T) {
		uc, _, _, _, _ := newArchiveUseCase(t)

		got, err := uc.GetArchive(ctx, "")

		assert.ErrorIs(t, err, apperr.New(codes.InvalidArgument, "player ID cannot be empty"))
		assert.Nil(t, got)
	})

	t.Run("cache miss populates cache from repository", func(t *testing.T) {
		uc, archiveRepo, _, _, _ := newArchiveUseCase(t)

		archive := &entity.PlayerArchive{PlayerID: "player-1", CompositeRKS: 15.5}
		archiveRepo.EXPECT().GetArchive(ctx, "player-1").Return(archive, nil).Once()

		got, err := uc.GetArchive(ctx, "player-1")
		assert.NoError(t, err)
		assert.Equal(t, archive, got)

		// Second call must hit the cache, not the repository again.
		got2, err := uc.GetArchive(ctx, "player-1")
		assert.NoError(t, err)
		assert.Equal(t, archive, got2)
	})

	t.Run("error - not found propagates and is not cached", func(t *testing.T) {
		uc, archiveRepo, _, _, _ := newArchiveUseCase(t)

		archiveRepo.EXPECT().GetArchive(ctx, "player-2").Return(nil, apperr.ErrNotFound).Once()

		got, err := uc.GetArchive(ctx, "player-2")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Nil(t, got)
	})
}
