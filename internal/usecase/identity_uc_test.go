package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/entity/mocks"
	"github.com/liverty-music/archive-core/internal/usecase"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/pannpers/go-logging/logging"
	"github.com/stretchr/testify/assert"
)

func TestIdentityUseCase_Bind(t *testing.T) {
	ctx := context.Background()
	logger, _ := logging.New()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		binding := &entity.PlatformBinding{InternalUserID: "user-1", Platform: "discord", PlatformID: "42"}
		repo.EXPECT().Bind(ctx, "discord", "42", "tok0123456789012345678901").
			Return(binding, entity.BindCreated, nil).Once()

		got, result, err := uc.Bind(ctx, "discord", "42", "tok0123456789012345678901")

		assert.NoError(t, err)
		assert.Equal(t, binding, got)
		assert.Equal(t, entity.BindCreated, result)
	})

	t.Run("error - missing fields", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		_, _, err := uc.Bind(ctx, "", "42", "tok")

		assert.ErrorIs(t, err, apperr.New(codes.InvalidArgument, "platform, platformID, and sessionToken are required"))
	})
}

func TestIdentityUseCase_UnbindByToken(t *testing.T) {
	ctx := context.Background()
	logger, _ := logging.New()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		binding := &entity.PlatformBinding{Platform: "discord", PlatformID: "42", SessionToken: "tok"}
		repo.EXPECT().FindBinding(ctx, "discord", "42").Return(binding, nil).Once()
		repo.EXPECT().DeleteBinding(ctx, "discord", "42").Return(nil).Once()

		err := uc.UnbindByToken(ctx, "discord", "42", "tok")

		assert.NoError(t, err)
	})

	t.Run("error - token mismatch", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		binding := &entity.PlatformBinding{Platform: "discord", PlatformID: "42", SessionToken: "other"}
		repo.EXPECT().FindBinding(ctx, "discord", "42").Return(binding, nil).Once()

		err := uc.UnbindByToken(ctx, "discord", "42", "tok")

		assert.ErrorIs(t, err, apperr.New(codes.PermissionDenied, "session token does not match the stored binding"))
	})
}

func TestIdentityUseCase_ConfirmProfileUnbind(t *testing.T) {
	ctx := context.Background()
	logger, _ := logging.New()

	t.Run("error - stored token stale declines fallback", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		verification := &entity.UnbindVerificationCode{
			Platform: "discord", PlatformID: "42", Code: "AB12CD34",
			SessionToken: "stale-token", ExpiresAt: time.Now().Add(time.Minute),
		}
		repo.EXPECT().GetUnbindCode(ctx, "discord", "42").Return(verification, nil).Once()
		repo.EXPECT().DeleteUnbindCode(ctx, "discord", "42").Return(nil).Once()
		upstream.EXPECT().FetchSaveEnvelope(ctx, "stale-token").Return(nil, apperr.ErrUnauthenticated).Once()

		err := uc.ConfirmProfileUnbind(ctx, "discord", "42", "AB12CD34")

		assert.ErrorIs(t, err, apperr.New(codes.FailedPrecondition, "stored session token is stale; profile-proved unbind cannot fall back to a fresh token"))
	})

	t.Run("error - no verification code issued", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		repo.EXPECT().GetUnbindCode(ctx, "discord", "42").Return(nil, apperr.ErrNotFound).Once()

		err := uc.ConfirmProfileUnbind(ctx, "discord", "42", "AB12CD34")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("error - submitted code does not match the issued code", func(t *testing.T) {
		repo := mocks.NewMockIdentityRepository(t)
		upstream := mocks.NewMockUpstreamClient(t)
		uc := usecase.NewIdentityUseCase(repo, upstream, logger)

		verification := &entity.UnbindVerificationCode{
			Platform: "discord", PlatformID: "42", Code: "AB12CD34",
			SessionToken: "tok", ExpiresAt: time.Now().Add(time.Minute),
		}
		repo.EXPECT().GetUnbindCode(ctx, "discord", "42").Return(verification, nil).Once()

		// A mismatched attempt must not consume the code or touch upstream:
		// no DeleteUnbindCode/FetchSaveEnvelope expectation is registered,
		// so the mock's own strict-expectation cleanup fails the test if
		// either is called.
		err := uc.ConfirmProfileUnbind(ctx, "discord", "42", "WRONGCODE")

		assert.ErrorIs(t, err, apperr.New(codes.PermissionDenied, "submitted code does not match the issued verification code"))
	})
}
