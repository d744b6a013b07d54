package rdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/infrastructure/database/rdb"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/stretchr/testify/assert"
)

func newIdentityRepository(t *testing.T) *rdb.IdentityRepository {
	t.Helper()
	cleanTables(t, testDB)
	return rdb.NewIdentityRepository(testDB)
}

func TestIdentityRepository_FindBinding_NotFound(t *testing.T) {
	repo := newIdentityRepository(t)

	_, err := repo.FindBinding(context.Background(), "steam", "unknown-platform-id")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_Bind_CreatesNewUserAndBinding(t *testing.T) {
	repo := newIdentityRepository(t)

	binding, result, err := repo.Bind(context.Background(), "steam", "p-1", "token-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.BindCreated, result)
	assert.NotEmpty(t, binding.InternalUserID)
	assert.Equal(t, "token-1", binding.SessionToken)
}

func TestIdentityRepository_Bind_UnchangedWhenTokenAlreadyMatches(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	first, _, err := repo.Bind(ctx, "steam", "p-1", "token-1")
	assert.NoError(t, err)

	second, result, err := repo.Bind(ctx, "steam", "p-1", "token-1")

	assert.NoError(t, err)
	assert.Equal(t, entity.BindUnchanged, result)
	assert.Equal(t, first.InternalUserID, second.InternalUserID)
}

func TestIdentityRepository_Bind_TokenUpdatedForExistingBinding(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	first, _, err := repo.Bind(ctx, "steam", "p-1", "token-1")
	assert.NoError(t, err)

	updated, result, err := repo.Bind(ctx, "steam", "p-1", "token-2")

	assert.NoError(t, err)
	assert.Equal(t, entity.BindTokenUpdated, result)
	assert.Equal(t, first.InternalUserID, updated.InternalUserID)
	assert.Equal(t, "token-2", updated.SessionToken)
}

func TestIdentityRepository_Bind_AttachesToUserFoundByToken(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	existing, _, err := repo.Bind(ctx, "steam", "p-1", "shared-token")
	assert.NoError(t, err)

	attached, result, err := repo.Bind(ctx, "discord", "p-2", "shared-token")

	assert.NoError(t, err)
	assert.Equal(t, entity.BindAttached, result)
	assert.Equal(t, existing.InternalUserID, attached.InternalUserID)
}

func TestIdentityRepository_FindBindingByToken(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	_, _, err := repo.Bind(ctx, "steam", "p-1", "token-1")
	assert.NoError(t, err)

	binding, err := repo.FindBindingByToken(ctx, "token-1")

	assert.NoError(t, err)
	assert.Equal(t, "steam", binding.Platform)
	assert.Equal(t, "p-1", binding.PlatformID)
}

func TestIdentityRepository_FindBindingByToken_NotFound(t *testing.T) {
	repo := newIdentityRepository(t)

	_, err := repo.FindBindingByToken(context.Background(), "no-such-token")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_DeleteBinding(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	_, _, err := repo.Bind(ctx, "steam", "p-1", "token-1")
	assert.NoError(t, err)

	err = repo.DeleteBinding(ctx, "steam", "p-1")
	assert.NoError(t, err)

	_, err = repo.FindBinding(ctx, "steam", "p-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_DeleteBinding_NotFound(t *testing.T) {
	repo := newIdentityRepository(t)

	err := repo.DeleteBinding(context.Background(), "steam", "no-such-id")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_PutGetAndDeleteUnbindCode(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	code := &entity.UnbindVerificationCode{
		Platform:     "steam",
		PlatformID:   "p-1",
		Code:         "123456",
		SessionToken: "token-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	assert.NoError(t, repo.PutUnbindCode(ctx, code))

	fetched, err := repo.GetUnbindCode(ctx, "steam", "p-1")

	assert.NoError(t, err)
	assert.Equal(t, "123456", fetched.Code)
	assert.Equal(t, "token-1", fetched.SessionToken)

	// A mismatched attempt never deletes the code: it must still be there.
	again, err := repo.GetUnbindCode(ctx, "steam", "p-1")
	assert.NoError(t, err)
	assert.Equal(t, "123456", again.Code)

	assert.NoError(t, repo.DeleteUnbindCode(ctx, "steam", "p-1"))

	// Consuming deletes the row; a second fetch must miss.
	_, err = repo.GetUnbindCode(ctx, "steam", "p-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_GetUnbindCode_NotFound(t *testing.T) {
	repo := newIdentityRepository(t)

	_, err := repo.GetUnbindCode(context.Background(), "steam", "no-code")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_DeleteUnbindCode_NotFound(t *testing.T) {
	repo := newIdentityRepository(t)

	err := repo.DeleteUnbindCode(context.Background(), "steam", "no-code")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_GetUnbindCode_Expired(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	code := &entity.UnbindVerificationCode{
		Platform:     "steam",
		PlatformID:   "p-1",
		Code:         "123456",
		SessionToken: "token-1",
		ExpiresAt:    time.Now().Add(-time.Hour),
	}
	assert.NoError(t, repo.PutUnbindCode(ctx, code))

	_, err := repo.GetUnbindCode(ctx, "steam", "p-1")

	assert.Error(t, err)

	// Expired codes are still deleted (lazy expiry), so a retry also misses.
	_, err = repo.GetUnbindCode(ctx, "steam", "p-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepository_PutUnbindCode_ReplacesExisting(t *testing.T) {
	repo := newIdentityRepository(t)
	ctx := context.Background()

	first := &entity.UnbindVerificationCode{
		Platform: "steam", PlatformID: "p-1", Code: "111111",
		SessionToken: "token-1", ExpiresAt: time.Now().Add(time.Hour),
	}
	second := &entity.UnbindVerificationCode{
		Platform: "steam", PlatformID: "p-1", Code: "222222",
		SessionToken: "token-2", ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, repo.PutUnbindCode(ctx, first))
	assert.NoError(t, repo.PutUnbindCode(ctx, second))

	fetched, err := repo.GetUnbindCode(ctx, "steam", "p-1")

	assert.NoError(t, err)
	assert.Equal(t, "222222", fetched.Code)
}
