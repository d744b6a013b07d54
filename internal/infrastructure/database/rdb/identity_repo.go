package rdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/uptrace/bun"
)

const (
	findBindingQuery = `
		SELECT id, internal_user_id, platform, platform_id, session_token, create_time, update_time
		FROM platform_bindings WHERE platform = ? AND platform_id = ?
	`

	findBindingByTokenQuery = `
		SELECT id, internal_user_id, platform, platform_id, session_token, create_time, update_time
		FROM platform_bindings WHERE session_token = ? LIMIT 1
	`

	insertInternalUserQuery = `
		INSERT INTO internal_users (id, create_time) VALUES (?, ?)
	`

	insertBindingQuery = `
		INSERT INTO platform_bindings (id, internal_user_id, platform, platform_id, session_token, create_time, update_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	updateBindingTokenQuery = `
		UPDATE platform_bindings SET session_token = ?, update_time = ? WHERE platform = ? AND platform_id = ?
	`

	deleteBindingQuery = `
		DELETE FROM platform_bindings WHERE platform = ? AND platform_id = ?
	`

	upsertUnbindCodeQuery = `
		INSERT INTO unbind_verification_codes (platform, platform_id, code, session_token, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(platform, platform_id) DO UPDATE SET
			code = excluded.code,
			session_token = excluded.session_token,
			expires_at = excluded.expires_at
	`

	selectUnbindCodeQuery = `
		SELECT platform, platform_id, code, session_token, expires_at
		FROM unbind_verification_codes WHERE platform = ? AND platform_id = ?
	`

	deleteUnbindCodeQuery = `
		DELETE FROM unbind_verification_codes WHERE platform = ? AND platform_id = ?
	`
)

// IdentityRepository implements entity.IdentityRepository against SQLite.
type IdentityRepository struct {
	db *Database
}

// NewIdentityRepository creates a new identity repository.
func NewIdentityRepository(db *Database) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func scanBinding(scanner interface {
	Scan(dest ...any) error
}) (*entity.PlatformBinding, error) {
	b := &entity.PlatformBinding{}
	if err := scanner.Scan(&b.ID, &b.InternalUserID, &b.Platform, &b.PlatformID, &b.SessionToken, &b.CreateTime, &b.UpdateTime); err != nil {
		return nil, err
	}
	return b, nil
}

// FindBinding looks up a binding by platform and platform-specific ID.
func (r *IdentityRepository) FindBinding(ctx context.Context, platform, platformID string) (*entity.PlatformBinding, error) {
	row := r.db.DB.QueryRowContext(ctx, findBindingQuery, platform, platformID)
	binding, err := scanBinding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "platform binding not found")
		}
		return nil, toAppErr(err, "failed to find platform binding",
			slog.String("platform", platform), slog.String("platform_id", platformID))
	}
	return binding, nil
}

// FindBindingByToken looks up a binding by its current session token.
func (r *IdentityRepository) FindBindingByToken(ctx context.Context, sessionToken string) (*entity.PlatformBinding, error) {
	row := r.db.DB.QueryRowContext(ctx, findBindingByTokenQuery, sessionToken)
	binding, err := scanBinding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "binding with this session token not found")
		}
		return nil, toAppErr(err, "failed to find binding by token")
	}
	return binding, nil
}

// Bind performs the three-branch bind_user semantics inside a single
// transaction: refresh an existing binding's token, attach a fresh binding
// to the internal user already holding this token, or create both new.
func (r *IdentityRepository) Bind(ctx context.Context, platform, platformID, sessionToken string) (*entity.PlatformBinding, entity.BindResult, error) {
	var binding *entity.PlatformBinding
	var result entity.BindResult

	err := r.db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		row := tx.QueryRowContext(ctx, findBindingQuery, platform, platformID)
		existing, err := scanBinding(row)
		switch {
		case err == nil:
			if existing.SessionToken == sessionToken {
				binding, result = existing, entity.BindUnchanged
				return nil
			}
			if _, err := tx.ExecContext(ctx, updateBindingTokenQuery, sessionToken, now, platform, platformID); err != nil {
				return toAppErr(err, "failed to update binding session token")
			}
			existing.SessionToken = sessionToken
			existing.UpdateTime = now
			binding, result = existing, entity.BindTokenUpdated
			return nil
		case errors.Is(err, sql.ErrNoRows):
			// fall through to the create path below.
		default:
			return toAppErr(err, "failed to look up existing binding")
		}

		internalUserID := ""
		tokenRow := tx.QueryRowContext(ctx, findBindingByTokenQuery, sessionToken)
		byToken, err := scanBinding(tokenRow)
		switch {
		case err == nil:
			internalUserID = byToken.InternalUserID
			result = entity.BindAttached
		case errors.Is(err, sql.ErrNoRows):
			internalUserID = entity.NewIdentityID()
			if _, err := tx.ExecContext(ctx, insertInternalUserQuery, internalUserID, now); err != nil {
				return toAppErr(err, "failed to create internal user")
			}
			result = entity.BindCreated
		default:
			return toAppErr(err, "failed to look up binding by token")
		}

		newBinding := &entity.PlatformBinding{
			ID:             entity.NewIdentityID(),
			InternalUserID: internalUserID,
			Platform:       platform,
			PlatformID:     platformID,
			SessionToken:   sessionToken,
			CreateTime:     now,
			UpdateTime:     now,
		}
		if _, err := tx.ExecContext(ctx, insertBindingQuery,
			newBinding.ID, newBinding.InternalUserID, newBinding.Platform, newBinding.PlatformID,
			newBinding.SessionToken, newBinding.CreateTime, newBinding.UpdateTime,
		); err != nil {
			return toAppErr(err, "failed to insert platform binding")
		}

		binding = newBinding
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return binding, result, nil
}

// DeleteBinding removes a binding outright.
func (r *IdentityRepository) DeleteBinding(ctx context.Context, platform, platformID string) error {
	res, err := r.db.DB.ExecContext(ctx, deleteBindingQuery, platform, platformID)
	if err != nil {
		return toAppErr(err, "failed to delete platform binding",
			slog.String("platform", platform), slog.String("platform_id", platformID))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return toAppErr(err, "failed to determine rows affected by binding delete")
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "platform binding not found")
	}
	return nil
}

// PutUnbindCode stores a freshly generated verification code, replacing
// any prior one for the same platform/platform ID.
func (r *IdentityRepository) PutUnbindCode(ctx context.Context, code *entity.UnbindVerificationCode) error {
	if _, err := r.db.DB.ExecContext(ctx, upsertUnbindCodeQuery,
		code.Platform, code.PlatformID, code.Code, code.SessionToken, code.ExpiresAt,
	); err != nil {
		return toAppErr(err, "failed to store unbind verification code",
			slog.String("platform", code.Platform), slog.String("platform_id", code.PlatformID))
	}
	return nil
}

// GetUnbindCode fetches a stored verification code without consuming it.
// A stored code past its TTL is deleted here (lazy expiry) and reported as
// VerificationExpired rather than returned; the caller is responsible for
// calling DeleteUnbindCode once it has confirmed the submitted code
// matches, so a mismatched attempt leaves the code live for a retry.
func (r *IdentityRepository) GetUnbindCode(ctx context.Context, platform, platformID string) (*entity.UnbindVerificationCode, error) {
	var code *entity.UnbindVerificationCode

	err := r.db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := tx.QueryRowContext(ctx, selectUnbindCodeQuery, platform, platformID)
		c := &entity.UnbindVerificationCode{}
		if err := row.Scan(&c.Platform, &c.PlatformID, &c.Code, &c.SessionToken, &c.ExpiresAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "unbind verification code not found")
			}
			return toAppErr(err, "failed to fetch unbind verification code")
		}

		if time.Now().After(c.ExpiresAt) {
			if _, err := tx.ExecContext(ctx, deleteUnbindCodeQuery, platform, platformID); err != nil {
				return toAppErr(err, "failed to delete expired unbind verification code")
			}
			return apperr.New(codes.DeadlineExceeded, "unbind verification code expired")
		}

		code = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return code, nil
}

// DeleteUnbindCode consumes a stored verification code.
func (r *IdentityRepository) DeleteUnbindCode(ctx context.Context, platform, platformID string) error {
	res, err := r.db.DB.ExecContext(ctx, deleteUnbindCodeQuery, platform, platformID)
	if err != nil {
		return toAppErr(err, "failed to delete unbind verification code",
			slog.String("platform", platform), slog.String("platform_id", platformID))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return toAppErr(err, "failed to determine rows affected by unbind code delete")
	}
	if affected == 0 {
		return apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "unbind verification code not found")
	}
	return nil
}
