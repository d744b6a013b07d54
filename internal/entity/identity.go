package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NewIdentityID generates a unique identifier for identity-scoped records.
func NewIdentityID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

// InternalUser is the platform-independent identity a session resolves to
// once bound. One internal user may carry bindings to several platform
// accounts sharing the same session token.
type InternalUser struct {
	ID         string
	CreateTime time.Time
}

// PlatformBinding links one (Platform, PlatformID) pair to an internal
// user and the session token currently proving ownership of it.
type PlatformBinding struct {
	ID             string
	InternalUserID string
	Platform       string
	PlatformID     string
	SessionToken   string
	CreateTime     time.Time
	UpdateTime     time.Time
}

// UnbindVerificationCode is a short-lived, single-use code issued for the
// profile-proved unbind flow. It is keyed by (Platform, PlatformID) and
// carries the session token that was current at issuance time, so the
// confirmation step re-fetches the profile with the same credentials
// rather than trusting client-supplied ones.
type UnbindVerificationCode struct {
	Platform     string
	PlatformID   string
	Code         string
	SessionToken string
	ExpiresAt    time.Time
}

// BindResult reports which of the three bind_user branches was taken.
type BindResult int

const (
	// BindCreated means a brand-new internal user and binding were created.
	BindCreated BindResult = iota
	// BindAttached means an existing internal user (found via the session
	// token) gained a new platform binding.
	BindAttached
	// BindTokenUpdated means an existing binding had its session token
	// refreshed.
	BindTokenUpdated
	// BindUnchanged means the binding already existed with this exact
	// token; nothing changed.
	BindUnchanged
)

// IdentityRepository persists internal users, platform bindings, and
// unbind verification codes.
type IdentityRepository interface {
	// FindBinding looks up a binding by platform and platform-specific ID.
	//
	// # Possible errors:
	//
	//   - BindingNotFound: no binding exists for this platform/platform ID.
	FindBinding(ctx context.Context, platform, platformID string) (*PlatformBinding, error)

	// FindBindingByToken looks up a binding by its current session token,
	// used to discover whether the token is already attached to an
	// internal user.
	//
	// # Possible errors:
	//
	//   - BindingNotFound: no binding carries this session token.
	FindBindingByToken(ctx context.Context, sessionToken string) (*PlatformBinding, error)

	// Bind performs the three-branch bind_user semantics: update an
	// existing binding's token, attach a new binding to an internal user
	// discovered via token, or create both fresh.
	//
	// # Possible errors:
	//
	//   - Internal: database failure.
	Bind(ctx context.Context, platform, platformID, sessionToken string) (*PlatformBinding, BindResult, error)

	// DeleteBinding removes a binding outright (used by both unbind flows
	// once verification succeeds).
	//
	// # Possible errors:
	//
	//   - BindingNotFound: no binding exists for this platform/platform ID.
	DeleteBinding(ctx context.Context, platform, platformID string) error

	// PutUnbindCode stores a freshly generated verification code,
	// replacing any prior one for the same platform/platform ID.
	//
	// # Possible errors:
	//
	//   - Internal: database failure.
	PutUnbindCode(ctx context.Context, code *UnbindVerificationCode) error

	// GetUnbindCode fetches the stored verification code without deleting
	// it, so the caller can compare it against the submitted code before
	// committing to consuming it.
	//
	// # Possible errors:
	//
	//   - VerificationNotFound: no code is stored for this platform/platform ID.
	//   - VerificationExpired: a code was stored but its TTL has elapsed
	//     (deleted lazily as part of this lookup).
	GetUnbindCode(ctx context.Context, platform, platformID string) (*UnbindVerificationCode, error)

	// DeleteUnbindCode consumes a stored verification code once the caller
	// has confirmed the submitted code matches it.
	//
	// # Possible errors:
	//
	//   - VerificationNotFound: no code is stored for this platform/platform ID.
	DeleteUnbindCode(ctx context.Context, platform, platformID string) error
}
