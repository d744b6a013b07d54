package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/liverty-music/archive-core/internal/codec"
	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/pannpers/go-logging/logging"
)

// unbindCodeAlphabet is the character set unbind verification codes are
// drawn from: uppercase letters and digits, matching spec.md's 8
// alphanumeric example ("AB12CD34").
const unbindCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const unbindCodeLength = 8

const unbindCodeTTL = 5 * time.Minute

// IdentityUseCase binds upstream session tokens to internal users and
// resolves the token-proved and profile-proved unbind protocols.
type IdentityUseCase interface {
	// Bind resolves (platform, platformID, sessionToken) to an internal
	// user, creating, attaching, or refreshing a binding as needed.
	//
	// # Possible errors
	//
	//  - InvalidArgument: platform, platformID, or sessionToken is empty.
	Bind(ctx context.Context, platform, platformID, sessionToken string) (*entity.PlatformBinding, entity.BindResult, error)

	// UnbindByToken deletes a binding after the caller proves ownership
	// with the binding's current session token.
	//
	// # Possible errors
	//
	//  - InvalidArgument: platform, platformID, or sessionToken is empty.
	//  - NotFound: no binding exists for this platform/platformID.
	//  - PermissionDenied: the supplied token does not match the stored one.
	UnbindByToken(ctx context.Context, platform, platformID, sessionToken string) error

	// InitiateProfileUnbind issues a short verification code the caller
	// must write into their in-game self-introduction text.
	//
	// # Possible errors
	//
	//  - NotFound: no binding exists for this platform/platformID.
	InitiateProfileUnbind(ctx context.Context, platform, platformID string) (code string, expiresAt time.Time, err error)

	// ConfirmProfileUnbind checks the submitted code against the one
	// issued by InitiateProfileUnbind, then re-fetches the save using the
	// stored token and deletes the binding if the player's current
	// selfIntro also matches. Both checks are required: the first proves
	// the caller received the code this service issued, the second proves
	// the caller currently controls the in-game profile.
	//
	// # Possible errors
	//
	//  - NotFound: no code was issued, or no binding exists.
	//  - DeadlineExceeded: the issued code's TTL has elapsed.
	//  - PermissionDenied: the submitted code does not match the one
	//    issued, or selfIntro does not match the submitted code.
	//  - FailedPrecondition: the stored session token was rejected by the
	//    upstream platform (TokenStale) — the protocol does not fall back.
	ConfirmProfileUnbind(ctx context.Context, platform, platformID, submittedCode string) error
}

type identityUseCase struct {
	repo     entity.IdentityRepository
	upstream entity.UpstreamClient
	logger   *logging.Logger
}

var _ IdentityUseCase = (*identityUseCase)(nil)

// NewIdentityUseCase creates a new identity use case.
func NewIdentityUseCase(repo entity.IdentityRepository, upstream entity.UpstreamClient, logger *logging.Logger) IdentityUseCase {
	return &identityUseCase{repo: repo, upstream: upstream, logger: logger}
}

func (uc *identityUseCase) Bind(ctx context.Context, platform, platformID, sessionToken string) (*entity.PlatformBinding, entity.BindResult, error) {
	if platform == "" || platformID == "" || sessionToken == "" {
		return nil, 0, apperr.New(codes.InvalidArgument, "platform, platformID, and sessionToken are required")
	}

	binding, result, err := uc.repo.Bind(ctx, platform, platformID, sessionToken)
	if err != nil {
		return nil, 0, err
	}

	uc.logger.Info(ctx, "binding resolved",
		slog.String("platform", platform),
		slog.String("platform_id", platformID),
		slog.Int("result", int(result)),
	)

	return binding, result, nil
}

func (uc *identityUseCase) UnbindByToken(ctx context.Context, platform, platformID, sessionToken string) error {
	if platform == "" || platformID == "" || sessionToken == "" {
		return apperr.New(codes.InvalidArgument, "platform, platformID, and sessionToken are required")
	}

	binding, err := uc.repo.FindBinding(ctx, platform, platformID)
	if err != nil {
		return err
	}

	if binding.SessionToken != sessionToken {
		return apperr.New(codes.PermissionDenied, "session token does not match the stored binding")
	}

	if err := uc.repo.DeleteBinding(ctx, platform, platformID); err != nil {
		return err
	}

	uc.logger.Info(ctx, "binding removed via token proof",
		slog.String("platform", platform), slog.String("platform_id", platformID))
	return nil
}

func (uc *identityUseCase) InitiateProfileUnbind(ctx context.Context, platform, platformID string) (string, time.Time, error) {
	if platform == "" || platformID == "" {
		return "", time.Time{}, apperr.New(codes.InvalidArgument, "platform and platformID are required")
	}

	binding, err := uc.repo.FindBinding(ctx, platform, platformID)
	if err != nil {
		return "", time.Time{}, err
	}

	code, err := generateUnbindCode()
	if err != nil {
		return "", time.Time{}, apperr.Wrap(err, codes.Internal, "failed to generate verification code")
	}

	expiresAt := time.Now().Add(unbindCodeTTL)
	verification := &entity.UnbindVerificationCode{
		Platform:     platform,
		PlatformID:   platformID,
		Code:         code,
		SessionToken: binding.SessionToken,
		ExpiresAt:    expiresAt,
	}

	if err := uc.repo.PutUnbindCode(ctx, verification); err != nil {
		return "", time.Time{}, err
	}

	uc.logger.Info(ctx, "profile unbind verification code issued",
		slog.String("platform", platform), slog.String("platform_id", platformID))

	return code, expiresAt, nil
}

func (uc *identityUseCase) ConfirmProfileUnbind(ctx context.Context, platform, platformID, submittedCode string) error {
	if platform == "" || platformID == "" || submittedCode == "" {
		return apperr.New(codes.InvalidArgument, "platform, platformID, and verification code are required")
	}

	verification, err := uc.repo.GetUnbindCode(ctx, platform, platformID)
	if err != nil {
		return err
	}

	// The stored code proves this service actually issued submittedCode;
	// without this check anyone who observes a player's live selfIntro
	// text could delete their binding without ever receiving the code.
	// A mismatch leaves the code live so the caller can retry.
	if verification.Code != submittedCode {
		return apperr.New(codes.PermissionDenied, "submitted code does not match the issued verification code")
	}

	// Consume the code now, matching the original protocol's single-use
	// semantics: a subsequent selfIntro mismatch does not restore it.
	if err := uc.repo.DeleteUnbindCode(ctx, platform, platformID); err != nil {
		return err
	}

	envelope, err := uc.upstream.FetchSaveEnvelope(ctx, verification.SessionToken)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			return apperr.Wrap(err, codes.FailedPrecondition,
				"stored session token is stale; profile-proved unbind cannot fall back to a fresh token")
		}
		return err
	}

	blob, err := uc.upstream.FetchSaveBlob(ctx, envelope)
	if err != nil {
		return err
	}

	save, err := uc.parseSelfIntro(ctx, blob)
	if err != nil {
		return err
	}

	if strings.TrimSpace(save) != strings.TrimSpace(submittedCode) {
		return apperr.New(codes.PermissionDenied, "selfIntro does not match the submitted verification code")
	}

	if err := uc.repo.DeleteBinding(ctx, platform, platformID); err != nil {
		return err
	}

	uc.logger.Info(ctx, "binding removed via profile proof",
		slog.String("platform", platform), slog.String("platform_id", platformID))
	return nil
}

// parseSelfIntro decrypts and parses just enough of the save to recover
// the user.selfIntro field the verification protocol compares against.
func (uc *identityUseCase) parseSelfIntro(ctx context.Context, blob []byte) (string, error) {
	save, err := codec.Parse(ctx, uc.logger, blob)
	if err != nil {
		return "", err
	}
	if save.Profile == nil {
		return "", apperr.New(codes.DataLoss, "save did not carry a user profile section")
	}
	return save.Profile.SelfIntro, nil
}

func generateUnbindCode() (string, error) {
	buf := make([]byte, unbindCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, unbindCodeLength)
	for i, b := range buf {
		out[i] = unbindCodeAlphabet[int(b)%len(unbindCodeAlphabet)]
	}
	return string(out), nil
}
