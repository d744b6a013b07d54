package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/liverty-music/archive-core/internal/codec"
	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/scoring"
	"github.com/liverty-music/archive-core/pkg/cache"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/pannpers/go-logging/logging"
)

// Aggregates is the synchronous result of a "get aggregates" request: the
// player's composite RKS and every chart the save carried, annotated with
// constants and per-chart RKS, plus the FC/AP map the caller needs to
// render results without re-parsing the save.
type Aggregates struct {
	PlayerID     string
	PlayerName   string
	CompositeRKS float64
	Records      []scoring.Rated
	// FCMap reports, per chart, whether the player's current score is a
	// full combo (true also for AP scores).
	FCMap map[entity.ChartKey]bool
}

// ArchiveUseCase wires the upstream fetch, decode, scoring, and
// persistence pipeline for one player's save.
type ArchiveUseCase interface {
	// GetAggregates resolves an identifier to a token, fetches and
	// verifies the save, decodes and scores it, and returns the
	// synchronous result immediately while scheduling a background
	// archive write.
	//
	// # Possible errors
	//
	//  - InvalidArgument: neither token nor (platform, platformID) given.
	//  - NotFound: no binding exists for the given platform/platformID.
	//  - Unauthenticated: the upstream rejected the session token.
	//  - DataLoss: the save failed checksum, decryption, or decoding.
	GetAggregates(ctx context.Context, req *AggregatesRequest) (*Aggregates, error)

	// GetArchive returns the cached or freshly read player archive.
	//
	// # Possible errors
	//
	//  - NotFound: the player has no archive record.
	GetArchive(ctx context.Context, playerID string) (*entity.PlayerArchive, error)
}

// AggregatesRequest identifies the player whose save should be fetched.
// Exactly one of Token or (Platform, PlatformID) must resolve to a
// session token.
type AggregatesRequest struct {
	Token      string
	Platform   string
	PlatformID string
}

type archiveUseCase struct {
	archiveRepo  entity.ArchiveRepository
	identityRepo entity.IdentityRepository
	upstream     entity.UpstreamClient
	chartTable   entity.ChartTable
	archiveCache *cache.MemoryCache[string, *entity.PlayerArchive]
	logger       *logging.Logger
}

var _ ArchiveUseCase = (*archiveUseCase)(nil)

// NewArchiveUseCase creates a new archive use case.
func NewArchiveUseCase(
	archiveRepo entity.ArchiveRepository,
	identityRepo entity.IdentityRepository,
	upstream entity.UpstreamClient,
	chartTable entity.ChartTable,
	archiveCache *cache.MemoryCache[string, *entity.PlayerArchive],
	logger *logging.Logger,
) ArchiveUseCase {
	return &archiveUseCase{
		archiveRepo:  archiveRepo,
		identityRepo: identityRepo,
		upstream:     upstream,
		chartTable:   chartTable,
		archiveCache: archiveCache,
		logger:       logger,
	}
}

func (uc *archiveUseCase) GetAggregates(ctx context.Context, req *AggregatesRequest) (*Aggregates, error) {
	token, playerID, err := uc.resolveToken(ctx, req)
	if err != nil {
		return nil, err
	}

	envelope, profile, err := uc.fetchEnvelopeAndProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	blob, err := uc.upstream.FetchSaveBlob(ctx, envelope)
	if err != nil {
		return nil, err
	}

	save, err := codec.Parse(ctx, uc.logger, blob)
	if err != nil {
		return nil, err
	}

	records, scores, fcMap := uc.annotate(ctx, playerID, save.Records)
	sorted := scoring.SortByRKSDesc(records)
	compositeRKS := scoring.Composite(sorted)

	playerName := playerID
	if profile != nil && profile.Nickname != "" {
		playerName = profile.Nickname
	}

	result := &Aggregates{
		PlayerID:     playerID,
		PlayerName:   playerName,
		CompositeRKS: compositeRKS,
		Records:      sorted,
		FCMap:        fcMap,
	}

	uc.scheduleArchiveWrite(playerID, playerName, scores)

	return result, nil
}

// resolveToken resolves the request to (token, playerID). The player ID
// used to key the archive is always the internal user ID, not the
// platform-specific one, so a player's archive is shared across every
// platform they've bound.
func (uc *archiveUseCase) resolveToken(ctx context.Context, req *AggregatesRequest) (token, playerID string, err error) {
	switch {
	case req.Token != "":
		binding, err := uc.identityRepo.FindBindingByToken(ctx, req.Token)
		if err != nil {
			return "", "", err
		}
		return req.Token, binding.InternalUserID, nil
	case req.Platform != "" && req.PlatformID != "":
		binding, err := uc.identityRepo.FindBinding(ctx, req.Platform, req.PlatformID)
		if err != nil {
			return "", "", err
		}
		return binding.SessionToken, binding.InternalUserID, nil
	default:
		return "", "", apperr.New(codes.InvalidArgument, "either a token or a (platform, platformID) pair is required")
	}
}

// fetchEnvelopeAndProfile runs the save-envelope and profile fetches in
// parallel (spec.md §4.7 step 3); a profile failure is non-fatal since
// the internal ID serves as a fallback display name.
func (uc *archiveUseCase) fetchEnvelopeAndProfile(ctx context.Context, token string) (*entity.SaveEnvelope, *entity.Profile, error) {
	var (
		wg       sync.WaitGroup
		envelope *entity.SaveEnvelope
		envErr   error
		profile  *entity.Profile
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		envelope, envErr = uc.upstream.FetchSaveEnvelope(ctx, token)
	}()
	go func() {
		defer wg.Done()
		p, err := uc.upstream.FetchProfile(ctx, token)
		if err != nil {
			uc.logger.Warn(ctx, "profile fetch failed, falling back to internal id", slog.Any("error", err))
			return
		}
		profile = p
	}()
	wg.Wait()

	if envErr != nil {
		return nil, nil, envErr
	}
	return envelope, profile, nil
}

// annotate enriches raw save records with their static constant and
// per-chart RKS, builds the FC/AP map, and builds the ScoreRow batch the
// archive write path will persist. Charts with no known constant (or a
// non-positive one) contribute 0 RKS but are still reported.
func (uc *archiveUseCase) annotate(
	ctx context.Context, playerID string, raw []entity.ChartRecord,
) ([]scoring.Rated, []*entity.ScoreRow, map[entity.ChartKey]bool) {
	records := make([]scoring.Rated, 0, len(raw))
	scores := make([]*entity.ScoreRow, 0, len(raw))
	fcMap := make(map[entity.ChartKey]bool, len(raw))
	now := time.Now()

	for _, r := range raw {
		key := entity.ChartKey{SongID: r.SongID, Difficulty: r.Difficulty}

		constant, err := uc.chartTable.Constant(ctx, key)
		if err != nil {
			constant = 0
		}

		rks := scoring.ChartRKS(r.Acc, constant)
		isFC := r.IsFC || r.IsAP

		records = append(records, scoring.Rated{
			SongID:     r.SongID,
			Difficulty: int(r.Difficulty),
			Constant:   constant,
			Acc:        r.Acc,
			RKS:        rks,
			IsAP:       r.IsAP,
		})
		scores = append(scores, &entity.ScoreRow{
			ID:         entity.NewArchiveID(),
			PlayerID:   playerID,
			SongID:     r.SongID,
			Difficulty: r.Difficulty,
			Score:      r.Score,
			Acc:        r.Acc,
			RKS:        rks,
			IsFC:       isFC,
			IsAP:       r.IsAP,
			PlayTime:   now,
			IsCurrent:  true,
		})
		fcMap[key] = isFC
	}

	return records, scores, fcMap
}

// scheduleArchiveWrite hands the scored records to the archive store's
// write path as an independent background task (spec.md §4.7 step 6):
// the synchronous response does not wait on it, and it is not cancelled
// if the inbound request's context is cancelled.
func (uc *archiveUseCase) scheduleArchiveWrite(playerID, playerName string, scores []*entity.ScoreRow) {
	batch := &entity.ScoreBatch{PlayerID: playerID, PlayerName: playerName, Scores: scores}

	go func() {
		ctx := context.WithoutCancel(context.Background())

		if err := uc.archiveRepo.ReplaceCurrent(ctx, batch); err != nil {
			uc.logger.Error(ctx, "archive write failed", slog.Any("error", err), slog.String("player_id", playerID))
			return
		}

		uc.archiveCache.Delete(playerID)

		if err := uc.archiveRepo.RecomputeCompositeRKS(ctx, playerID); err != nil {
			uc.logger.Error(ctx, "composite rks recompute failed", slog.Any("error", err), slog.String("player_id", playerID))
		}
		if err := uc.archiveRepo.RecomputePushAcc(ctx, playerID); err != nil {
			uc.logger.Error(ctx, "push-acc recompute failed", slog.Any("error", err), slog.String("player_id", playerID))
		}
	}()
}

func (uc *archiveUseCase) GetArchive(ctx context.Context, playerID string) (*entity.PlayerArchive, error) {
	if playerID == "" {
		return nil, apperr.New(codes.InvalidArgument, "player ID cannot be empty")
	}

	if cached, ok := uc.archiveCache.Get(playerID); ok {
		return cached, nil
	}

	archive, err := uc.archiveRepo.GetArchive(ctx, playerID)
	if err != nil {
		return nil, err
	}

	uc.archiveCache.Set(playerID, archive)
	return archive, nil
}
