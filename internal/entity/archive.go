package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// NewArchiveID generates a unique identifier for archive-scoped records.
func NewArchiveID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

// ScoreRow is one versioned chart-score record belonging to a player.
//
// Exactly one row per (PlayerID, SongID, Difficulty) has IsCurrent set;
// all others are retained as history up to HistoryMaxRecords deep.
type ScoreRow struct {
	ID         string
	PlayerID   string
	SongID     string
	Difficulty Difficulty
	Score      uint32
	Acc        float64
	RKS        float64
	IsFC       bool
	IsAP       bool
	// IsLegacy marks a chart excluded from B27/AP3 aggregation (spec's
	// Legacy-difficulty-exclusion resolution): retained as history, never
	// counted toward composite RKS.
	IsLegacy  bool
	IsCurrent bool
	PlayTime  time.Time
}

// PushAccRow is the precomputed push-ACC for one chart a player has not
// yet maxed.
type PushAccRow struct {
	PlayerID   string
	SongID     string
	Difficulty Difficulty
	PushAcc    float64
}

// PlayerArchive is the read-model assembled for a single player: the
// aggregate header plus every current chart score and bounded history.
type PlayerArchive struct {
	PlayerID     string
	PlayerName   string
	CompositeRKS float64
	UpdateTime   time.Time
	// Current holds exactly one row per chart the player has a current
	// score for.
	Current []*ScoreRow
	// History holds up to HistoryMaxRecords additional rows per chart,
	// most recent first, excluding the current row.
	History map[ChartKey][]*ScoreRow
	// PushAcc is keyed by chart for precomputed push-ACC values.
	// GetArchive returns it as an empty map; stored push-ACC rows are read
	// through RankPushAcc.
	PushAcc map[ChartKey]float64
}

// ScoreBatch is the input to a single archive write: every chart score
// the orchestrator parsed out of one ingested save, to replace the
// player's current rows in a single transaction.
type ScoreBatch struct {
	PlayerID   string
	PlayerName string
	Scores     []*ScoreRow
}

// ArchiveRepository is the persistence and read-model layer for player
// archives.
type ArchiveRepository interface {
	// ReplaceCurrent commits a full replace-current/append-history write:
	// it upserts the player header, demotes existing current rows to
	// history (pruning beyond HistoryMaxRecords), and inserts the new
	// current rows, all within one transaction.
	//
	// # Possible errors:
	//
	//   - InvalidArgument: batch is nil or PlayerID is empty.
	//   - Internal: database failure.
	ReplaceCurrent(ctx context.Context, batch *ScoreBatch) error

	// GetArchive returns the assembled read-model for a player, including
	// current scores and bounded history, via a single query.
	//
	// # Possible errors:
	//
	//   - NotFound: the player has no archive record.
	//   - Internal: database failure.
	GetArchive(ctx context.Context, playerID string) (*PlayerArchive, error)

	// RecomputeCompositeRKS recalculates and persists the player's
	// composite RKS from their current rows. Idempotent.
	//
	// # Possible errors:
	//
	//   - NotFound: the player has no archive record.
	//   - Internal: database failure.
	RecomputeCompositeRKS(ctx context.Context, playerID string) error

	// RecomputePushAcc replaces the player's push_acc rows from their
	// current scores. Idempotent; a no-op when push-ACC storage is
	// disabled by configuration.
	//
	// # Possible errors:
	//
	//   - NotFound: the player has no archive record.
	//   - Internal: database failure.
	RecomputePushAcc(ctx context.Context, playerID string) error

	// RankPushAcc returns every chart the player has not yet maxed, sorted
	// by push-ACC ascending (lowest required ACC first).
	//
	// # Possible errors:
	//
	//   - NotFound: push-ACC storage is disabled or the player has no rows.
	//   - Internal: database failure.
	RankPushAcc(ctx context.Context, playerID string) ([]*PushAccRow, error)
}
