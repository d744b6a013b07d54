package rdb

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/liverty-music/archive-core/internal/scoring"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/uptrace/bun"
)

const (
	upsertPlayerArchiveQuery = `
		INSERT INTO player_archives (player_id, player_name, rks, update_time)
		VALUES (?, ?, 0, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			player_name = excluded.player_name,
			update_time = excluded.update_time
	`

	demoteCurrentScoresQuery = `
		UPDATE chart_scores SET is_current = 0 WHERE player_id = ? AND is_current = 1
	`

	insertScoreQuery = `
		INSERT INTO chart_scores
			(id, player_id, song_id, difficulty, score, acc, rks, is_fc, is_ap, is_legacy, is_current, play_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	pruneHistoryQuery = `
		DELETE FROM chart_scores
		WHERE player_id = ? AND song_id = ? AND difficulty = ? AND is_current = 0
		AND id NOT IN (
			SELECT id FROM chart_scores
			WHERE player_id = ? AND song_id = ? AND difficulty = ? AND is_current = 0
			ORDER BY play_time DESC LIMIT ?
		)
	`

	getArchiveQuery = `
		WITH ranked_scores AS (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY player_id, song_id, difficulty, is_current ORDER BY play_time DESC
			) AS history_rank
			FROM chart_scores WHERE player_id = ?
		)
		SELECT pa.player_id, pa.player_name, pa.rks, pa.update_time,
			rs.id, rs.song_id, rs.difficulty, rs.score, rs.acc, rs.rks AS score_rks,
			rs.is_fc, rs.is_ap, rs.is_legacy, rs.is_current, rs.play_time, rs.history_rank
		FROM player_archives pa
		LEFT JOIN ranked_scores rs ON pa.player_id = rs.player_id
		WHERE pa.player_id = ? AND (rs.is_current = 1 OR rs.history_rank <= ? OR rs.song_id IS NULL)
		ORDER BY rs.play_time DESC
	`

	currentScoresQuery = `
		SELECT rks, acc, is_ap, is_legacy FROM chart_scores
		WHERE player_id = ? AND is_current = 1
		ORDER BY rks DESC
	`

	updateArchiveRKSQuery = `
		UPDATE player_archives SET rks = ?, update_time = ? WHERE player_id = ?
	`

	currentScoresForPushAccQuery = `
		SELECT song_id, difficulty, acc, rks FROM chart_scores
		WHERE player_id = ? AND is_current = 1
		ORDER BY rks DESC
	`

	deletePushAccQuery = `DELETE FROM push_acc WHERE player_id = ?`

	insertPushAccQuery = `
		INSERT INTO push_acc (player_id, song_id, difficulty, push_acc) VALUES (?, ?, ?, ?)
	`

	rankPushAccQuery = `
		SELECT player_id, song_id, difficulty, push_acc FROM push_acc
		WHERE player_id = ? ORDER BY push_acc ASC
	`
)

// ArchiveRepository implements entity.ArchiveRepository against SQLite.
type ArchiveRepository struct {
	db              *Database
	chartTable      entity.ChartTable
	pushAccEngine   *scoring.PushAccEngine
	historyMax      int
	storePushAcc    bool
}

// NewArchiveRepository creates a new archive repository.
func NewArchiveRepository(db *Database, chartTable entity.ChartTable, pushAccEngine *scoring.PushAccEngine, historyMax int, storePushAcc bool) *ArchiveRepository {
	return &ArchiveRepository{
		db:            db,
		chartTable:    chartTable,
		pushAccEngine: pushAccEngine,
		historyMax:    historyMax,
		storePushAcc:  storePushAcc,
	}
}

// ReplaceCurrent commits the full replace-current/append-history write in
// one transaction: upsert the header, demote existing current rows,
// insert the new ones via a prepared statement per row, then prune
// history beyond historyMax per chart.
func (r *ArchiveRepository) ReplaceCurrent(ctx context.Context, batch *entity.ScoreBatch) error {
	if batch == nil || batch.PlayerID == "" {
		return apperr.New(codes.InvalidArgument, "score batch and player ID are required")
	}

	return r.db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		if _, err := tx.ExecContext(ctx, upsertPlayerArchiveQuery, batch.PlayerID, batch.PlayerName, now); err != nil {
			return toAppErr(err, "failed to upsert player archive", slog.String("player_id", batch.PlayerID))
		}

		if _, err := tx.ExecContext(ctx, demoteCurrentScoresQuery, batch.PlayerID); err != nil {
			return toAppErr(err, "failed to demote current scores", slog.String("player_id", batch.PlayerID))
		}

		stmt, err := tx.PrepareContext(ctx, insertScoreQuery)
		if err != nil {
			return toAppErr(err, "failed to prepare score insert statement")
		}
		defer stmt.Close()

		for _, s := range batch.Scores {
			if s.ID == "" {
				s.ID = entity.NewArchiveID()
			}
			if s.PlayTime.IsZero() {
				s.PlayTime = now
			}
			s.IsCurrent = true
			m := FromScoreRow(s)
			if _, err := stmt.ExecContext(ctx,
				m.ID, batch.PlayerID, m.SongID, m.Difficulty, m.Score, m.Acc, m.RKS,
				m.IsFC, m.IsAP, m.IsLegacy, true, m.PlayTime,
			); err != nil {
				return toAppErr(err, "failed to insert chart score",
					slog.String("player_id", batch.PlayerID), slog.String("song_id", m.SongID))
			}
		}

		for _, s := range batch.Scores {
			if _, err := tx.ExecContext(ctx, pruneHistoryQuery,
				batch.PlayerID, s.SongID, int(s.Difficulty),
				batch.PlayerID, s.SongID, int(s.Difficulty), r.historyMax,
			); err != nil {
				return toAppErr(err, "failed to prune chart score history",
					slog.String("player_id", batch.PlayerID), slog.String("song_id", s.SongID))
			}
		}

		return nil
	})
}

type archiveScanRow struct {
	PlayerID     string
	PlayerName   string
	RKS          float64
	UpdateTime   time.Time
	ScoreID      sql.NullString
	SongID       sql.NullString
	Difficulty   sql.NullInt64
	Score        sql.NullInt64
	Acc          sql.NullFloat64
	ScoreRKS     sql.NullFloat64
	IsFC         sql.NullBool
	IsAP         sql.NullBool
	IsLegacy     sql.NullBool
	IsCurrent    sql.NullBool
	PlayTime     sql.NullTime
	HistoryRank  sql.NullInt64
}

// GetArchive assembles the player's read-model in one query: the header
// row joined against current and bounded-history chart scores.
func (r *ArchiveRepository) GetArchive(ctx context.Context, playerID string) (*entity.PlayerArchive, error) {
	rows, err := r.db.DB.QueryContext(ctx, getArchiveQuery, playerID, playerID, r.historyMax)
	if err != nil {
		return nil, toAppErr(err, "failed to query player archive", slog.String("player_id", playerID))
	}
	defer rows.Close()

	var archive *entity.PlayerArchive
	found := false

	for rows.Next() {
		var row archiveScanRow
		if err := rows.Scan(
			&row.PlayerID, &row.PlayerName, &row.RKS, &row.UpdateTime,
			&row.ScoreID, &row.SongID, &row.Difficulty, &row.Score, &row.Acc, &row.ScoreRKS,
			&row.IsFC, &row.IsAP, &row.IsLegacy, &row.IsCurrent, &row.PlayTime, &row.HistoryRank,
		); err != nil {
			return nil, toAppErr(err, "failed to scan player archive row", slog.String("player_id", playerID))
		}

		if !found {
			archive = &entity.PlayerArchive{
				PlayerID:     row.PlayerID,
				PlayerName:   row.PlayerName,
				CompositeRKS: row.RKS,
				UpdateTime:   row.UpdateTime,
				History:      map[entity.ChartKey][]*entity.ScoreRow{},
				PushAcc:      map[entity.ChartKey]float64{},
			}
			found = true
		}

		if !row.SongID.Valid {
			continue
		}

		score := &entity.ScoreRow{
			ID:         row.ScoreID.String,
			PlayerID:   row.PlayerID,
			SongID:     row.SongID.String,
			Difficulty: entity.Difficulty(row.Difficulty.Int64),
			Score:      uint32(row.Score.Int64),
			Acc:        row.Acc.Float64,
			RKS:        row.ScoreRKS.Float64,
			IsFC:       row.IsFC.Bool,
			IsAP:       row.IsAP.Bool,
			IsLegacy:   row.IsLegacy.Bool,
			IsCurrent:  row.IsCurrent.Bool,
			PlayTime:   row.PlayTime.Time,
		}

		key := entity.ChartKey{SongID: score.SongID, Difficulty: score.Difficulty}
		if score.IsCurrent {
			archive.Current = append(archive.Current, score)
		} else {
			archive.History[key] = append(archive.History[key], score)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, toAppErr(err, "failed to iterate player archive rows", slog.String("player_id", playerID))
	}
	if !found {
		return nil, apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "player archive not found")
	}

	return archive, nil
}

// RecomputeCompositeRKS recalculates and persists the player's composite
// RKS from their current chart scores, using the literal blend-rule
// constants regardless of any configured best-N-count.
func (r *ArchiveRepository) RecomputeCompositeRKS(ctx context.Context, playerID string) error {
	rows, err := r.db.DB.QueryContext(ctx, currentScoresQuery, playerID)
	if err != nil {
		return toAppErr(err, "failed to query current scores", slog.String("player_id", playerID))
	}
	defer rows.Close()

	var ratedScores, apScores []float64
	for rows.Next() {
		var rks, acc float64
		var isAP, isLegacy bool
		if err := rows.Scan(&rks, &acc, &isAP, &isLegacy); err != nil {
			return toAppErr(err, "failed to scan current score", slog.String("player_id", playerID))
		}
		if isLegacy {
			continue
		}
		ratedScores = append(ratedScores, rks)
		if isAP {
			apScores = append(apScores, rks)
		}
	}
	if err := rows.Err(); err != nil {
		return toAppErr(err, "failed to iterate current scores", slog.String("player_id", playerID))
	}

	bestNSum, bestNCount := topNSum(ratedScores, 27)
	apSum, apCount := topNSum(apScores, 3)

	bestNAvg := 0.0
	if bestNCount > 0 {
		bestNAvg = bestNSum / float64(bestNCount)
	}
	apAvg := 0.0
	if apCount > 0 {
		apAvg = apSum / float64(apCount)
	}

	composite := scoring.BlendCompositeRKS(bestNAvg, apAvg, apCount)

	res, err := r.db.DB.ExecContext(ctx, updateArchiveRKSQuery, composite, time.Now(), playerID)
	if err != nil {
		return toAppErr(err, "failed to update composite RKS", slog.String("player_id", playerID))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "player archive not found")
	}
	return nil
}

// topNSum sorts values descending and sums the top n, returning the sum
// and how many were actually summed.
func topNSum(values []float64, n int) (float64, int) {
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] > sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	sum := 0.0
	for _, v := range sorted[:n] {
		sum += v
	}
	return sum, n
}

// RecomputePushAcc replaces the player's push_acc rows from their current
// scores in one transaction, using a prepared statement per insert rather
// than a string-concatenated batch.
func (r *ArchiveRepository) RecomputePushAcc(ctx context.Context, playerID string) error {
	if !r.storePushAcc {
		return nil
	}

	var exists int
	if err := r.db.DB.QueryRowContext(ctx, `SELECT 1 FROM player_archives WHERE player_id = ?`, playerID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "player archive not found")
		}
		return toAppErr(err, "failed to look up player archive", slog.String("player_id", playerID))
	}

	rows, err := r.db.DB.QueryContext(ctx, currentScoresForPushAccQuery, playerID)
	if err != nil {
		return toAppErr(err, "failed to query current scores for push-acc", slog.String("player_id", playerID))
	}

	type chartRKS struct {
		songID     string
		difficulty int
		acc        float64
		rks        float64
	}
	var charts []chartRKS
	for rows.Next() {
		var c chartRKS
		if err := rows.Scan(&c.songID, &c.difficulty, &c.acc, &c.rks); err != nil {
			rows.Close()
			return toAppErr(err, "failed to scan chart for push-acc", slog.String("player_id", playerID))
		}
		charts = append(charts, c)
	}
	rowsErr := rows.Err()
	rows.Close()
	if rowsErr != nil {
		return toAppErr(rowsErr, "failed to iterate charts for push-acc", slog.String("player_id", playerID))
	}

	rated := make([]scoring.Rated, 0, len(charts))
	for _, c := range charts {
		rated = append(rated, scoring.Rated{SongID: c.songID, Difficulty: c.difficulty, Acc: c.acc, RKS: c.rks, IsAP: c.acc >= 100.0})
	}
	sorted := scoring.SortByRKSDesc(rated)

	return r.db.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, deletePushAccQuery, playerID); err != nil {
			return toAppErr(err, "failed to clear push-acc rows", slog.String("player_id", playerID))
		}

		stmt, err := tx.PrepareContext(ctx, insertPushAccQuery)
		if err != nil {
			return toAppErr(err, "failed to prepare push-acc insert statement")
		}
		defer stmt.Close()

		for _, c := range charts {
			if c.acc >= 100.0 {
				continue
			}
			constant, ok := r.constantOf(ctx, c.songID, c.difficulty)
			if !ok || constant <= 0 {
				continue
			}
			pushAcc := r.pushAccEngine.Calculate(c.songID, c.difficulty, constant, sorted)
			if pushAcc <= c.acc {
				continue
			}
			if _, err := stmt.ExecContext(ctx, playerID, c.songID, c.difficulty, pushAcc); err != nil {
				return toAppErr(err, "failed to insert push-acc row",
					slog.String("player_id", playerID), slog.String("song_id", c.songID))
			}
		}

		return nil
	})
}

func (r *ArchiveRepository) constantOf(ctx context.Context, songID string, difficulty int) (float64, bool) {
	constant, err := r.chartTable.Constant(ctx, entity.ChartKey{SongID: songID, Difficulty: entity.Difficulty(difficulty)})
	if err != nil {
		return 0, false
	}
	return constant, true
}

// RankPushAcc returns every chart the player has not yet maxed, sorted by
// push-ACC ascending.
func (r *ArchiveRepository) RankPushAcc(ctx context.Context, playerID string) ([]*entity.PushAccRow, error) {
	if !r.storePushAcc {
		return nil, apperr.New(codes.NotFound, "push-ACC storage is disabled")
	}

	rows, err := r.db.DB.QueryContext(ctx, rankPushAccQuery, playerID)
	if err != nil {
		return nil, toAppErr(err, "failed to query push-acc ranking", slog.String("player_id", playerID))
	}
	defer rows.Close()

	var result []*entity.PushAccRow
	for rows.Next() {
		m := &PushAccModel{}
		if err := rows.Scan(&m.PlayerID, &m.SongID, &m.Difficulty, &m.PushAcc); err != nil {
			return nil, toAppErr(err, "failed to scan push-acc row", slog.String("player_id", playerID))
		}
		result = append(result, m.ToEntity())
	}
	if err := rows.Err(); err != nil {
		return nil, toAppErr(err, "failed to iterate push-acc rows", slog.String("player_id", playerID))
	}
	if len(result) == 0 {
		return nil, apperr.Wrap(apperr.ErrNotFound, codes.NotFound, "no push-acc rows for player")
	}

	return result, nil
}
