package tables

import (
	"context"
	"log/slog"
	"strings"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
)

// Constant returns the difficulty constant for a chart, falling back to a
// predicted constant (if one was loaded) when the chart has no officially
// published rating yet.
func (t *StaticTables) Constant(ctx context.Context, key entity.ChartKey) (float64, error) {
	if value, ok := t.constants[key]; ok {
		return value, nil
	}
	if value, ok := t.predicted[key]; ok {
		return value, nil
	}
	return 0, apperr.New(codes.NotFound, "chart constant not found")
}

// Song returns the static metadata for a song ID.
func (t *StaticTables) Song(ctx context.Context, songID string) (*entity.SongInfo, error) {
	info, ok := t.songs[songID]
	if !ok {
		return nil, apperr.New(codes.NotFound, "song not found")
	}

	song := *info
	song.Nicknames = append([]string(nil), t.nicknames[songID]...)
	return &song, nil
}

// Resolve looks up a song by exact ID first, then by a case-insensitive
// nickname match. A nickname claimed by more than one distinct song ID is
// reported as ambiguous rather than silently picking the first match.
func (t *StaticTables) Resolve(ctx context.Context, query string) (*entity.SongInfo, error) {
	if info, ok := t.songs[query]; ok {
		return t.Song(ctx, info.SongID)
	}

	candidates := t.nicknameIdx[strings.ToLower(query)]
	distinct := uniqueSongIDs(candidates)

	switch len(distinct) {
	case 0:
		return nil, apperr.New(codes.NotFound, "no song matches the given query")
	case 1:
		return t.Song(ctx, distinct[0])
	default:
		return nil, apperr.New(codes.FailedPrecondition, "query matches more than one song",
			slog.Any("matches", distinct))
	}
}

func uniqueSongIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
