package usecase

import (
	"context"
	"log/slog"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	"github.com/pannpers/go-logging/logging"
)

// SongUseCase resolves a user-supplied song query (exact ID or nickname
// alias) to its canonical static metadata.
type SongUseCase interface {
	// Resolve looks up a song by ID or nickname.
	//
	// # Possible errors
	//
	//  - InvalidArgument: query is empty.
	//  - NotFound: no song matches the query.
	//  - FailedPrecondition: the query is an ambiguous nickname claimed by more
	//    than one distinct song.
	Resolve(ctx context.Context, query string) (*entity.SongInfo, error)
}

type songUseCase struct {
	chartTable entity.ChartTable
	logger     *logging.Logger
}

var _ SongUseCase = (*songUseCase)(nil)

// NewSongUseCase creates a new song use case.
func NewSongUseCase(chartTable entity.ChartTable, logger *logging.Logger) SongUseCase {
	return &songUseCase{chartTable: chartTable, logger: logger}
}

func (uc *songUseCase) Resolve(ctx context.Context, query string) (*entity.SongInfo, error) {
	if query == "" {
		return nil, apperr.New(codes.InvalidArgument, "query cannot be empty")
	}

	song, err := uc.chartTable.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	uc.logger.Info(ctx, "song resolved", slog.String("query", query), slog.String("song_id", song.SongID))
	return song, nil
}
