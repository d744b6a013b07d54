package rdb

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/pannpers/go-apperr/apperr"
	"github.com/pannpers/go-apperr/apperr/codes"
	sqlite "modernc.org/sqlite"
)

// SQLite extended result codes relevant to constraint handling. See
// https://www.sqlite.org/rescode.html.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintForeignKey = 787
	sqliteConstraintNotNull    = 1299
	sqliteConstraintCheck      = 275
	sqliteBusy                 = 5
	sqliteLocked               = 6
)

// toAppErr converts a database error into a structured application error,
// mapping SQLite extended result codes to apperr codes.
func toAppErr(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Wrap(err, codes.NotFound, msg, attrs...)
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimaryKey:
			return apperr.Wrap(err, codes.AlreadyExists, msg, attrs...)
		case sqliteConstraintForeignKey:
			return apperr.Wrap(err, codes.FailedPrecondition, msg, attrs...)
		case sqliteConstraintNotNull, sqliteConstraintCheck:
			return apperr.Wrap(err, codes.InvalidArgument, msg, attrs...)
		case sqliteBusy, sqliteLocked:
			return apperr.Wrap(err, codes.Unavailable, msg, attrs...)
		}
	}

	return apperr.Wrap(err, codes.Internal, msg, attrs...)
}

// IsUniqueViolation returns true if the error is a SQLite unique or
// primary-key constraint violation.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return false
}
