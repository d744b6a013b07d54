package codec

import (
	"context"
	"log/slog"
	"time"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-logging/logging"
)

// expectedSaveFiles are the five members the save archive is expected to
// carry. Any missing is tolerated; any extra is logged and ignored.
var expectedSaveFiles = map[string]bool{
	"gameKey":      true,
	"gameProgress": true,
	"gameRecord":   true,
	"settings":     true,
	"user":         true,
}

// Parse unzips, decrypts, and parses a downloaded save archive into a
// GameSave. Unknown schema versions are logged and skipped rather than
// failing the whole ingestion; only an unreadable archive or a decryption
// failure aborts the operation (checksum failures are caught upstream of
// Parse).
func Parse(ctx context.Context, logger *logging.Logger, blob []byte) (*entity.GameSave, error) {
	files, err := Unzip(blob)
	if err != nil {
		return nil, err
	}

	save := &entity.GameSave{DecodedAt: time.Now()}

	for name := range files {
		if !expectedSaveFiles[name] && logger != nil {
			logger.Warn(ctx, "save archive carried unexpected member", slog.String("file", name))
		}
	}

	if raw, ok := files["gameKey"]; ok {
		header, plain, err := DecryptFile(raw)
		if err != nil {
			return nil, err
		}
		cur := NewCursor(plain)
		var entries []entity.GameKeyEntry
		switch header {
		case 2:
			entries, err = parseGameKeyV2(cur)
		case 3:
			entries, err = parseGameKeyV3(cur)
		default:
			logWarnUnknownVersion(ctx, logger, "gameKey", header)
			save.SkippedFiles = append(save.SkippedFiles, "gameKey")
		}
		if err != nil {
			if logger != nil {
				logger.Warn(ctx, "failed to parse gameKey", slog.Any("error", err))
			}
			save.SkippedFiles = append(save.SkippedFiles, "gameKey")
		} else {
			save.GameKey = entries
		}
	}

	if raw, ok := files["gameProgress"]; ok {
		header, plain, err := DecryptFile(raw)
		if err != nil {
			return nil, err
		}
		cur := NewCursor(plain)
		var progress *entity.GameProgress
		switch header {
		case 3:
			progress, err = parseGameProgressV3(cur)
		case 4:
			progress, err = parseGameProgressV4(cur)
		default:
			logWarnUnknownVersion(ctx, logger, "gameProgress", header)
			save.SkippedFiles = append(save.SkippedFiles, "gameProgress")
		}
		if err != nil {
			if logger != nil {
				logger.Warn(ctx, "failed to parse gameProgress", slog.Any("error", err))
			}
			save.SkippedFiles = append(save.SkippedFiles, "gameProgress")
		} else {
			save.Progress = progress
		}
	}

	if raw, ok := files["gameRecord"]; ok {
		header, plain, err := DecryptFile(raw)
		if err != nil {
			return nil, err
		}
		if header == 1 {
			cur := NewCursor(plain)
			records, warnings, err := parseGameRecordV1(ctx, cur, logger)
			if err != nil && logger != nil {
				logger.Warn(ctx, "gameRecord parse stopped early", slog.Any("error", err))
			}
			save.Records = records
			for _, w := range warnings {
				if logger != nil {
					logger.Warn(ctx, "gameRecord song skipped", slog.String("detail", w))
				}
			}
		} else {
			logWarnUnknownVersion(ctx, logger, "gameRecord", header)
			save.SkippedFiles = append(save.SkippedFiles, "gameRecord")
		}
	}

	if raw, ok := files["settings"]; ok {
		header, plain, err := DecryptFile(raw)
		if err != nil {
			return nil, err
		}
		if header == 1 {
			settings, err := parseSettingsV1(NewCursor(plain))
			if err != nil {
				if logger != nil {
					logger.Warn(ctx, "failed to parse settings", slog.Any("error", err))
				}
				save.SkippedFiles = append(save.SkippedFiles, "settings")
			} else {
				save.Settings = settings
			}
		} else {
			logWarnUnknownVersion(ctx, logger, "settings", header)
			save.SkippedFiles = append(save.SkippedFiles, "settings")
		}
	}

	if raw, ok := files["user"]; ok {
		header, plain, err := DecryptFile(raw)
		if err != nil {
			return nil, err
		}
		if header == 1 {
			profile, err := parseUserV1(NewCursor(plain))
			if err != nil {
				if logger != nil {
					logger.Warn(ctx, "failed to parse user", slog.Any("error", err))
				}
				save.SkippedFiles = append(save.SkippedFiles, "user")
			} else {
				save.Profile = profile
			}
		} else {
			logWarnUnknownVersion(ctx, logger, "user", header)
			save.SkippedFiles = append(save.SkippedFiles, "user")
		}
	}

	return save, nil
}

func logWarnUnknownVersion(ctx context.Context, logger *logging.Logger, file string, header byte) {
	if logger == nil {
		return
	}
	logger.Warn(ctx, "unknown save file schema version, skipping",
		slog.String("file", file), slog.Int("version", int(header)))
}
