package codec

import (
	"context"

	"github.com/liverty-music/archive-core/internal/entity"
	"github.com/pannpers/go-logging/logging"
)

// recordDifficultyOrder is the bit order the save format uses for the
// per-song presence and FC/AP masks.
var recordDifficultyOrder = []entity.Difficulty{
	entity.DifficultyEZ,
	entity.DifficultyHD,
	entity.DifficultyIN,
	entity.DifficultyAT,
	legacyDifficulty,
}

// legacyDifficulty is a fifth, synthetic difficulty slot the save format
// reserves for pre-rework charts. It is excluded from RKS aggregation
// (spec's legacy-difficulty-exclusion resolution) but its score is still
// parsed and retained as history.
const legacyDifficulty entity.Difficulty = 100

// parseGameRecordV1 decodes the version-1 gameRecord file: a var-int song
// count followed by, per song, a length-prefixed ID, a var-int payload
// length used as a hard boundary, a difficulty-presence mask byte, an
// FC-or-AP mask byte, and one (score, acc) pair per present difficulty.
func parseGameRecordV1(ctx context.Context, c *Cursor, logger *logging.Logger) ([]entity.ChartRecord, []string, error) {
	songCount, err := c.ReadVarInt()
	if err != nil {
		return nil, nil, err
	}

	var records []entity.ChartRecord
	var warnings []string

	for i := 0; i < songCount; i++ {
		rawID, err := c.ReadString()
		if err != nil {
			return records, warnings, err
		}
		songID := StripDifficultySuffix(rawID)

		payloadLen, err := c.ReadVarInt()
		if err != nil {
			return records, warnings, err
		}
		boundary := c.Position() + payloadLen

		presence, err := c.ReadByte()
		if err != nil {
			return records, warnings, err
		}
		fcOrAP, err := c.ReadByte()
		if err != nil {
			return records, warnings, err
		}

		for idx, diff := range recordDifficultyOrder {
			if (presence>>uint(idx))&1 == 0 {
				continue
			}

			score, err := c.ReadUint32LE()
			if err != nil {
				c.SeekTo(boundary)
				warnings = append(warnings, songID+": truncated difficulty record")
				break
			}
			acc, err := c.ReadFloat32LE()
			if err != nil {
				c.SeekTo(boundary)
				warnings = append(warnings, songID+": truncated difficulty record")
				break
			}

			isAP := score == 1000000
			isFCOrAP := (fcOrAP>>uint(idx))&1 != 0
			isFC := isFCOrAP && !isAP

			records = append(records, entity.ChartRecord{
				SongID:     songID,
				Difficulty: diff,
				Score:      score,
				Acc:        float64(acc),
				IsFC:       isFC,
				IsAP:       isAP,
			})
		}

		if c.Position() != boundary {
			if logger != nil {
				logger.Warn(ctx, "gameRecord: song record did not end at declared boundary, resyncing")
			}
			c.SeekTo(boundary)
		}
	}

	return records, warnings, nil
}
