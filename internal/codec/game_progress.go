package codec

import "github.com/liverty-music/archive-core/internal/entity"

// parseGameProgressV3 decodes the version-3 gameProgress file: a run of
// boolean flags, a completion string, a var-int song-update marker, the
// challenge-mode rank, the five-slot money array, and several fixed-width
// unlock bitfields.
func parseGameProgressV3(c *Cursor) (*entity.GameProgress, error) {
	if _, err := c.ReadBits(4); err != nil { // isFirstRun, legacyChapterFinished, two tip flags
		return nil, err
	}
	if _, err := c.ReadString(); err != nil { // completed
		return nil, err
	}
	if _, err := c.ReadVarInt(); err != nil { // songUpdateInfo
		return nil, err
	}

	rank, err := c.ReadUint16LE()
	if err != nil {
		return nil, err
	}

	var money [5]int32
	for i := range money {
		v, err := c.ReadVarInt()
		if err != nil {
			return nil, err
		}
		money[i] = int32(v)
	}

	for _, n := range []int{4, 4, 4, 8, 6, 1, 1, 1, 6} {
		if _, err := c.ReadBits(n); err != nil {
			return nil, err
		}
	}

	return &entity.GameProgress{
		ChallengeModeRank: int32(rank),
		Money:             money,
	}, nil
}

// parseGameProgressV4 reuses the version-3 layout and appends the
// version-4 trailing unlock bitfield.
func parseGameProgressV4(c *Cursor) (*entity.GameProgress, error) {
	progress, err := parseGameProgressV3(c)
	if err != nil {
		return progress, err
	}
	if _, err := c.ReadBits(3); err != nil {
		return progress, err
	}
	return progress, nil
}
