package codec

import "github.com/liverty-music/archive-core/internal/entity"

// gameKeyTypeFlagCount is the number of per-key status bits: collectible
// text read, single-item unlock, collectible owned, background owned,
// avatar owned.
const gameKeyTypeFlagCount = 5

// parseGameKeyV2 decodes the version-2 gameKey file: a count-prefixed list
// of named entries, each carrying five status bits and a variable number
// of per-bit collection flags.
func parseGameKeyV2(c *Cursor) ([]entity.GameKeyEntry, error) {
	count, err := c.ReadVarInt()
	if err != nil {
		return nil, err
	}

	entries := make([]entity.GameKeyEntry, 0, count)
	for i := 0; i < count; i++ {
		name, err := c.ReadString()
		if err != nil {
			return entries, err
		}
		length, err := c.ReadByte()
		if err != nil {
			return entries, err
		}

		flags, err := c.ReadBits(gameKeyTypeFlagCount)
		if err != nil {
			return entries, err
		}

		remaining := int(length) - 1
		for j := 0; j < remaining; j++ {
			if _, err := c.ReadByte(); err != nil {
				return entries, err
			}
		}

		entries = append(entries, entity.GameKeyEntry{
			SongID: name,
			Owned:  len(flags) > 1 && flags[1],
		})
	}

	// Trailing per-item collection bitfields (lanota/camellia read-state),
	// fixed width, unrelated to per-song ownership.
	if _, err := c.ReadBits(6); err != nil {
		return entries, err
	}
	if _, err := c.ReadBits(8); err != nil {
		return entries, err
	}

	return entries, nil
}

// parseGameKeyV3 reuses the version-2 layout and appends two trailing
// byte-aligned fields introduced in version 3.
func parseGameKeyV3(c *Cursor) ([]entity.GameKeyEntry, error) {
	entries, err := parseGameKeyV2(c)
	if err != nil {
		return entries, err
	}
	if _, err := c.ReadByte(); err != nil {
		return entries, err
	}
	if _, err := c.ReadByte(); err != nil {
		return entries, err
	}
	return entries, nil
}
