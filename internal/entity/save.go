package entity

import "time"

// ChartRecord is a single song/difficulty result as parsed directly out of
// the player's save blob, before any archive/RKS enrichment.
type ChartRecord struct {
	SongID     string
	Difficulty Difficulty
	Score      uint32
	Acc        float64
	IsFC       bool
	// IsAP is true when Score == 1,000,000, independent of the save's own
	// FC bit (the save format conflates the two). IsFC is false on AP
	// records, so a full combo is IsFC || IsAP.
	IsAP bool
}

// GameKeyEntry is one decoded row of the gameKey save file: a song's
// unlocked/owned state. Schema versions 2 and 3 are both supported.
type GameKeyEntry struct {
	SongID string
	Owned  bool
}

// GameProgress is the decoded gameProgress save file (schema versions 3
// and 4): coarse player progression flags not tied to any single chart.
type GameProgress struct {
	ChallengeModeRank int32
	Money             [5]int32
	UnlockedItems     []string
}

// Settings is the decoded settings save file (schema version 1).
type Settings struct {
	ChartOffset   float32
	Volume        float32
	MultiDisplays bool
}

// UserProfile is the decoded user save file (schema version 1).
type UserProfile struct {
	Nickname     string
	SelfIntro    string
	AvatarSongID string
}

// GameSave is the fully-decoded contents of a player's save envelope: the
// union of every file the ZIP archive carried, tolerant of any that were
// missing or carried an unrecognized schema version.
type GameSave struct {
	GameKey     []GameKeyEntry
	Progress    *GameProgress
	Records     []ChartRecord
	Settings    *Settings
	Profile     *UserProfile
	DecodedAt   time.Time
	// SkippedFiles lists save-file names whose schema version was not
	// recognized or whose contents failed to parse; the file's data is
	// omitted rather than failing ingestion.
	SkippedFiles []string
}
