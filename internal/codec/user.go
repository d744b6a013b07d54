package codec

import "github.com/liverty-music/archive-core/internal/entity"

// parseUserV1 decodes the version-1 user file: a byte flag followed by
// three strings (self-introduction, avatar song ID, background).
func parseUserV1(c *Cursor) (*entity.UserProfile, error) {
	if _, err := c.ReadByte(); err != nil { // showPlayerId
		return nil, err
	}
	selfIntro, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	avatar, err := c.ReadString()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadString(); err != nil { // background
		return nil, err
	}

	return &entity.UserProfile{
		SelfIntro:    selfIntro,
		AvatarSongID: avatar,
	}, nil
}
