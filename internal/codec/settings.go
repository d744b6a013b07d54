package codec

import "github.com/liverty-music/archive-core/internal/entity"

// parseSettingsV1 decodes the version-1 settings file: four boolean
// toggles, a device name string, and six float32 tuning values.
func parseSettingsV1(c *Cursor) (*entity.Settings, error) {
	chordSupport, err := c.ReadBit()
	if err != nil {
		return nil, err
	}
	_ = chordSupport
	if _, err := c.ReadBit(); err != nil { // fcAPIndicator
		return nil, err
	}
	if _, err := c.ReadBit(); err != nil { // enableHitSound
		return nil, err
	}
	multiDisplays, err := c.ReadBit()
	if err != nil {
		return nil, err
	}

	if _, err := c.ReadString(); err != nil { // deviceName
		return nil, err
	}
	if _, err := c.ReadFloat32LE(); err != nil { // bright
		return nil, err
	}
	volume, err := c.ReadFloat32LE()
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadFloat32LE(); err != nil { // effectVolume
		return nil, err
	}
	if _, err := c.ReadFloat32LE(); err != nil { // hitSoundVolume
		return nil, err
	}
	offset, err := c.ReadFloat32LE() // soundOffset
	if err != nil {
		return nil, err
	}
	if _, err := c.ReadFloat32LE(); err != nil { // noteScale
		return nil, err
	}

	return &entity.Settings{
		ChartOffset:   offset,
		Volume:        volume,
		MultiDisplays: multiDisplays,
	}, nil
}
