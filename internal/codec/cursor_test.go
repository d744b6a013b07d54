package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_ByteAlignedReads(t *testing.T) {
	data := []byte{0x01, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12}
	c := NewCursor(data)

	b, err := c.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	u16, err := c.ReadUint16LE()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)

	u32, err := c.ReadUint32LE()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), u32)

	assert.Equal(t, 7, c.Position())
	assert.Equal(t, 0, c.Remaining())
}

func TestCursor_ReadByte_EOF(t *testing.T) {
	c := NewCursor([]byte{})
	_, err := c.ReadByte()
	assert.Error(t, err)
}

func TestCursor_ReadUint32LE_ShortBuffer(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	_, err := c.ReadUint32LE()
	assert.Error(t, err)
}

func TestCursor_ReadFloat32LE(t *testing.T) {
	// 1.5 in IEEE-754 little-endian.
	c := NewCursor([]byte{0x00, 0x00, 0xc0, 0x3f})
	v, err := c.ReadFloat32LE()
	assert.NoError(t, err)
	assert.Equal(t, float32(1.5), v)
}

func TestCursor_ReadVarInt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want int
	}{
		{"single byte", []byte{0x05}, 5},
		{"two bytes", []byte{0xac, 0x02}, 300},
		{"zero", []byte{0x00}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.data)
			got, err := c.ReadVarInt()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursor_ReadString(t *testing.T) {
	// length-prefixed "hi": varint(2), 'h', 'i'.
	c := NewCursor([]byte{0x02, 'h', 'i'})
	s, err := c.ReadString()
	assert.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestCursor_ReadString_NotEnoughBytes(t *testing.T) {
	c := NewCursor([]byte{0x05, 'h', 'i'})
	_, err := c.ReadString()
	assert.Error(t, err)
}

func TestCursor_ReadBits(t *testing.T) {
	// 0b00000101 -> LSB-first: true, false, true, false, false, false, false, false
	c := NewCursor([]byte{0x05})
	bits, err := c.ReadBits(8)
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false, false, false, false, false}, bits)
}

func TestCursor_ReadBit_ResetsAfterByteRead(t *testing.T) {
	c := NewCursor([]byte{0x01, 0xff})
	bit, err := c.ReadBit()
	assert.NoError(t, err)
	assert.True(t, bit)

	// A byte-aligned read mid-bit-stream must reset to the next whole byte.
	b, err := c.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0xff), b)
}

func TestCursor_SeekTo(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04})
	_, _ = c.ReadBit()

	c.SeekTo(2)
	assert.Equal(t, 2, c.Position())

	b, err := c.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x03), b)
}

func TestCursor_SeekTo_ClampsToBounds(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})

	c.SeekTo(-5)
	assert.Equal(t, 0, c.Position())

	c.SeekTo(100)
	assert.Equal(t, 2, c.Position())
}

func TestStripDifficultySuffix(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"dot-zero suffix", "Chaos.0", "Chaos"},
		{"Lv suffix", "ChaosLv15", "Chaos"},
		{"no suffix", "Chaos", "Chaos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDifficultySuffix(tt.raw))
		})
	}
}
