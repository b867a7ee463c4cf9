package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum_CheckValue(t *testing.T) {
	assert.Equal(t, uint32(0xcbf43926), Checksum([]byte("123456789")))
	assert.Equal(t, uint32(0), Checksum(nil))
	assert.True(t, Verify([]byte("123456789"), 0xcbf43926))
}

func TestUpdate_Incremental(t *testing.T) {
	crc := Update(0, []byte("1234"))
	crc = Update(crc, []byte("56789"))
	assert.Equal(t, uint32(0xcbf43926), crc)
}

func TestNew(t *testing.T) {
	h := New()
	_, _ = h.Write([]byte("12345"))
	_, _ = h.Write([]byte("6789"))
	assert.Equal(t, uint32(0xcbf43926), h.Sum32())
	assert.Equal(t, []byte{0xcb, 0xf4, 0x39, 0x26}, h.Sum(nil))
	assert.Equal(t, Size, h.Size())
}
