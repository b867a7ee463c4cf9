// Package checksum implements the CRC-32
// used by the END tag of a GBL image.
//
// The digest is CRC-32/ISO-HDLC: the
// reflected IEEE 802.3 polynomial 0xEDB88320
// over an accumulator initialised to all
// ones and inverted on output.
package checksum

import (
	"hash"
	"hash/crc32"
)

// Size is the size, in bytes,
// of a checksum digest.
const Size = crc32.Size

var table = crc32.MakeTable(crc32.IEEE)

// New returns a running checksum
// that can be fed frame by frame.
func New() hash.Hash32 {
	return crc32.New(table)
}

// Checksum returns the checksum of data.
func Checksum(data []byte) uint32 {
	return crc32.Checksum(data, table)
}

// Update returns the result of adding
// the bytes in data to crc.
func Update(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, table, data)
}

// Verify reports whether the checksum
// of data matches expected.
func Verify(data []byte, expected uint32) bool {
	return Checksum(data) == expected
}
