package tags

import "fmt"

// readUint8 returns the byte at off.
func readUint8(buf []byte, off int) (uint8, error) {
	if off < 0 || off+1 > len(buf) {
		return 0, fmt.Errorf("read u8 at %d of %d bytes: %w", off, len(buf), ErrInvalidOffset)
	}

	return buf[off], nil
}

// readUint16 returns the little-endian
// 16-bit value starting at off.
func readUint16(buf []byte, off int) (uint16, error) {
	if off < 0 || off+2 > len(buf) {
		return 0, fmt.Errorf("read u16 at %d of %d bytes: %w", off, len(buf), ErrInvalidOffset)
	}

	return byteOrder.Uint16(buf[off:]), nil
}

// readUint32 returns the little-endian
// 32-bit value starting at off.
func readUint32(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, fmt.Errorf("read u32 at %d of %d bytes: %w", off, len(buf), ErrInvalidOffset)
	}

	return byteOrder.Uint32(buf[off:]), nil
}

// payloadReader walks a payload field by
// field, keeping the first error so a decoder
// can read its whole layout and check once.
type payloadReader struct {
	buf []byte
	off int
	err error
}

func (r *payloadReader) u8() uint8 {
	if r.err != nil {
		return 0
	}

	var v uint8
	v, r.err = readUint8(r.buf, r.off)
	r.off++
	return v
}

func (r *payloadReader) u16() uint16 {
	if r.err != nil {
		return 0
	}

	var v uint16
	v, r.err = readUint16(r.buf, r.off)
	r.off += 2
	return v
}

func (r *payloadReader) u32() uint32 {
	if r.err != nil {
		return 0
	}

	var v uint32
	v, r.err = readUint32(r.buf, r.off)
	r.off += 4
	return v
}

// rest returns the bytes following the
// fields read so far, or nil when nothing
// remains so decoded and constructed tags
// compare equal.
func (r *payloadReader) rest() []byte {
	if r.err != nil || r.off >= len(r.buf) {
		return nil
	}

	return r.buf[r.off:]
}

// bytesOrNil normalises an empty
// payload to nil.
func bytesOrNil(buf []byte) []byte {
	if len(buf) == 0 {
		return nil
	}

	return buf
}
