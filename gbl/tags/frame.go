package tags

import (
	"fmt"
	"io"
)

// DecodeFrame reads the TagHeader found at
// offset in buf and returns it alongside the
// payload it declares. The payload is a
// sub-slice of buf, it is not copied.
func DecodeFrame(buf []byte, offset int) (TagHeader, []byte, error) {
	if offset < 0 || offset+int(TagHeaderSize) > len(buf) {
		return TagHeader{}, nil, fmt.Errorf("frame header at %d of %d bytes: %w", offset, len(buf), ErrInvalidOffset)
	}

	id, _ := readUint32(buf, offset)
	length, _ := readUint32(buf, offset+4)
	hdr := TagHeader{ID: ID(id), Length: length}

	start := offset + int(TagHeaderSize)
	if uint64(start)+uint64(length) > uint64(len(buf)) {
		return hdr, nil, fmt.Errorf("%s payload of %d bytes at %d overruns %d byte buffer: %w", hdr.ID, length, start, len(buf), ErrInvalidTagLength)
	}

	return hdr, buf[start : start+int(length)], nil
}

// DecodeTag decodes the payload of a frame
// into the Tag registered to its ID. Unknown
// IDs produce an *Opaque tag and never fail.
func DecodeTag(hdr TagHeader, payload []byte) (Tag, error) {
	return hdr.ID.Decode(hdr, payload)
}

// AppendFrame appends the full frame of
// tag, header followed by payload, to dst.
func AppendFrame(dst []byte, tag Tag) []byte {
	dst = HeaderOf(tag).appendTo(dst)
	return tag.appendPayload(dst)
}

// EncodeFrame returns the full frame of
// tag, header followed by payload.
func EncodeFrame(tag Tag) []byte {
	return AppendFrame(make([]byte, 0, FrameSize(tag)), tag)
}

// FrameSize returns, in bytes, the
// size of the encoded frame of tag.
func FrameSize(tag Tag) int {
	return int(TagHeaderSize) + int(tag.Length())
}

// WriteFrame encodes tag and writes
// its frame to w.
func WriteFrame(w io.Writer, tag Tag) (int64, error) {
	hdr := HeaderOf(tag)
	n, err := hdr.WriteTo(w)
	if err != nil {
		return 0, fmt.Errorf("write %s header: %w", hdr.ID, err)
	}

	written, err := w.Write(Payload(tag))
	if err != nil {
		return n + int64(written), fmt.Errorf("write %s payload: %w", hdr.ID, err)
	}

	return n + int64(written), nil
}
