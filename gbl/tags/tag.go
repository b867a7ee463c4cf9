package tags

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

type (
	// ID represents a 32-bit unsigned
	// integer that is included as the first
	// 4 bytes of a GBL tag frame to declare
	// the type of that tag.
	ID uint32

	// TagHeader defines the generic header
	// data structure that is included at the
	// start of all GBL tag frames.
	TagHeader struct {
		// ID specifies the unique identifier
		// of the GBL tag following this header.
		ID ID

		// Length specifies, in bytes, the size
		// of the payload following this header.
		// The header itself is not included.
		Length uint32
	}

	// Tag defines the set of functions every
	// GBL tag kind implements. The set of
	// implementations is closed, unrecognised
	// identifiers are represented by *Opaque.
	Tag interface {
		// ID returns the wire identifier
		// written in the tag's header.
		ID() ID

		// Kind returns the registered kind
		// of the tag.
		Kind() Kind

		// Length returns, in bytes, the size
		// of the payload when the tag is
		// encoded to its raw format.
		Length() uint32

		// appendPayload appends the kind
		// specific payload serialization
		// to dst.
		appendPayload(dst []byte) []byte
	}
)

var (
	// TagHeaderSize defines the raw size, in bytes,
	// a TagHeader takes when it is encoded to its
	// raw format.
	TagHeaderSize = uint32(binary.Size(TagHeader{}))

	// ErrInvalidOffset is returned when a frame
	// header would be read outside of the buffer.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidTagLength is returned when the
	// length declared in a frame header does not
	// fit in the buffer, or a payload is too short
	// for the layout of its kind.
	ErrInvalidTagLength = errors.New("invalid tag length")

	byteOrder = binary.LittleEndian
)

// HeaderOf returns the TagHeader that
// prefixes the supplied tag when it is
// encoded.
func HeaderOf(tag Tag) TagHeader {
	return TagHeader{ID: tag.ID(), Length: tag.Length()}
}

// Payload returns the raw payload of the
// supplied tag, excluding its TagHeader.
func Payload(tag Tag) []byte {
	return tag.appendPayload(make([]byte, 0, tag.Length()))
}

// ReadFrom attempts to read and decode
// this TagHeader from the supplied reader.
func (hdr *TagHeader) ReadFrom(r io.Reader) (int64, error) {
	if err := binary.Read(r, byteOrder, hdr); err != nil {
		return -1, err
	}

	return int64(TagHeaderSize), nil
}

// WriteTo attempts to encode and write
// this TagHeader to the supplied writer.
func (hdr *TagHeader) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, byteOrder, hdr); err != nil {
		return -1, err
	}

	return int64(TagHeaderSize), nil
}

// String returns a single line
// representation of this TagHeader.
func (hdr TagHeader) String() string {
	return fmt.Sprintf("TagHeader{id: %s, length: %d}", hdr.ID, hdr.Length)
}

func (hdr TagHeader) appendTo(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, uint32(hdr.ID))
	return byteOrder.AppendUint32(dst, hdr.Length)
}
