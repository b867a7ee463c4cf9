// Package gbl reads and writes GBL firmware
// images, a sequence of little-endian tag
// frames terminated by a CRC-32 END tag.
package gbl

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

var (
	// ErrFileTooSmall is returned when a buffer
	// is shorter than a single tag header.
	ErrFileTooSmall = errors.New("file too small to contain a GBL tag")
)

// ParseResult describes the outcome
// of scanning a GBL image.
type ParseResult struct {
	// Tags holds every tag decoded
	// before the scan stopped.
	Tags []tags.Tag

	// Consumed specifies, in bytes,
	// how much of the buffer was decoded
	// into Tags.
	Consumed int

	// Stopped holds the frame or tag error
	// that ended the scan early, nil when the
	// whole buffer was consumed.
	Stopped error
}

// Trailing returns the number of bytes
// after the last decoded tag.
func (result *ParseResult) Trailing(total int) int {
	return total - result.Consumed
}

// Parse decodes buf into its sequence of tags.
//
// The scan stops at the first frame that can't
// be decoded, the tags decoded before it are
// returned without an error. Only a buffer too
// small to hold a single tag header fails.
func Parse(buf []byte) ([]tags.Tag, error) {
	result, err := ParseBytes(buf)
	if err != nil {
		return nil, err
	}

	return result.Tags, nil
}

// ParseBytes behaves like Parse but also
// reports where and why the scan stopped.
func ParseBytes(buf []byte) (*ParseResult, error) {
	if len(buf) < int(tags.TagHeaderSize) {
		return nil, fmt.Errorf("parse %d bytes: %w", len(buf), ErrFileTooSmall)
	}

	result := new(ParseResult)
	for result.Consumed < len(buf) {
		hdr, payload, err := tags.DecodeFrame(buf, result.Consumed)
		if err != nil {
			result.Stopped = fmt.Errorf("decode frame at %d: %w", result.Consumed, err)
			break
		}

		tag, err := tags.DecodeTag(hdr, payload)
		if err != nil {
			result.Stopped = fmt.Errorf("decode %s at %d: %w", hdr.ID, result.Consumed, err)
			break
		}

		result.Tags = append(result.Tags, tag)
		result.Consumed += int(tags.TagHeaderSize) + len(payload)
	}

	return result, nil
}

// Encode concatenates the frames of
// image in order.
func Encode(image []tags.Tag) []byte {
	buf := make([]byte, 0, EncodedSize(image))
	for _, tag := range image {
		buf = tags.AppendFrame(buf, tag)
	}

	return buf
}

// EncodedSize returns, in bytes, the size
// of the encoding of image.
func EncodedSize(image []tags.Tag) int {
	var size int
	for _, tag := range image {
		size += tags.FrameSize(tag)
	}

	return size
}

// WriteTo writes the encoding
// of image to w.
func WriteTo(w io.Writer, image []tags.Tag) (int64, error) {
	return bytes.NewReader(Encode(image)).WriteTo(w)
}
