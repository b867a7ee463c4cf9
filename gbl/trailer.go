package gbl

import (
	"errors"
	"fmt"

	"github.com/KatelynHaworth/gbl-helper/gbl/checksum"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

var (
	// ErrMissingEndTag is returned when an
	// image doesn't terminate with an END tag.
	ErrMissingEndTag = errors.New("image has no END tag")

	// ErrChecksumMismatch is returned when the
	// CRC recorded in an END tag doesn't match
	// the one computed over the image.
	ErrChecksumMismatch = errors.New("END tag checksum mismatch")
)

// ComputeCRC returns the CRC an END tag
// following preceding must carry. Every
// frame except END tags is fed in order,
// followed by the header of the END tag
// itself.
func ComputeCRC(preceding []tags.Tag) uint32 {
	crc := checksum.New()
	for _, tag := range preceding {
		if tag.Kind() == tags.KindEnd {
			continue
		}

		_, _ = crc.Write(tags.EncodeFrame(tag))
	}

	endHeader := tags.TagHeader{ID: tags.IDEnd, Length: tags.EndLength}
	_, _ = endHeader.WriteTo(crc)

	return crc.Sum32()
}

// BuildEndTag returns a freshly computed
// END tag for the supplied tags.
func BuildEndTag(preceding []tags.Tag) *tags.End {
	return tags.NewEnd(ComputeCRC(preceding))
}

// VerifyEndTag recomputes the END tag of a
// parsed image and compares it against the
// recorded one.
func VerifyEndTag(image []tags.Tag) error {
	if len(image) == 0 {
		return ErrMissingEndTag
	}

	end, ok := image[len(image)-1].(*tags.End)
	if !ok {
		return fmt.Errorf("last tag is %s: %w", image[len(image)-1].ID(), ErrMissingEndTag)
	}

	if expected := ComputeCRC(image[:len(image)-1]); end.CRC != expected {
		return fmt.Errorf("recorded 0x%08x, computed 0x%08x: %w", end.CRC, expected, ErrChecksumMismatch)
	}

	return nil
}
