package tags

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrRegisteredID is returned when an Opaque
// tag is given an ID that belongs to a
// registered tag kind.
var ErrRegisteredID = errors.New("id belongs to a registered tag kind")

// Opaque defines a GBL tag type that
// contains a raw payload when no TagMetadata
// was found that matched the ID in the
// TagHeader.
//
// Opaque tags keep forward compatibility with
// tag kinds added to the format later, the
// payload is re-encoded byte for byte.
type Opaque struct {
	// TagID specifies the wire identifier
	// recorded in the tag's header.
	TagID ID

	// Data specifies the raw payload.
	Data []byte
}

// NewOpaque constructs a new Opaque tag
// that will store the supplied raw data
// and represent it using the supplied ID.
func NewOpaque(id ID, data []byte) *Opaque {
	return &Opaque{TagID: id, Data: bytesOrNil(data)}
}

// CheckOpaqueID confirms that id is not
// claimed by a registered tag kind. An Opaque
// tag with such an ID would decode as that
// kind once written.
func CheckOpaqueID(id ID) error {
	if kind := KindOf(id); kind != KindOpaque {
		return fmt.Errorf("%s is %s: %w", id, kind, ErrRegisteredID)
	}

	return nil
}

// opaqueDecoder defines a TagDecoder
// function that can decode a raw GBL
// tag of any type into an Opaque tag.
func opaqueDecoder(hdr TagHeader, payload []byte) (Tag, error) {
	return &Opaque{TagID: hdr.ID, Data: bytesOrNil(payload)}, nil
}

// ID returns the ID recorded
// for this Opaque tag.
func (opaque *Opaque) ID() ID {
	return opaque.TagID
}

// Kind always returns KindOpaque.
func (opaque *Opaque) Kind() Kind {
	return KindOpaque
}

// Length returns the size of
// the raw payload.
func (opaque *Opaque) Length() uint32 {
	return uint32(len(opaque.Data))
}

func (opaque *Opaque) appendPayload(dst []byte) []byte {
	return append(dst, opaque.Data...)
}

// String returns a single line representation
// of this Opaque tag.
func (opaque *Opaque) String() string {
	hash := sha256.Sum256(opaque.Data)

	return fmt.Sprintf("Opaque{id: %s, length: %d, hash: %s}", opaque.TagID, opaque.Length(), hex.EncodeToString(hash[:]))
}
