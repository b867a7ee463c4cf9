package tags

import (
	"fmt"
	"slices"
	"strings"
)

// Kind enumerates the closed set of GBL
// tag kinds this library understands.
type Kind uint8

const (
	KindOpaque Kind = iota
	KindHeader
	KindBootloader
	KindApplication
	KindMetadata
	KindProg
	KindProgLz4
	KindProgLzma
	KindEraseProg
	KindSeUpgrade
	KindEnd
	KindEncryptionData
	KindEncryptionInit
	KindSignatureEcdsaP256
	KindCertificateEcdsaP256
	KindVersionDependency
)

const opaqueName = "OPAQUE"

var (
	// registry defines the lookup
	// table that links a registered
	// ID to the appropriate TagMetadata
	// describing it.
	registry = map[ID]*TagMetadata{}

	// kindRegistry is the inverse of
	// registry, keyed by Kind.
	kindRegistry = map[Kind]*TagMetadata{}
)

// registerTagType registers a GBL tag kind
// with the library allowing it to decode the
// tag from its raw format.
//
// Registration only happens during package
// initialisation, after which the registry is
// read-only. If the ID or Kind in the
// TagMetadata has already been registered this
// function will panic.
func registerTagType(metadata TagMetadata) ID {
	if meta := registry[ID(metadata.IDValue)]; meta != nil {
		panic(fmt.Sprintf("tag id 0x%08x already registered to tag type '%s'", meta.IDValue, meta.Name))
	}

	if meta := kindRegistry[metadata.Kind]; meta != nil || metadata.Kind == KindOpaque {
		panic(fmt.Sprintf("kind %d cannot be registered to tag type '%s'", metadata.Kind, metadata.Name))
	}

	registry[ID(metadata.IDValue)] = &metadata
	kindRegistry[metadata.Kind] = &metadata
	return ID(metadata.IDValue)
}

// KindOf returns the Kind registered to
// the supplied ID, or KindOpaque if the
// ID is not recognised.
func KindOf(id ID) Kind {
	if meta := registry[id]; meta != nil {
		return meta.Kind
	}

	return KindOpaque
}

// KindByName looks up a Kind by its
// registered name, ignoring case, so
// "prog_lz4" and "PROG_LZ4" both resolve.
func KindByName(name string) (Kind, bool) {
	if strings.EqualFold(name, opaqueName) {
		return KindOpaque, true
	}

	for kind, meta := range kindRegistry {
		if strings.EqualFold(meta.Name, name) {
			return kind, true
		}
	}

	return KindOpaque, false
}

// Kinds returns every registered Kind
// ordered by its declaration.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindRegistry))
	for kind := range kindRegistry {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)
	return kinds
}

// ID returns the canonical wire identifier
// for this Kind.
//
// KindOpaque has no canonical identifier,
// the ID of an *Opaque tag is whatever was
// recorded in its header when decoded.
func (kind Kind) ID() (ID, bool) {
	if meta := kindRegistry[kind]; meta != nil {
		return ID(meta.IDValue), true
	}

	return 0, false
}

// String returns the registered name
// of this Kind.
func (kind Kind) String() string {
	if meta := kindRegistry[kind]; meta != nil {
		return meta.Name
	}

	if kind == KindOpaque {
		return opaqueName
	}

	return fmt.Sprintf("Kind(%d)", uint8(kind))
}

// String returns the name of this ID
// as described in its registered TagMetadata.
//
// If no TagMetadata has been registered to
// this ID then the hex encoding will be
// returned instead.
func (id ID) String() string {
	if meta := registry[id]; meta != nil {
		return meta.Name
	}

	return fmt.Sprintf("0x%08x", uint32(id))
}

// Decode looks up the TagMetadata
// registered to this ID and, if found,
// uses its TagDecoder to decode the
// appropriate Tag from the payload.
//
// If the ID doesn't have a TagMetadata
// registered then the payload is kept
// verbatim in an *Opaque tag.
func (id ID) Decode(hdr TagHeader, payload []byte) (Tag, error) {
	if uint32(len(payload)) != hdr.Length {
		return nil, fmt.Errorf("payload of %d bytes doesn't match header length %d: %w", len(payload), hdr.Length, ErrInvalidTagLength)
	}

	meta := registry[id]
	if meta == nil || meta.Decoder == nil {
		return opaqueDecoder(hdr, payload)
	}

	if hdr.Length < meta.MinLength {
		return nil, fmt.Errorf("%s payload of %d bytes is shorter than its %d byte layout: %w", meta.Name, hdr.Length, meta.MinLength, ErrInvalidTagLength)
	}

	return meta.Decoder(hdr, payload)
}
