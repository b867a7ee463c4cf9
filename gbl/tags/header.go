package tags

import "fmt"

const (
	// DefaultHeaderVersion is the GBL
	// format version written by this
	// library into new images (3.0).
	DefaultHeaderVersion = uint32(0x03000000)

	// DefaultHeaderImageType is the
	// image type written into new images.
	DefaultHeaderImageType = uint32(0)

	headerLength = 8
)

var (
	IDHeaderV3 = registerTagType(TagMetadata{
		IDValue:   0x03a617eb,
		Name:      "HEADER_V3",
		Kind:      KindHeader,
		MinLength: headerLength,
		Decoder:   decodeHeader,
	})
)

// Header is the first tag of every
// well-formed GBL image.
type Header struct {
	Version   uint32
	ImageType uint32

	trailing []byte
}

// NewHeader constructs a Header tag.
func NewHeader(version, imageType uint32) *Header {
	return &Header{Version: version, ImageType: imageType}
}

func decodeHeader(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	header := &Header{
		Version:   r.u32(),
		ImageType: r.u32(),
		trailing:  r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode header: %w", r.err)
	}

	return header, nil
}

func (header *Header) ID() ID     { return IDHeaderV3 }
func (header *Header) Kind() Kind { return KindHeader }

func (header *Header) Length() uint32 {
	return headerLength + uint32(len(header.trailing))
}

func (header *Header) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, header.Version)
	dst = byteOrder.AppendUint32(dst, header.ImageType)
	return append(dst, header.trailing...)
}

func (header *Header) String() string {
	return fmt.Sprintf("Header{version: 0x%08x, image_type: %d}", header.Version, header.ImageType)
}
