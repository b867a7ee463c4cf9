package tags

import "fmt"

// EndLength is the payload size of an
// End tag, a single CRC32 digest.
const EndLength = 4

var (
	IDEnd = registerTagType(TagMetadata{
		IDValue:   0xfc0404fc,
		Name:      "END",
		Kind:      KindEnd,
		MinLength: EndLength,
		Decoder:   decodeEnd,
	})
)

// End is the trailer of a GBL image. Its
// CRC covers every preceding frame plus the
// End tag's own header.
type End struct {
	CRC uint32

	trailing []byte
}

// NewEnd constructs an End tag carrying
// the supplied CRC.
func NewEnd(crc uint32) *End {
	return &End{CRC: crc}
}

func decodeEnd(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	end := &End{
		CRC:      r.u32(),
		trailing: r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode end: %w", r.err)
	}

	return end, nil
}

func (end *End) ID() ID     { return IDEnd }
func (end *End) Kind() Kind { return KindEnd }

func (end *End) Length() uint32 {
	return EndLength + uint32(len(end.trailing))
}

func (end *End) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, end.CRC)
	return append(dst, end.trailing...)
}

func (end *End) String() string {
	return fmt.Sprintf("End{crc: 0x%08x}", end.CRC)
}
