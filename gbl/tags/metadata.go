package tags

import "fmt"

var (
	IDMetadata = registerTagType(TagMetadata{
		IDValue: 0xf60808f6,
		Name:    "METADATA",
		Kind:    KindMetadata,
		Decoder: decodeMetadata,
	})
)

// Metadata carries free-form application
// metadata, the whole payload is kept as is.
type Metadata struct {
	Data []byte
}

func NewMetadata(data []byte) *Metadata {
	return &Metadata{Data: bytesOrNil(data)}
}

func decodeMetadata(_ TagHeader, payload []byte) (Tag, error) {
	return &Metadata{Data: bytesOrNil(payload)}, nil
}

func (metadata *Metadata) ID() ID         { return IDMetadata }
func (metadata *Metadata) Kind() Kind     { return KindMetadata }
func (metadata *Metadata) Length() uint32 { return uint32(len(metadata.Data)) }

func (metadata *Metadata) appendPayload(dst []byte) []byte {
	return append(dst, metadata.Data...)
}

func (metadata *Metadata) String() string {
	return fmt.Sprintf("Metadata{length: %d}", len(metadata.Data))
}
