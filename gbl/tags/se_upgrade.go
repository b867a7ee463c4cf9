package tags

import "fmt"

var (
	IDSeUpgrade = registerTagType(TagMetadata{
		IDValue:   0x5ea617eb,
		Name:      "SE_UPGRADE",
		Kind:      KindSeUpgrade,
		MinLength: 8,
		Decoder:   decodeSeUpgrade,
	})
)

// SeUpgrade carries a Secure Element
// firmware upgrade blob.
type SeUpgrade struct {
	BlobSize uint32
	Version  uint32
	Data     []byte
}

// NewSeUpgrade constructs a SeUpgrade tag,
// BlobSize is taken from the length of data.
func NewSeUpgrade(version uint32, data []byte) *SeUpgrade {
	return &SeUpgrade{
		BlobSize: uint32(len(data)),
		Version:  version,
		Data:     bytesOrNil(data),
	}
}

func decodeSeUpgrade(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	upgrade := &SeUpgrade{
		BlobSize: r.u32(),
		Version:  r.u32(),
		Data:     r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode se upgrade: %w", r.err)
	}

	return upgrade, nil
}

func (upgrade *SeUpgrade) ID() ID     { return IDSeUpgrade }
func (upgrade *SeUpgrade) Kind() Kind { return KindSeUpgrade }

func (upgrade *SeUpgrade) Length() uint32 {
	return 8 + uint32(len(upgrade.Data))
}

func (upgrade *SeUpgrade) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, upgrade.BlobSize)
	dst = byteOrder.AppendUint32(dst, upgrade.Version)
	return append(dst, upgrade.Data...)
}

func (upgrade *SeUpgrade) String() string {
	return fmt.Sprintf("SeUpgrade{blob_size: %d, version: 0x%08x}", upgrade.BlobSize, upgrade.Version)
}
