package tags

import "fmt"

var (
	IDBootloader = registerTagType(TagMetadata{
		IDValue:   0xf50909f5,
		Name:      "BOOTLOADER",
		Kind:      KindBootloader,
		MinLength: 8,
		Decoder:   decodeBootloader,
	})
)

// Bootloader carries a bootloader
// upgrade image and the address it is
// to be written to.
type Bootloader struct {
	BootloaderVersion uint32
	Address           uint32
	Data              []byte
}

// NewBootloader constructs a Bootloader tag.
func NewBootloader(bootloaderVersion, address uint32, data []byte) *Bootloader {
	return &Bootloader{
		BootloaderVersion: bootloaderVersion,
		Address:           address,
		Data:              bytesOrNil(data),
	}
}

func decodeBootloader(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	bootloader := &Bootloader{
		BootloaderVersion: r.u32(),
		Address:           r.u32(),
		Data:              r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode bootloader: %w", r.err)
	}

	return bootloader, nil
}

func (bootloader *Bootloader) ID() ID     { return IDBootloader }
func (bootloader *Bootloader) Kind() Kind { return KindBootloader }

func (bootloader *Bootloader) Length() uint32 {
	return 8 + uint32(len(bootloader.Data))
}

func (bootloader *Bootloader) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, bootloader.BootloaderVersion)
	dst = byteOrder.AppendUint32(dst, bootloader.Address)
	return append(dst, bootloader.Data...)
}

func (bootloader *Bootloader) String() string {
	return fmt.Sprintf("Bootloader{version: %d, address: 0x%08x, data: %d}", bootloader.BootloaderVersion, bootloader.Address, len(bootloader.Data))
}
