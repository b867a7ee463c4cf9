package tags

import "fmt"

var (
	IDProg = registerTagType(TagMetadata{
		IDValue:   0xfe0101fe,
		Name:      "PROG",
		Kind:      KindProg,
		MinLength: 4,
		Decoder:   decodeProg,
	})
)

// Prog carries uncompressed program data
// to be written to flash starting at
// FlashStartAddress.
type Prog struct {
	FlashStartAddress uint32
	Data              []byte
}

// NewProg constructs a Prog tag.
func NewProg(flashStartAddress uint32, data []byte) *Prog {
	return &Prog{FlashStartAddress: flashStartAddress, Data: bytesOrNil(data)}
}

func decodeProg(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	prog := &Prog{
		FlashStartAddress: r.u32(),
		Data:              r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode prog: %w", r.err)
	}

	return prog, nil
}

func (prog *Prog) ID() ID     { return IDProg }
func (prog *Prog) Kind() Kind { return KindProg }

func (prog *Prog) Length() uint32 {
	return 4 + uint32(len(prog.Data))
}

func (prog *Prog) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, prog.FlashStartAddress)
	return append(dst, prog.Data...)
}

func (prog *Prog) String() string {
	return fmt.Sprintf("Prog{address: 0x%08x, data: %d}", prog.FlashStartAddress, len(prog.Data))
}
