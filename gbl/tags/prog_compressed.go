package tags

import "fmt"

const compressedProgLength = 8

var (
	IDProgLz4 = registerTagType(TagMetadata{
		IDValue:   0xfd0505fd,
		Name:      "PROG_LZ4",
		Kind:      KindProgLz4,
		MinLength: compressedProgLength,
		Decoder:   decodeProgLz4,
	})

	IDProgLzma = registerTagType(TagMetadata{
		IDValue:   0xfd0707fd,
		Name:      "PROG_LZMA",
		Kind:      KindProgLzma,
		MinLength: compressedProgLength,
		Decoder:   decodeProgLzma,
	})
)

// CompressedProg is the payload layout
// shared by the compressed program tags.
// CompressedData is carried as is, it is
// never inflated by this library.
type CompressedProg struct {
	FlashStartAddress uint32
	DecompressedSize  uint32
	CompressedData    []byte
}

func decodeCompressedProg(payload []byte) (CompressedProg, error) {
	r := &payloadReader{buf: payload}
	prog := CompressedProg{
		FlashStartAddress: r.u32(),
		DecompressedSize:  r.u32(),
		CompressedData:    r.rest(),
	}

	return prog, r.err
}

func (prog *CompressedProg) Length() uint32 {
	return compressedProgLength + uint32(len(prog.CompressedData))
}

func (prog *CompressedProg) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, prog.FlashStartAddress)
	dst = byteOrder.AppendUint32(dst, prog.DecompressedSize)
	return append(dst, prog.CompressedData...)
}

// ProgLz4 carries LZ4 compressed program data.
type ProgLz4 struct {
	CompressedProg
}

// NewProgLz4 constructs a ProgLz4 tag.
func NewProgLz4(flashStartAddress, decompressedSize uint32, compressedData []byte) *ProgLz4 {
	return &ProgLz4{CompressedProg{
		FlashStartAddress: flashStartAddress,
		DecompressedSize:  decompressedSize,
		CompressedData:    bytesOrNil(compressedData),
	}}
}

func decodeProgLz4(_ TagHeader, payload []byte) (Tag, error) {
	prog, err := decodeCompressedProg(payload)
	if err != nil {
		return nil, fmt.Errorf("decode prog lz4: %w", err)
	}

	return &ProgLz4{prog}, nil
}

func (prog *ProgLz4) ID() ID     { return IDProgLz4 }
func (prog *ProgLz4) Kind() Kind { return KindProgLz4 }

func (prog *ProgLz4) String() string {
	return fmt.Sprintf("ProgLz4{address: 0x%08x, decompressed_size: %d, data: %d}", prog.FlashStartAddress, prog.DecompressedSize, len(prog.CompressedData))
}

// ProgLzma carries LZMA compressed program data.
type ProgLzma struct {
	CompressedProg
}

// NewProgLzma constructs a ProgLzma tag.
func NewProgLzma(flashStartAddress, decompressedSize uint32, compressedData []byte) *ProgLzma {
	return &ProgLzma{CompressedProg{
		FlashStartAddress: flashStartAddress,
		DecompressedSize:  decompressedSize,
		CompressedData:    bytesOrNil(compressedData),
	}}
}

func decodeProgLzma(_ TagHeader, payload []byte) (Tag, error) {
	prog, err := decodeCompressedProg(payload)
	if err != nil {
		return nil, fmt.Errorf("decode prog lzma: %w", err)
	}

	return &ProgLzma{prog}, nil
}

func (prog *ProgLzma) ID() ID     { return IDProgLzma }
func (prog *ProgLzma) Kind() Kind { return KindProgLzma }

func (prog *ProgLzma) String() string {
	return fmt.Sprintf("ProgLzma{address: 0x%08x, decompressed_size: %d, data: %d}", prog.FlashStartAddress, prog.DecompressedSize, len(prog.CompressedData))
}
