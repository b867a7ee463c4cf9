package tags

import "fmt"

// EraseProgLength is the size of the
// payload written for new EraseProg tags.
const EraseProgLength = 8

var (
	IDEraseProg = registerTagType(TagMetadata{
		IDValue: 0xfd0303fd,
		Name:    "ERASEPROG",
		Kind:    KindEraseProg,
		Decoder: decodeEraseProg,
	})
)

// EraseProg instructs the bootloader to
// erase the program area. New tags carry
// an 8 byte zero payload, decoded tags keep
// whatever payload was recorded.
type EraseProg struct {
	Data []byte
}

func NewEraseProg() *EraseProg {
	return &EraseProg{Data: make([]byte, EraseProgLength)}
}

func decodeEraseProg(_ TagHeader, payload []byte) (Tag, error) {
	return &EraseProg{Data: bytesOrNil(payload)}, nil
}

func (erase *EraseProg) ID() ID         { return IDEraseProg }
func (erase *EraseProg) Kind() Kind     { return KindEraseProg }
func (erase *EraseProg) Length() uint32 { return uint32(len(erase.Data)) }

func (erase *EraseProg) appendPayload(dst []byte) []byte {
	return append(dst, erase.Data...)
}

func (erase *EraseProg) String() string {
	return fmt.Sprintf("EraseProg{length: %d}", len(erase.Data))
}
