package tags

import "fmt"

const encryptionInitLength = 5

var (
	IDEncryptionData = registerTagType(TagMetadata{
		IDValue: 0xf90707f9,
		Name:    "ENCRYPTION_DATA",
		Kind:    KindEncryptionData,
		Decoder: decodeEncryptionData,
	})

	IDEncryptionInit = registerTagType(TagMetadata{
		IDValue:   0xfa0606fa,
		Name:      "ENCRYPTION_INIT",
		Kind:      KindEncryptionInit,
		MinLength: encryptionInitLength,
		Decoder:   decodeEncryptionInit,
	})
)

// EncryptionData carries encrypted
// program data verbatim.
type EncryptionData struct {
	Data []byte
}

func NewEncryptionData(data []byte) *EncryptionData {
	return &EncryptionData{Data: bytesOrNil(data)}
}

func decodeEncryptionData(_ TagHeader, payload []byte) (Tag, error) {
	return &EncryptionData{Data: bytesOrNil(payload)}, nil
}

func (enc *EncryptionData) ID() ID         { return IDEncryptionData }
func (enc *EncryptionData) Kind() Kind     { return KindEncryptionData }
func (enc *EncryptionData) Length() uint32 { return uint32(len(enc.Data)) }

func (enc *EncryptionData) appendPayload(dst []byte) []byte {
	return append(dst, enc.Data...)
}

func (enc *EncryptionData) String() string {
	return fmt.Sprintf("EncryptionData{length: %d}", len(enc.Data))
}

// EncryptionInit describes the encrypted
// message that follows in the image.
type EncryptionInit struct {
	MsgLen uint32
	Nonce  uint8

	trailing []byte
}

func NewEncryptionInit(msgLen uint32, nonce uint8) *EncryptionInit {
	return &EncryptionInit{MsgLen: msgLen, Nonce: nonce}
}

func decodeEncryptionInit(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	encInit := &EncryptionInit{
		MsgLen:   r.u32(),
		Nonce:    r.u8(),
		trailing: r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode encryption init: %w", r.err)
	}

	return encInit, nil
}

func (encInit *EncryptionInit) ID() ID     { return IDEncryptionInit }
func (encInit *EncryptionInit) Kind() Kind { return KindEncryptionInit }

func (encInit *EncryptionInit) Length() uint32 {
	return encryptionInitLength + uint32(len(encInit.trailing))
}

func (encInit *EncryptionInit) appendPayload(dst []byte) []byte {
	dst = byteOrder.AppendUint32(dst, encInit.MsgLen)
	dst = append(dst, encInit.Nonce)
	return append(dst, encInit.trailing...)
}

func (encInit *EncryptionInit) String() string {
	return fmt.Sprintf("EncryptionInit{msg_len: %d, nonce: %d}", encInit.MsgLen, encInit.Nonce)
}
