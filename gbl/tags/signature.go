package tags

import "fmt"

const (
	signatureLength   = 2
	certificateLength = 8
)

var (
	IDSignatureEcdsaP256 = registerTagType(TagMetadata{
		IDValue:   0xf70a0af7,
		Name:      "SIGNATURE_ECDSA_P256",
		Kind:      KindSignatureEcdsaP256,
		MinLength: signatureLength,
		Decoder:   decodeSignatureEcdsaP256,
	})

	IDCertificateEcdsaP256 = registerTagType(TagMetadata{
		IDValue:   0xf30b0bf3,
		Name:      "CERTIFICATE_ECDSA_P256",
		Kind:      KindCertificateEcdsaP256,
		MinLength: certificateLength,
		Decoder:   decodeCertificateEcdsaP256,
	})
)

// SignatureEcdsaP256 records the signature
// fields of a signed image. The values are
// stored and replayed, never verified.
type SignatureEcdsaP256 struct {
	R uint8
	S uint8

	trailing []byte
}

func NewSignatureEcdsaP256(r, s uint8) *SignatureEcdsaP256 {
	return &SignatureEcdsaP256{R: r, S: s}
}

func decodeSignatureEcdsaP256(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	sig := &SignatureEcdsaP256{
		R:        r.u8(),
		S:        r.u8(),
		trailing: r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode signature: %w", r.err)
	}

	return sig, nil
}

func (sig *SignatureEcdsaP256) ID() ID     { return IDSignatureEcdsaP256 }
func (sig *SignatureEcdsaP256) Kind() Kind { return KindSignatureEcdsaP256 }

func (sig *SignatureEcdsaP256) Length() uint32 {
	return signatureLength + uint32(len(sig.trailing))
}

func (sig *SignatureEcdsaP256) appendPayload(dst []byte) []byte {
	dst = append(dst, sig.R, sig.S)
	return append(dst, sig.trailing...)
}

func (sig *SignatureEcdsaP256) String() string {
	return fmt.Sprintf("SignatureEcdsaP256{r: %d, s: %d}", sig.R, sig.S)
}

// CertificateEcdsaP256 records the
// certificate fields of a signed image.
type CertificateEcdsaP256 struct {
	StructVersion uint8
	Flags         uint8
	Key           uint8
	Version       uint32
	Signature     uint8

	trailing []byte
}

// NewCertificateEcdsaP256 constructs a
// CertificateEcdsaP256 tag.
func NewCertificateEcdsaP256(structVersion, flags, key uint8, version uint32, signature uint8) *CertificateEcdsaP256 {
	return &CertificateEcdsaP256{
		StructVersion: structVersion,
		Flags:         flags,
		Key:           key,
		Version:       version,
		Signature:     signature,
	}
}

func decodeCertificateEcdsaP256(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	cert := &CertificateEcdsaP256{
		StructVersion: r.u8(),
		Flags:         r.u8(),
		Key:           r.u8(),
		Version:       r.u32(),
		Signature:     r.u8(),
		trailing:      r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode certificate: %w", r.err)
	}

	return cert, nil
}

func (cert *CertificateEcdsaP256) ID() ID     { return IDCertificateEcdsaP256 }
func (cert *CertificateEcdsaP256) Kind() Kind { return KindCertificateEcdsaP256 }

func (cert *CertificateEcdsaP256) Length() uint32 {
	return certificateLength + uint32(len(cert.trailing))
}

func (cert *CertificateEcdsaP256) appendPayload(dst []byte) []byte {
	dst = append(dst, cert.StructVersion, cert.Flags, cert.Key)
	dst = byteOrder.AppendUint32(dst, cert.Version)
	dst = append(dst, cert.Signature)
	return append(dst, cert.trailing...)
}

func (cert *CertificateEcdsaP256) String() string {
	return fmt.Sprintf("CertificateEcdsaP256{struct_version: %d, flags: %d, key: %d, version: %d, signature: %d}",
		cert.StructVersion, cert.Flags, cert.Key, cert.Version, cert.Signature)
}
