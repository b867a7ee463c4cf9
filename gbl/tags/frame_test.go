package tags

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(id uint32, payload ...byte) []byte {
	buf := byteOrder.AppendUint32(nil, id)
	buf = byteOrder.AppendUint32(buf, uint32(len(payload)))
	return append(buf, payload...)
}

func TestDecodeFrame(t *testing.T) {
	buf := append(frame(0xfe0101fe, 0x00, 0x00, 0x00, 0x08, 0xaa), 0xff)

	hdr, payload, err := DecodeFrame(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, TagHeader{ID: IDProg, Length: 5}, hdr)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x08, 0xaa}, payload)

	_, _, err = DecodeFrame(buf, len(buf)-1)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, _, err = DecodeFrame(buf, -1)
	assert.ErrorIs(t, err, ErrInvalidOffset)
}

func TestDecodeFrame_Overrun(t *testing.T) {
	buf := frame(0xfe0101fe, 0x01, 0x02, 0x03, 0x04)
	byteOrder.PutUint32(buf[4:], 0xffffffff)

	hdr, _, err := DecodeFrame(buf, 0)
	assert.ErrorIs(t, err, ErrInvalidTagLength)
	assert.Equal(t, IDProg, hdr.ID)
}

func TestDecodeTag_Layouts(t *testing.T) {
	testCases := []struct {
		name  string
		frame []byte
		want  Tag
	}{
		{
			name:  "header",
			frame: frame(0x03a617eb, 0x00, 0x00, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00),
			want:  NewHeader(DefaultHeaderVersion, 0),
		},
		{
			name:  "bootloader",
			frame: frame(0xf50909f5, 0x02, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0xab, 0xcd),
			want:  NewBootloader(2, 0x4000, []byte{0xab, 0xcd}),
		},
		{
			name: "application",
			frame: frame(0xf40a0af4,
				0x01, 0x00, 0x00, 0x00,
				0x04, 0x03, 0x02, 0x01,
				0xff, 0xff, 0xff, 0xff,
				42),
			want: NewApplication(1, 0x01020304, 0xffffffff, 42, nil),
		},
		{
			name:  "metadata",
			frame: frame(0xf60808f6, 'm', 'e', 't', 'a'),
			want:  NewMetadata([]byte("meta")),
		},
		{
			name:  "prog",
			frame: frame(0xfe0101fe, 0x00, 0x00, 0x00, 0x08, 0x00, 0x01, 0x02, 0x03),
			want:  NewProg(0x08000000, []byte{0x00, 0x01, 0x02, 0x03}),
		},
		{
			name:  "prog lz4",
			frame: frame(0xfd0505fd, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x11, 0x22),
			want:  NewProgLz4(0x1000, 0x100, []byte{0x11, 0x22}),
		},
		{
			name:  "prog lzma",
			frame: frame(0xfd0707fd, 0x00, 0x10, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00),
			want:  NewProgLzma(0x1000, 0x100, nil),
		},
		{
			name:  "erase prog",
			frame: frame(0xfd0303fd, 0, 0, 0, 0, 0, 0, 0, 0),
			want:  NewEraseProg(),
		},
		{
			name:  "se upgrade",
			frame: frame(0x5ea617eb, 0x02, 0x00, 0x00, 0x00, 0x07, 0x00, 0x00, 0x00, 0xbe, 0xef),
			want:  NewSeUpgrade(7, []byte{0xbe, 0xef}),
		},
		{
			name:  "end",
			frame: frame(0xfc0404fc, 0x26, 0x39, 0xf4, 0xcb),
			want:  NewEnd(0xcbf43926),
		},
		{
			name:  "encryption data",
			frame: frame(0xf90707f9, 0x01, 0x02),
			want:  NewEncryptionData([]byte{0x01, 0x02}),
		},
		{
			name:  "encryption init",
			frame: frame(0xfa0606fa, 0x10, 0x00, 0x00, 0x00, 0x09),
			want:  NewEncryptionInit(16, 9),
		},
		{
			name:  "signature",
			frame: frame(0xf70a0af7, 0x0a, 0x0b),
			want:  NewSignatureEcdsaP256(0x0a, 0x0b),
		},
		{
			name:  "certificate",
			frame: frame(0xf30b0bf3, 1, 2, 3, 0x04, 0x00, 0x00, 0x00, 5),
			want:  NewCertificateEcdsaP256(1, 2, 3, 4, 5),
		},
		{
			name:  "version dependency",
			frame: frame(0x76a617eb, 1, 2, 0x00, 0x00, 0x04, 0x03, 0x02, 0x01),
			want:  NewVersionDependency(ImageTypeApplication, 2, 0x01020304),
		},
		{
			name:  "opaque",
			frame: frame(0xdeadbeef, 0x01, 0x02, 0x03),
			want:  NewOpaque(0xdeadbeef, []byte{0x01, 0x02, 0x03}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hdr, payload, err := DecodeFrame(tc.frame, 0)
			require.NoError(t, err)

			tag, err := DecodeTag(hdr, payload)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tag)
			assert.Equal(t, hdr, HeaderOf(tc.want))
			assert.Equal(t, tc.frame, EncodeFrame(tag))
			assert.Equal(t, tc.frame, EncodeFrame(tc.want))
			assert.Equal(t, len(tc.frame), FrameSize(tag))
		})
	}
}

func TestDecodeTag_TrailingBytesPreserved(t *testing.T) {
	raw := frame(0xfc0404fc, 0x01, 0x02, 0x03, 0x04, 0xaa, 0xbb)

	hdr, payload, err := DecodeFrame(raw, 0)
	require.NoError(t, err)

	tag, err := DecodeTag(hdr, payload)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), tag.(*End).CRC)
	assert.Equal(t, uint32(6), tag.Length())
	assert.Equal(t, raw, EncodeFrame(tag))
}

func TestDecodeTag_ShortPayload(t *testing.T) {
	testCases := []struct {
		name  string
		frame []byte
	}{
		{"header", frame(0x03a617eb, 0x00, 0x00, 0x00, 0x03)},
		{"application", frame(0xf40a0af4, 0x01, 0x00, 0x00, 0x00)},
		{"prog", frame(0xfe0101fe, 0x01)},
		{"end", frame(0xfc0404fc)},
		{"certificate", frame(0xf30b0bf3, 1, 2, 3)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hdr, payload, err := DecodeFrame(tc.frame, 0)
			require.NoError(t, err)

			_, err = DecodeTag(hdr, payload)
			assert.ErrorIs(t, err, ErrInvalidTagLength)
		})
	}
}

func TestDecodeTag_LengthMismatch(t *testing.T) {
	_, err := DecodeTag(TagHeader{ID: IDMetadata, Length: 4}, []byte{0x01})
	assert.ErrorIs(t, err, ErrInvalidTagLength)
}

func TestOpaque_RoundTrip(t *testing.T) {
	raw := frame(0x11223344, []byte("forward compatible payload")...)

	hdr, payload, err := DecodeFrame(raw, 0)
	require.NoError(t, err)

	tag, err := DecodeTag(hdr, payload)
	require.NoError(t, err)
	assert.Equal(t, KindOpaque, tag.Kind())
	assert.Equal(t, ID(0x11223344), tag.ID())
	assert.Equal(t, raw, EncodeFrame(tag))
	assert.Contains(t, tag.(*Opaque).String(), "0x11223344")
}

func TestWriteFrame(t *testing.T) {
	prog := NewProg(0x08000000, []byte{0x00, 0x01, 0x02, 0x03})

	var buf bytes.Buffer
	n, err := WriteFrame(&buf, prog)
	require.NoError(t, err)
	assert.Equal(t, int64(16), n)
	assert.Equal(t, EncodeFrame(prog), buf.Bytes())

	var hdr TagHeader
	_, err = hdr.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, TagHeader{ID: IDProg, Length: 8}, hdr)
	assert.Equal(t, uint32(0x08000000), byteOrder.Uint32(Payload(prog)))
}

func TestSeUpgrade_BlobSize(t *testing.T) {
	upgrade := NewSeUpgrade(1, []byte{1, 2, 3})
	assert.Equal(t, uint32(3), upgrade.BlobSize)
	assert.Equal(t, uint32(11), upgrade.Length())
}

func TestParseImageType(t *testing.T) {
	imageType, ok := ParseImageType("bootloader")
	assert.True(t, ok)
	assert.Equal(t, ImageTypeBootloader, imageType)
	assert.Equal(t, "SE", ImageTypeSe.String())

	_, ok = ParseImageType("nope")
	assert.False(t, ok)
}
