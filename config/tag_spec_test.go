package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

func TestTagSpec_Build(t *testing.T) {
	id := uint32(0xdeadbeef)
	testCases := []struct {
		name string
		spec TagSpec
		want tags.Tag
	}{
		{
			name: "header defaults",
			spec: TagSpec{Type: "header_v3"},
			want: tags.NewHeader(tags.DefaultHeaderVersion, 0),
		},
		{
			name: "application",
			spec: TagSpec{Type: "application", AppType: 1, Version: 0x01020304, Capabilities: 0xffffffff, ProductID: 42},
			want: tags.NewApplication(1, 0x01020304, 0xffffffff, 42, nil),
		},
		{
			name: "prog",
			spec: TagSpec{Type: "prog", Address: 0x08000000, Data: "00010203"},
			want: tags.NewProg(0x08000000, []byte{0, 1, 2, 3}),
		},
		{
			name: "prog lzma",
			spec: TagSpec{Type: "prog_lzma", Address: 0x1000, DecompressedSize: 64, Data: "aa:bb"},
			want: tags.NewProgLzma(0x1000, 64, []byte{0xaa, 0xbb}),
		},
		{
			name: "erase prog",
			spec: TagSpec{Type: "eraseprog"},
			want: tags.NewEraseProg(),
		},
		{
			name: "se upgrade",
			spec: TagSpec{Type: "se_upgrade", Version: 5, Data: "0102"},
			want: tags.NewSeUpgrade(5, []byte{1, 2}),
		},
		{
			name: "encryption init",
			spec: TagSpec{Type: "encryption_init", MsgLen: 32, Nonce: 7},
			want: tags.NewEncryptionInit(32, 7),
		},
		{
			name: "certificate",
			spec: TagSpec{Type: "certificate_ecdsa_p256", StructVersion: 1, Flags: 2, Key: 3, Version: 4, Signature: 5},
			want: tags.NewCertificateEcdsaP256(1, 2, 3, 4, 5),
		},
		{
			name: "version dependency",
			spec: TagSpec{Type: "version_dependency", ImageType: 2, Statement: 1, Version: 0x02000000},
			want: tags.NewVersionDependency(tags.ImageTypeBootloader, 1, 0x02000000),
		},
		{
			name: "opaque",
			spec: TagSpec{Type: "opaque", ID: &id, Data: "ff"},
			want: tags.NewOpaque(0xdeadbeef, []byte{0xff}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tag, err := tc.spec.Build(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tc.want, tag)
		})
	}
}

func TestTagSpec_Build_DataFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meta.bin", "hello")

	tag, err := (&TagSpec{Type: "metadata", DataFile: "meta.bin"}).Build(dir)
	require.NoError(t, err)
	assert.Equal(t, tags.NewMetadata([]byte("hello")), tag)

	t.Setenv("GBL_TEST_PAYLOAD", base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))
	tag, err = (&TagSpec{Type: "encryption_data", DataFile: "ENV:GBL_TEST_PAYLOAD"}).Build(dir)
	require.NoError(t, err)
	assert.Equal(t, tags.NewEncryptionData([]byte{1, 2, 3}), tag)

	_, err = (&TagSpec{Type: "metadata", DataFile: "missing.bin"}).Build(dir)
	assert.Error(t, err)

	_, err = (&TagSpec{Type: "metadata", Data: "00", DataFile: "meta.bin"}).Build(dir)
	assert.Error(t, err)
}

func TestTagSpec_Build_Errors(t *testing.T) {
	_, err := (&TagSpec{Type: "nope"}).Build("")
	assert.ErrorIs(t, err, ErrUnknownTagType)

	_, err = (&TagSpec{Type: "opaque"}).Build("")
	assert.ErrorIs(t, err, ErrMissingTagID)

	endID := uint32(tags.IDEnd)
	_, err = (&TagSpec{Type: "opaque", ID: &endID, Data: "00000000"}).Build("")
	assert.ErrorIs(t, err, tags.ErrRegisteredID)

	_, err = (&TagSpec{Type: "metadata", Data: "zz"}).Build("")
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	data, err := DecodeHex("0xDE AD:be\tef")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, data)

	data, err = DecodeHex("")
	require.NoError(t, err)
	assert.Empty(t, data)
}
