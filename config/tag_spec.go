package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

var (
	// ErrUnknownTagType is returned when a
	// TagSpec names a type that isn't in the
	// tag registry.
	ErrUnknownTagType = errors.New("unknown tag type")

	// ErrMissingTagID is returned when an
	// opaque TagSpec doesn't supply an ID.
	ErrMissingTagID = errors.New("opaque tag requires an id")
)

// TagSpec describes a tag by its type name
// and the field values for that type. Fields
// that don't apply to the type are ignored.
type TagSpec struct {
	Type string  `json:"type" yaml:"type"`
	ID   *uint32 `json:"id,omitempty" yaml:"id,omitempty"`

	Version           uint32 `json:"version,omitempty" yaml:"version,omitempty"`
	ImageType         uint32 `json:"image_type,omitempty" yaml:"image_type,omitempty"`
	Address           uint32 `json:"address,omitempty" yaml:"address,omitempty"`
	BootloaderVersion uint32 `json:"bootloader_version,omitempty" yaml:"bootloader_version,omitempty"`
	DecompressedSize  uint32 `json:"decompressed_size,omitempty" yaml:"decompressed_size,omitempty"`

	AppType      uint32 `json:"app_type,omitempty" yaml:"app_type,omitempty"`
	Capabilities uint32 `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	ProductID    uint8  `json:"product_id,omitempty" yaml:"product_id,omitempty"`

	MsgLen uint32 `json:"msg_len,omitempty" yaml:"msg_len,omitempty"`
	Nonce  uint8  `json:"nonce,omitempty" yaml:"nonce,omitempty"`

	R             uint8 `json:"r,omitempty" yaml:"r,omitempty"`
	S             uint8 `json:"s,omitempty" yaml:"s,omitempty"`
	StructVersion uint8 `json:"struct_version,omitempty" yaml:"struct_version,omitempty"`
	Flags         uint8 `json:"flags,omitempty" yaml:"flags,omitempty"`
	Key           uint8 `json:"key,omitempty" yaml:"key,omitempty"`
	Signature     uint8 `json:"signature,omitempty" yaml:"signature,omitempty"`
	Statement     uint8 `json:"statement,omitempty" yaml:"statement,omitempty"`

	// Data specifies the payload bytes
	// as a hex string.
	Data string `json:"data,omitempty" yaml:"data,omitempty"`

	// DataFile specifies a file to read the
	// payload bytes from, or ENV:<name> to
	// read them base64 encoded from the
	// environment.
	DataFile string `json:"data_file,omitempty" yaml:"data_file,omitempty"`
}

// Kind resolves the Type of this
// TagSpec against the tag registry.
func (spec *TagSpec) Kind() (tags.Kind, error) {
	kind, ok := tags.KindByName(spec.Type)
	if !ok {
		return tags.KindOpaque, fmt.Errorf("%q: %w", spec.Type, ErrUnknownTagType)
	}

	return kind, nil
}

// Build constructs the tag described by
// this TagSpec. Relative DataFile paths are
// resolved against baseDir.
func (spec *TagSpec) Build(baseDir string) (tags.Tag, error) {
	kind, err := spec.Kind()
	if err != nil {
		return nil, err
	}

	data, err := spec.payload(baseDir)
	if err != nil {
		return nil, fmt.Errorf("load %s payload: %w", kind, err)
	}

	switch kind {
	case tags.KindHeader:
		version := spec.Version
		if version == 0 {
			version = tags.DefaultHeaderVersion
		}

		return tags.NewHeader(version, spec.ImageType), nil

	case tags.KindBootloader:
		return tags.NewBootloader(spec.BootloaderVersion, spec.Address, data), nil

	case tags.KindApplication:
		return tags.NewApplication(spec.AppType, spec.Version, spec.Capabilities, spec.ProductID, data), nil

	case tags.KindMetadata:
		return tags.NewMetadata(data), nil

	case tags.KindProg:
		return tags.NewProg(spec.Address, data), nil

	case tags.KindProgLz4:
		return tags.NewProgLz4(spec.Address, spec.DecompressedSize, data), nil

	case tags.KindProgLzma:
		return tags.NewProgLzma(spec.Address, spec.DecompressedSize, data), nil

	case tags.KindEraseProg:
		return tags.NewEraseProg(), nil

	case tags.KindSeUpgrade:
		return tags.NewSeUpgrade(spec.Version, data), nil

	case tags.KindEnd:
		return tags.NewEnd(0), nil

	case tags.KindEncryptionData:
		return tags.NewEncryptionData(data), nil

	case tags.KindEncryptionInit:
		return tags.NewEncryptionInit(spec.MsgLen, spec.Nonce), nil

	case tags.KindSignatureEcdsaP256:
		return tags.NewSignatureEcdsaP256(spec.R, spec.S), nil

	case tags.KindCertificateEcdsaP256:
		return tags.NewCertificateEcdsaP256(spec.StructVersion, spec.Flags, spec.Key, spec.Version, spec.Signature), nil

	case tags.KindVersionDependency:
		return tags.NewVersionDependency(tags.ImageType(spec.ImageType), spec.Statement, spec.Version), nil

	case tags.KindOpaque:
		if spec.ID == nil {
			return nil, ErrMissingTagID
		}

		if err := tags.CheckOpaqueID(tags.ID(*spec.ID)); err != nil {
			return nil, err
		}

		return tags.NewOpaque(tags.ID(*spec.ID), data), nil

	default:
		return nil, fmt.Errorf("%s: %w", kind, ErrUnknownTagType)
	}
}

func (spec *TagSpec) payload(baseDir string) ([]byte, error) {
	switch {
	case len(spec.Data) != 0 && len(spec.DataFile) != 0:
		return nil, errors.New("data and data_file are mutually exclusive")

	case len(spec.Data) != 0:
		return DecodeHex(spec.Data)

	case len(spec.DataFile) == 0:
		return nil, nil
	}

	if envName, found := strings.CutPrefix(spec.DataFile, "ENV:"); found {
		data, err := base64.StdEncoding.DecodeString(os.Getenv(envName))
		if err != nil {
			return nil, fmt.Errorf("decode data from environment variable: %w", err)
		}

		return data, nil
	}

	path := spec.DataFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	return data, nil
}

// DecodeHex decodes a hex string, an
// optional 0x prefix and any whitespace
// or colon separators are ignored.
func DecodeHex(value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	value = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		default:
			return r
		}
	}, value)

	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode hex data: %w", err)
	}

	return data, nil
}
