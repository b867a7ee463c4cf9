package tags

import (
	"fmt"
	"strings"
)

const versionDependencyLength = 8

// ImageType identifies the image a
// VersionDependency applies to.
type ImageType uint8

const (
	ImageTypeApplication ImageType = iota + 1
	ImageTypeBootloader
	ImageTypeSe
)

var imageTypeNames = map[ImageType]string{
	ImageTypeApplication: "APPLICATION",
	ImageTypeBootloader:  "BOOTLOADER",
	ImageTypeSe:          "SE",
}

// ParseImageType looks up an ImageType by
// its name, ignoring case.
func ParseImageType(name string) (ImageType, bool) {
	for imageType, typeName := range imageTypeNames {
		if strings.EqualFold(typeName, name) {
			return imageType, true
		}
	}

	return 0, false
}

func (imageType ImageType) String() string {
	if name, ok := imageTypeNames[imageType]; ok {
		return name
	}

	return fmt.Sprintf("ImageType(%d)", uint8(imageType))
}

var (
	IDVersionDependency = registerTagType(TagMetadata{
		IDValue:   0x76a617eb,
		Name:      "VERSION_DEPENDENCY",
		Kind:      KindVersionDependency,
		MinLength: versionDependencyLength,
		Decoder:   decodeVersionDependency,
	})
)

// VersionDependency declares the version
// of another image that this image requires.
type VersionDependency struct {
	ImageType ImageType
	Statement uint8
	Reserved  uint16
	Version   uint32

	trailing []byte
}

// NewVersionDependency constructs a
// VersionDependency tag with a zero
// reserved field.
func NewVersionDependency(imageType ImageType, statement uint8, version uint32) *VersionDependency {
	return &VersionDependency{
		ImageType: imageType,
		Statement: statement,
		Version:   version,
	}
}

func decodeVersionDependency(_ TagHeader, payload []byte) (Tag, error) {
	r := &payloadReader{buf: payload}
	dep := &VersionDependency{
		ImageType: ImageType(r.u8()),
		Statement: r.u8(),
		Reserved:  r.u16(),
		Version:   r.u32(),
		trailing:  r.rest(),
	}

	if r.err != nil {
		return nil, fmt.Errorf("decode version dependency: %w", r.err)
	}

	return dep, nil
}

func (dep *VersionDependency) ID() ID     { return IDVersionDependency }
func (dep *VersionDependency) Kind() Kind { return KindVersionDependency }

func (dep *VersionDependency) Length() uint32 {
	return versionDependencyLength + uint32(len(dep.trailing))
}

func (dep *VersionDependency) appendPayload(dst []byte) []byte {
	dst = append(dst, uint8(dep.ImageType), dep.Statement)
	dst = byteOrder.AppendUint16(dst, dep.Reserved)
	dst = byteOrder.AppendUint32(dst, dep.Version)
	return append(dst, dep.trailing...)
}

func (dep *VersionDependency) String() string {
	return fmt.Sprintf("VersionDependency{image_type: %s, statement: %d, version: 0x%08x}", dep.ImageType, dep.Statement, dep.Version)
}
