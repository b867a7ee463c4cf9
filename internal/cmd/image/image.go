package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KatelynHaworth/gbl-helper/config"
	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/container"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
)

// loadImage reads and parses the image at
// location into a TagContainer, the END tag
// is dropped and recomputed when saved.
func loadImage(ctx context.Context, location string) (*container.TagContainer, error) {
	result, _, err := parseImage(ctx, location)
	if err != nil {
		return nil, err
	}

	image := container.New()
	if err = image.Load(result.Tags); err != nil {
		return nil, fmt.Errorf("load parsed tags: %w", err)
	}

	return image, nil
}

// parseImage reads and parses the image at
// location, warning about anything the scan
// had to skip. The size of the raw image is
// returned alongside the result.
func parseImage(ctx context.Context, location string) (*gbl.ParseResult, int, error) {
	data, err := Storage.Load(ctx, location)
	if err != nil {
		return nil, 0, err
	}

	result, err := gbl.ParseBytes(data)
	if err != nil {
		return nil, len(data), fmt.Errorf("parse image: %w", err)
	}

	if result.Stopped != nil {
		Logger.Warn().
			Err(result.Stopped).
			Int("trailing", result.Trailing(len(data))).
			Msg("Ignoring bytes after the last complete tag")
	}

	return result, len(data), nil
}

// saveImage encodes image and stores it
// to output, or back to input when no
// output was supplied.
func saveImage(ctx context.Context, image *container.TagContainer, input, output string) error {
	if len(output) == 0 {
		output = input
	}

	data, err := image.BuildToBytes()
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}

	if err = Storage.Store(ctx, output, data); err != nil {
		return err
	}

	Logger.Info().Str("output", output).Int("size", len(data)).Msg("Image saved")
	return nil
}

// tagFlags binds the fields of a TagSpec
// to command line flags.
type tagFlags struct {
	spec config.TagSpec
	id   uint32
	set  *pflag.FlagSet
}

func newTagFlags(cmd *cobra.Command) *tagFlags {
	flags := &tagFlags{set: cmd.Flags()}
	fs := flags.set

	fs.StringVarP(&flags.spec.Type, "type", "t", "", "Tag type, e.g. application, prog, prog_lz4 or opaque")
	fs.Uint32Var(&flags.id, "id", 0, "Wire identifier for opaque tags")
	fs.Uint32Var(&flags.spec.Version, "version", 0, "Version field (header, application, se_upgrade, certificate, version_dependency)")
	fs.Uint32Var(&flags.spec.ImageType, "image-type", 0, "Image type (header, version_dependency)")
	fs.Uint32Var(&flags.spec.Address, "address", 0, "Flash address (bootloader, prog, prog_lz4, prog_lzma)")
	fs.Uint32Var(&flags.spec.BootloaderVersion, "bootloader-version", 0, "Bootloader version (bootloader)")
	fs.Uint32Var(&flags.spec.DecompressedSize, "decompressed-size", 0, "Decompressed size (prog_lz4, prog_lzma)")
	fs.Uint32Var(&flags.spec.AppType, "app-type", 0, "Application type (application)")
	fs.Uint32Var(&flags.spec.Capabilities, "capabilities", 0, "Capabilities (application)")
	fs.Uint8Var(&flags.spec.ProductID, "product-id", 0, "Product ID (application)")
	fs.Uint32Var(&flags.spec.MsgLen, "msg-len", 0, "Message length (encryption_init)")
	fs.Uint8Var(&flags.spec.Nonce, "nonce", 0, "Nonce (encryption_init)")
	fs.Uint8Var(&flags.spec.R, "r", 0, "R value (signature_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.S, "s", 0, "S value (signature_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.StructVersion, "struct-version", 0, "Struct version (certificate_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.Flags, "cert-flags", 0, "Flags (certificate_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.Key, "key", 0, "Key (certificate_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.Signature, "signature", 0, "Signature (certificate_ecdsa_p256)")
	fs.Uint8Var(&flags.spec.Statement, "statement", 0, "Statement (version_dependency)")
	fs.StringVar(&flags.spec.Data, "data", "", "Payload bytes as hex")
	fs.StringVar(&flags.spec.DataFile, "data-file", "", "File to read the payload bytes from")

	return flags
}

// build constructs the tag described by the
// flags, failing when no type was given.
func (flags *tagFlags) build() (tags.Tag, error) {
	if len(flags.spec.Type) == 0 {
		return nil, errors.New("a tag type must be supplied with --type")
	}

	spec := flags.spec
	if flags.set.Changed("id") {
		spec.ID = &flags.id
	}

	return spec.Build(".")
}
