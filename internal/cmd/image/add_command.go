package image

import (
	"fmt"

	"github.com/spf13/cobra"

	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
)

var (
	AddCmd = &cobra.Command{
		Use:   "add <image>",
		Short: "Add a tag to an image, before the END tag or at an index",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}

	addTag    *tagFlags
	addIndex  *int
	addOutput *string
)

func init() {
	addTag = newTagFlags(AddCmd)
	addIndex = AddCmd.Flags().IntP("index", "i", -1, "Insert the tag at this index instead of before the END tag")
	addOutput = AddCmd.Flags().StringP("output", "o", "", "Location to write the image to (defaults to the input)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	image, err := loadImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	tag, err := addTag.build()
	if err != nil {
		return fmt.Errorf("build tag: %w", err)
	}

	if cmd.Flags().Changed("index") {
		err = image.InsertAt(*addIndex, tag)
	} else {
		err = image.Add(tag)
	}

	if err != nil {
		return err
	}

	Logger.Info().Str("tag", tag.ID().String()).Uint32("length", tag.Length()).Msg("Tag added")
	return saveImage(cmd.Context(), image, args[0], *addOutput)
}
