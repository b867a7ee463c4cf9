package image

import (
	"fmt"

	"github.com/spf13/cobra"

	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
)

var (
	SetCmd = &cobra.Command{
		Use:   "set <image>",
		Short: "Replace the tag found at an index",
		Args:  cobra.ExactArgs(1),
		RunE:  runSet,
	}

	setTag    *tagFlags
	setIndex  *int
	setOutput *string
)

func init() {
	setTag = newTagFlags(SetCmd)
	setIndex = SetCmd.Flags().IntP("index", "i", 0, "Index of the tag to replace")
	setOutput = SetCmd.Flags().StringP("output", "o", "", "Location to write the image to (defaults to the input)")
	_ = SetCmd.MarkFlagRequired("index")
}

func runSet(cmd *cobra.Command, args []string) error {
	image, err := loadImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	tag, err := setTag.build()
	if err != nil {
		return fmt.Errorf("build tag: %w", err)
	}

	if err = image.ReplaceAt(*setIndex, tag); err != nil {
		return err
	}

	Logger.Info().Int("index", *setIndex).Str("tag", tag.ID().String()).Msg("Tag replaced")
	return saveImage(cmd.Context(), image, args[0], *setOutput)
}
