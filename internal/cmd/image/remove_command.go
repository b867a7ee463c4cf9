package image

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
)

var (
	RemoveCmd = &cobra.Command{
		Use:   "remove <image>",
		Short: "Remove a tag by index, or the first tag of a type",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}

	removeIndex  *int
	removeType   *string
	removeOutput *string
)

func init() {
	removeIndex = RemoveCmd.Flags().IntP("index", "i", 0, "Index of the tag to remove")
	removeType = RemoveCmd.Flags().StringP("type", "t", "", "Remove the first tag of this type")
	removeOutput = RemoveCmd.Flags().StringP("output", "o", "", "Location to write the image to (defaults to the input)")
	RemoveCmd.MarkFlagsMutuallyExclusive("index", "type")
}

func runRemove(cmd *cobra.Command, args []string) error {
	byIndex, byType := cmd.Flags().Changed("index"), cmd.Flags().Changed("type")
	if !byIndex && !byType {
		return errors.New("either --index or --type must be supplied")
	}

	image, err := loadImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if byIndex {
		err = image.RemoveAt(*removeIndex)
	} else {
		kind, ok := tags.KindByName(*removeType)
		if !ok {
			return fmt.Errorf("unknown tag type %q", *removeType)
		}

		err = image.Remove(kind)
	}

	if err != nil {
		return err
	}

	Logger.Info().Msg("Tag removed")
	return saveImage(cmd.Context(), image, args[0], *removeOutput)
}
