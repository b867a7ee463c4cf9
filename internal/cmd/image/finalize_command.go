package image

import (
	"github.com/spf13/cobra"
)

var (
	FinalizeCmd = &cobra.Command{
		Use:   "finalize <image>",
		Short: "Rebuild an image and recompute its END tag checksum",
		Args:  cobra.ExactArgs(1),
		RunE:  runFinalize,
	}

	finalizeOutput *string
)

func init() {
	finalizeOutput = FinalizeCmd.Flags().StringP("output", "o", "", "Location to write the image to (defaults to the input)")
}

func runFinalize(cmd *cobra.Command, args []string) error {
	image, err := loadImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return saveImage(cmd.Context(), image, args[0], *finalizeOutput)
}
