package image

import (
	"github.com/spf13/cobra"

	"github.com/KatelynHaworth/gbl-helper/gbl/container"
)

var (
	CreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an empty GBL image holding only a header and END tag",
		Args:  cobra.NoArgs,
		RunE:  runCreate,
	}

	createOutput *string
)

func init() {
	createOutput = CreateCmd.Flags().StringP("output", "o", "", "Location to write the image to")
	_ = CreateCmd.MarkFlagRequired("output")
}

func runCreate(cmd *cobra.Command, _ []string) error {
	image := container.New()
	if err := image.Create(); err != nil {
		return err
	}

	return saveImage(cmd.Context(), image, *createOutput, "")
}
