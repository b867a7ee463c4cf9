package packer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KatelynHaworth/gbl-helper/config"
	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
	"github.com/KatelynHaworth/gbl-helper/pack"
)

var (
	PackCmd = &cobra.Command{
		Use:   "pack",
		Short: "Build every image described by a pack manifest",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	manifestFile *string
)

func init() {
	manifestFile = PackCmd.Flags().StringP("file", "f", "gbl-pack.yaml", "Pack manifest to build (.json, .yaml or .yml)")
}

func run(cmd *cobra.Command, _ []string) error {
	Logger.Info().Str("file", *manifestFile).Msg("Loading pack manifest")

	cfg, err := config.LoadConfigurationFromFile(*manifestFile, config.FormatForFile(*manifestFile))
	if err != nil {
		return fmt.Errorf("load pack manifest: %w", err)
	}

	wkrs, err := pack.Run(cmd.Context(), cfg, Storage, Logger)
	if err != nil {
		Logger.Error().Err(err).Msg("One or more pack workers failed")
		return err
	}

	for _, wkr := range wkrs {
		wLogger := wkr.Logger()
		wLogger.Info().Int("size", wkr.ImageSize()).Str("sha256", wkr.ImageHash()).Msg("Image packed")
	}

	Logger.Info().Int("images", len(wkrs)).Msg("Pack completed")
	return nil
}
