package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"

	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
	"github.com/KatelynHaworth/gbl-helper/internal/cmd/image"
	"github.com/KatelynHaworth/gbl-helper/internal/cmd/packer"
	"github.com/spf13/cobra"
)

var (
	rootCmd = cobra.Command{
		Use:               "gbl-helper",
		Version:           "devel",
		Short:             "Create, inspect, edit and pack GBL firmware images",
		SilenceUsage:      true,
		PersistentPreRunE: preRun,
	}

	verbose *bool
)

func init() {
	if buildInfo, ok := debug.ReadBuildInfo(); ok && len(buildInfo.Main.Version) > 0 {
		rootCmd.Version = buildInfo.Main.Version
	}

	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables logging of debug level logs by the utility")

	rootCmd.AddCommand(
		image.CreateCmd,
		image.InfoCmd,
		image.AddCmd,
		image.SetCmd,
		image.RemoveCmd,
		image.FinalizeCmd,
		packer.PackCmd,
	)
}

func preRun(_ *cobra.Command, _ []string) error {
	SetVerbose(*verbose)
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		Logger.Fatal().Err(err).Msg("Utility encountered a fatal error")
	}
}
