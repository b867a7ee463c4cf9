package image

import (
	"github.com/spf13/cobra"

	. "github.com/KatelynHaworth/gbl-helper/internal/cmd/globals"
)

var (
	InfoCmd = &cobra.Command{
		Use:   "info <image>",
		Short: "List the tags of an image and check its END tag checksum",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	infoFormat *string
)

func init() {
	infoFormat = InfoCmd.Flags().StringP("format", "F", string(ReportFormatCompact), "Output format: compact, full, json, yaml or plist")
}

func runInfo(cmd *cobra.Command, args []string) error {
	result, size, err := parseImage(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report := NewReport(result, size)
	if !report.CRCValid {
		Logger.Warn().Str("status", report.CRCStatus).Msg("END tag checksum doesn't match the image")
	}

	return report.Write(cmd.OutOrStdout(), ReportFormat(*infoFormat), result.Tags)
}
