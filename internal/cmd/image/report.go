package image

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/kr/pretty"
	"gopkg.in/yaml.v2"
	"howett.net/plist"

	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

// ReportFormat selects how the
// info command prints an image.
type ReportFormat string

const (
	ReportFormatCompact ReportFormat = "compact"
	ReportFormatFull    ReportFormat = "full"
	ReportFormatJSON    ReportFormat = "json"
	ReportFormatYAML    ReportFormat = "yaml"
	ReportFormatPlist   ReportFormat = "plist"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

// Report is the structured
// listing of a parsed image.
type Report struct {
	Size      int         `json:"size" yaml:"size" plist:"size"`
	Trailing  int         `json:"trailing_bytes" yaml:"trailing_bytes" plist:"trailing-bytes"`
	CRCValid  bool        `json:"crc_valid" yaml:"crc_valid" plist:"crc-valid"`
	CRCStatus string      `json:"crc_status" yaml:"crc_status" plist:"crc-status"`
	Tags      []TagReport `json:"tags" yaml:"tags" plist:"tags"`
}

type TagReport struct {
	Index   int    `json:"index" yaml:"index" plist:"index"`
	Name    string `json:"name" yaml:"name" plist:"name"`
	ID      string `json:"id" yaml:"id" plist:"id"`
	Length  uint32 `json:"length" yaml:"length" plist:"length"`
	Summary string `json:"summary" yaml:"summary" plist:"summary"`
	Payload string `json:"payload" yaml:"payload" plist:"payload"`
}

// NewReport describes the tags decoded
// from an image of size bytes.
func NewReport(result *gbl.ParseResult, size int) *Report {
	report := &Report{
		Size:      size,
		Trailing:  result.Trailing(size),
		CRCValid:  true,
		CRCStatus: "valid",
		Tags:      make([]TagReport, len(result.Tags)),
	}

	if err := gbl.VerifyEndTag(result.Tags); err != nil {
		report.CRCValid = false
		report.CRCStatus = err.Error()
	}

	for i, tag := range result.Tags {
		report.Tags[i] = TagReport{
			Index:   i,
			Name:    tag.Kind().String(),
			ID:      fmt.Sprintf("0x%08x", uint32(tag.ID())),
			Length:  tag.Length(),
			Summary: fmt.Sprint(tag),
			Payload: hex.EncodeToString(tags.Payload(tag)),
		}
	}

	return report
}

// Write prints the report to w
// in the requested format.
func (report *Report) Write(w io.Writer, format ReportFormat, image []tags.Tag) error {
	switch ReportFormat(strings.ToLower(string(format))) {
	case ReportFormatCompact:
		return report.writeCompact(w)

	case ReportFormatFull:
		return report.writeFull(w, image)

	case ReportFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()

	case ReportFormatPlist:
		data, err := plist.MarshalIndent(report, plist.XMLFormat, "\t")
		if err != nil {
			return fmt.Errorf("encode plist: %w", err)
		}

		_, err = w.Write(append(data, '\n'))
		return err

	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

func (report *Report) writeCompact(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "INDEX\tTAG\tID\tLENGTH\tDETAILS")

	for _, tag := range report.Tags {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", tag.Index, tag.Name, tag.ID, tag.Length, tag.Summary)
	}

	_, _ = fmt.Fprintf(tw, "\nsize: %d bytes, trailing: %d bytes, crc: %s\n", report.Size, report.Trailing, report.CRCStatus)
	return tw.Flush()
}

func (report *Report) writeFull(w io.Writer, image []tags.Tag) error {
	for i, tag := range image {
		if _, err := fmt.Fprintf(w, "[%d] %s\n", i, tags.HeaderOf(tag)); err != nil {
			return err
		}

		if _, err := pretty.Fprintf(w, "%# v\n", tag); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "payload:\n%s\n", hex.Dump(tags.Payload(tag))); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "size: %d bytes, trailing: %d bytes, crc: %s\n", report.Size, report.Trailing, report.CRCStatus)
	return err
}
