package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
	"github.com/KatelynHaworth/gbl-helper/internal/cmd/image"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), "gbl-helper %v", args)

	return out.String()
}

func TestImageCommands(t *testing.T) {
	dir := t.TempDir()
	imageFile := filepath.Join(dir, "app.gbl")

	execute(t, "create", "-o", imageFile)
	data, err := os.ReadFile(imageFile)
	require.NoError(t, err)
	assert.Len(t, data, int(2*tags.TagHeaderSize+8+tags.EndLength))

	execute(t, "add", imageFile, "--type", "application", "--app-type", "1", "--version", "0x01020304", "--capabilities", "0xffffffff", "--product-id", "42")
	execute(t, "add", imageFile, "--type", "prog", "--address", "0x08000000", "--data", "00010203", "--index", "1")

	var report image.Report
	require.NoError(t, json.Unmarshal([]byte(execute(t, "info", imageFile, "--format", "json")), &report))
	assert.True(t, report.CRCValid)
	assert.Zero(t, report.Trailing)
	require.Len(t, report.Tags, 4)
	assert.Equal(t, "HEADER_V3", report.Tags[0].Name)
	assert.Equal(t, "PROG", report.Tags[1].Name)
	assert.Equal(t, "0000000800010203", report.Tags[1].Payload)
	assert.Equal(t, "APPLICATION", report.Tags[2].Name)
	assert.Equal(t, "END", report.Tags[3].Name)

	execute(t, "remove", imageFile, "--type", "prog")
	execute(t, "set", imageFile, "--index", "1", "--type", "metadata", "--data", "6d657461")

	finalFile := filepath.Join(dir, "final.gbl")
	execute(t, "finalize", imageFile, "-o", finalFile)

	data, err = os.ReadFile(finalFile)
	require.NoError(t, err)

	parsed, err := gbl.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, tags.NewMetadata([]byte("meta")), parsed[1])
	assert.NoError(t, gbl.VerifyEndTag(parsed))

	var yamlReport image.Report
	require.NoError(t, yaml.Unmarshal([]byte(execute(t, "info", finalFile, "--format", "yaml")), &yamlReport))
	assert.Equal(t, len(data), yamlReport.Size)

	compact := execute(t, "info", finalFile, "--format", "compact")
	assert.Contains(t, compact, "METADATA")
	assert.Contains(t, compact, "crc: valid")

	full := execute(t, "info", finalFile, "--format", "full")
	assert.Contains(t, full, "tags.Metadata")

	plistOut := execute(t, "info", finalFile, "--format", "plist")
	assert.Contains(t, plistOut, "<key>crc-valid</key>")
}

func TestPackCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "packed.gbl")
	manifest := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{
  "config_version": 2,
  "images": [{"output": "`+filepath.ToSlash(output)+`", "tags": [{"type": "eraseprog"}, {"type": "prog", "address": 4096, "data": "ff"}]}]
}`), 0644))

	execute(t, "pack", "-f", manifest)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	parsed, err := gbl.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	assert.Equal(t, tags.KindEraseProg, parsed[1].Kind())
	assert.Equal(t, tags.NewProg(4096, []byte{0xff}), parsed[2])
}
