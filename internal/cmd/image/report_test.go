package image

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
)

func TestNewReport_ChecksumMismatch(t *testing.T) {
	image := []tags.Tag{
		tags.NewHeader(tags.DefaultHeaderVersion, 0),
		tags.NewEnd(0x1234),
	}
	data := append(gbl.Encode(image), 0x00, 0x01)

	result, err := gbl.ParseBytes(data)
	require.NoError(t, err)

	report := NewReport(result, len(data))
	assert.False(t, report.CRCValid)
	assert.Contains(t, report.CRCStatus, "mismatch")
	assert.Equal(t, 2, report.Trailing)
	assert.Equal(t, "0x03a617eb", report.Tags[0].ID)
	assert.Equal(t, "0000000300000000", report.Tags[0].Payload)
}

func TestReport_UnsupportedFormat(t *testing.T) {
	report := &Report{}
	err := report.Write(&bytes.Buffer{}, "xml", nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
