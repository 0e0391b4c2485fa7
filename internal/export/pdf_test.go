package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaBoard/internal/state"
)

func layers() []state.Snapshot {
	square := []state.Coord{{10, 10}, {60, 10}, {60, 60}, {10, 60}}
	return []state.Snapshot{
		{Layer: 0, Style: state.Style{Color: "#ff0000", Opacity: 0.5, ShowLine: true, Fill: true, LineWidth: 1}, Points: square},
		{Layer: 1, Style: state.Style{Color: "blue", Opacity: 1, Reverse: true}, Points: square},
		{Layer: 2, Style: state.Style{Color: "green", Opacity: 1, ShowLine: true}},
		{Layer: 3, Style: state.Style{Color: "black", Opacity: 1, Reverse: true}},
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, 100, 80, layers()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDFBadColour(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, 100, 80, []state.Snapshot{{Style: state.Style{Color: "nope"}}})
	assert.Error(t, err)
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, ExportPDF(path, 100, 80, layers()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
