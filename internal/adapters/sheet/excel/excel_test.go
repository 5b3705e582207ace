package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"deeploc/internal/ports"
)

var sampleRows = []ports.SheetRow{
	{Type: "entityname.revolver", ID: "entityname.revolver", Original: "Revolver", Translation: "左轮手枪"},
	{Type: "npcname.fisherman", ID: "npcname.fisherman", Original: "Fisherman", Translation: ""},
}

func TestWriteReadRoundTrip(t *testing.T) {
	c := New()
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, c.Write(path, sampleRows))

	got, err := c.Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRows, got)
}

func TestWriteEmpty(t *testing.T) {
	c := New()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, c.Write(path, nil))

	got, err := c.Read(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"type", "id", "original"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := New().Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column: translation")
}

func TestReadMissingFile(t *testing.T) {
	_, err := New().Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "xlsx", New().Format())
}
