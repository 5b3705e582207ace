package sheetsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeploc/internal/adapters/sheet/csvsheet"
	sheetreg "deeploc/internal/adapters/sheet/registry"
	"deeploc/internal/store"
)

const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<infotexts language="English" translatedname="English">
  <entityname.revolver>Revolver</entityname.revolver>
  <entityname.shark>Shark</entityname.shark>
  <npcname.fisherman>Fisherman</npcname.fisherman>
</infotexts>
`

func setup(t *testing.T) (*store.Document, *Service) {
	t.Helper()
	doc := store.New()
	path := filepath.Join(t.TempDir(), "sample.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleXML), 0o644))
	require.NoError(t, doc.Load(path, nil))

	reg := sheetreg.New()
	reg.Register(csvsheet.New())
	return doc, New(doc, reg, nil)
}

func TestExportImportRoundTrip(t *testing.T) {
	doc, svc := setup(t)
	doc.UpdateTranslation("entityname.revolver", "左轮手枪")

	sheet := filepath.Join(t.TempDir(), "review.csv")
	require.NoError(t, svc.Export(sheet))

	// A fresh copy of the same document picks the translation up on import.
	doc2, svc2 := setup(t)
	n, err := svc2.Import(sheet)
	require.NoError(t, err)
	// "Shark" and "Fisherman" rows carry translation == original and count
	// as updates too; only truly blank cells are skipped.
	assert.Equal(t, 3, n)
	e, _ := doc2.Get("entityname.revolver")
	assert.Equal(t, "左轮手枪", e.Translation)
}

func TestImportSkipsBlankAndUnknown(t *testing.T) {
	doc, svc := setup(t)
	sheet := filepath.Join(t.TempDir(), "review.csv")
	content := "type,id,original,translation\n" +
		"entityname.shark,entityname.shark,Shark,鲨鱼\n" +
		"entityname.revolver,entityname.revolver,Revolver,   \n" +
		"nosuch.id,nosuch.id,Ghost,幽灵\n"
	require.NoError(t, os.WriteFile(sheet, []byte(content), 0o644))

	n, err := svc.Import(sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	e, _ := doc.Get("entityname.shark")
	assert.Equal(t, "鲨鱼", e.Translation)
	e, _ = doc.Get("entityname.revolver")
	assert.Equal(t, "Revolver", e.Translation)
}

func TestUnsupportedFormat(t *testing.T) {
	_, svc := setup(t)
	require.Error(t, svc.Export("out.ods"))
	_, err := svc.Import("in.ods")
	require.Error(t, err)
}

func TestImportBadSheet(t *testing.T) {
	_, svc := setup(t)
	sheet := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(sheet, []byte("id,original\nx,y\n"), 0o644))
	_, err := svc.Import(sheet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}
