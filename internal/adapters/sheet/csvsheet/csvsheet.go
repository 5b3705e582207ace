// Package csvsheet is the CSV spreadsheet codec: one row per entry in the
// fixed [type, id, original, translation] column order.
package csvsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"deeploc/internal/ports"
)

var header = []string{"type", "id", "original", "translation"}

type Codec struct{}

func New() *Codec { return &Codec{} }

func (c *Codec) Format() string { return "csv" }

func (c *Codec) Write(path string, rows []ports.SheetRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Type, r.ID, r.Original, r.Translation}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func (c *Codec) Read(path string) ([]ports.SheetRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data = stripBOM(data)
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	head, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := headerIndex(head)
	if err != nil {
		return nil, err
	}
	var rows []ports.SheetRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowFromRecord(rec, cols))
	}
	return rows, nil
}

// headerIndex validates that every required column is present and maps column
// name to index. The first missing column fails the whole import.
func headerIndex(head []string) (map[string]int, error) {
	idx := map[string]int{}
	for i, h := range head {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range header {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}
	return idx, nil
}

func rowFromRecord(rec []string, cols map[string]int) ports.SheetRow {
	at := func(name string) string {
		i := cols[name]
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return ports.SheetRow{Type: at("type"), ID: at("id"), Original: at("original"), Translation: at("translation")}
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}
