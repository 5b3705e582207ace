// Package excel is the xlsx spreadsheet codec. Writing goes through the
// excelize stream writer so large documents never sit fully in memory.
package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"deeploc/internal/ports"
)

const sheetName = "Sheet1"

var header = []string{"type", "id", "original", "translation"}

type Codec struct{}

func New() *Codec { return &Codec{} }

func (c *Codec) Format() string { return "xlsx" }

func (c *Codec) Write(path string, rows []ports.SheetRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := sw.SetRow("A1", head); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []interface{}{r.Type, r.ID, r.Original, r.Translation}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (c *Codec) Read(path string) ([]ports.SheetRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	iter, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	if !iter.Next() {
		return nil, fmt.Errorf("missing required column: %s", header[0])
	}
	head, err := iter.Columns()
	if err != nil {
		return nil, err
	}
	cols := map[string]int{}
	for i, h := range head {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range header {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var rows []ports.SheetRow
	for iter.Next() {
		rec, err := iter.Columns()
		if err != nil {
			return nil, err
		}
		at := func(name string) string {
			i := cols[name]
			if i < len(rec) {
				return rec[i]
			}
			return ""
		}
		rows = append(rows, ports.SheetRow{Type: at("type"), ID: at("id"), Original: at("original"), Translation: at("translation")})
	}
	return rows, iter.Error()
}
