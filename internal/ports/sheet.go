package ports

// SheetRow is one spreadsheet row in the fixed [type, id, original,
// translation] column order.
type SheetRow struct {
	Type        string
	ID          string
	Original    string
	Translation string
}

// SheetCodec reads and writes one tabular format. Write receives rows in
// store order and should stream them rather than buffer the whole sheet.
type SheetCodec interface {
	Format() string
	Write(path string, rows []SheetRow) error
	Read(path string) ([]SheetRow, error)
}
