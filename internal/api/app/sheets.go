package app

import "deeploc/internal/usecase/sheetsync"

type SheetAPI struct {
	sync *sheetsync.Service
}

func NewSheetAPI(sync *sheetsync.Service) *SheetAPI { return &SheetAPI{sync: sync} }

func (a *SheetAPI) Export(path string) error { return a.sync.Export(path) }

// Import merges a review spreadsheet back into the store and returns the
// number of entries actually updated.
func (a *SheetAPI) Import(path string) (int, error) { return a.sync.Import(path) }
