// Package sheetsync moves entries between the document store and review
// spreadsheets: flat export in store order, id-keyed merge on import.
package sheetsync

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	sheetreg "deeploc/internal/adapters/sheet/registry"
	"deeploc/internal/ports"
	"deeploc/internal/store"
)

type Service struct {
	Store  *store.Document
	Reg    *sheetreg.Registry
	Logger *logrus.Logger
}

func New(st *store.Document, reg *sheetreg.Registry, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{Store: st, Reg: reg, Logger: logger}
}

// Export writes one row per entry, columns [type, id, original, translation],
// in store order. The format is chosen by file extension.
func (s *Service) Export(path string) error {
	codec, ok := s.Reg.ForPath(path)
	if !ok {
		return fmt.Errorf("unsupported spreadsheet format: %s", path)
	}
	entries := s.Store.Entries()
	rows := make([]ports.SheetRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ports.SheetRow{Type: e.Type, ID: e.ID, Original: e.Original, Translation: e.Translation})
	}
	if err := codec.Write(path, rows); err != nil {
		return err
	}
	s.Logger.Infof("exported %d entries to %s", len(rows), path)
	return nil
}

// Import merges translations back by id. Blank translations are skipped, ids
// unknown to the store are silently ignored, and the count of entries
// actually updated is returned.
func (s *Service) Import(path string) (int, error) {
	codec, ok := s.Reg.ForPath(path)
	if !ok {
		return 0, fmt.Errorf("unsupported spreadsheet format: %s", path)
	}
	rows, err := codec.Read(path)
	if err != nil {
		return 0, err
	}
	translations := make(map[string]string, len(rows))
	for _, r := range rows {
		if r.ID == "" || strings.TrimSpace(r.Translation) == "" {
			continue
		}
		translations[r.ID] = r.Translation
	}
	updated := 0
	for id, text := range translations {
		if s.Store.UpdateTranslation(id, text) {
			updated++
		}
	}
	s.Logger.Infof("imported %d translations from %s (%d rows)", updated, path, len(rows))
	return updated, nil
}
