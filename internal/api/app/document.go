package app

import (
	"github.com/sirupsen/logrus"

	"deeploc/internal/domain"
	"deeploc/internal/ports"
	"deeploc/internal/store"
)

type DocumentAPI struct {
	store  *store.Document
	em     ports.EventEmitter
	logger *logrus.Logger
}

func NewDocumentAPI(st *store.Document, em ports.EventEmitter, logger *logrus.Logger) *DocumentAPI {
	if logger == nil {
		logger = logrus.New()
	}
	return &DocumentAPI{store: st, em: em, logger: logger}
}

func (a *DocumentAPI) progress(percent int, message string) {
	if a.em != nil {
		a.em.Emit("document.progress", map[string]any{"percent": percent, "message": message})
	}
}

func (a *DocumentAPI) Load(path string) error {
	if err := a.store.Load(path, a.progress); err != nil {
		a.logger.Errorf("load document: %v", err)
		return err
	}
	a.logger.Infof("loaded %d entries from %s", a.store.Len(), path)
	return nil
}

// Save writes the document back out; an empty path reuses the loaded one.
func (a *DocumentAPI) Save(path string) error {
	if err := a.store.Save(path, a.progress); err != nil {
		a.logger.Errorf("save document: %v", err)
		return err
	}
	return nil
}

func (a *DocumentAPI) Meta() domain.DocumentMeta { return a.store.Meta() }

func (a *DocumentAPI) Entries() []*domain.Entry { return a.store.Entries() }

func (a *DocumentAPI) Filter(opts store.FilterOptions) []*domain.Entry {
	return a.store.Filter(opts)
}

func (a *DocumentAPI) UpdateTranslation(id, text string) bool {
	return a.store.UpdateTranslation(id, text)
}

func (a *DocumentAPI) MarkSelected(ids []string) int {
	n := a.store.MarkTranslated(ids)
	a.emitStats()
	return n
}

func (a *DocumentAPI) MarkAll() int {
	n := a.store.MarkAllTranslated()
	a.emitStats()
	return n
}

func (a *DocumentAPI) Stats() domain.Stats { return a.store.Stats() }

func (a *DocumentAPI) EntryTypes() []string { return a.store.EntryTypes() }

func (a *DocumentAPI) ItemTags() []string { return a.store.GetItemTags() }

func (a *DocumentAPI) emitStats() {
	if a.em != nil {
		a.em.Emit("document.stats", a.store.Stats())
	}
}
