package app

import (
	"deeploc/internal/domain"
	"deeploc/internal/store"
	"deeploc/internal/usecase/jobs"
)

type QueueAPI struct {
	store  *store.Document
	runner *jobs.Runner
}

func NewQueueAPI(st *store.Document, runner *jobs.Runner) *QueueAPI {
	return &QueueAPI{store: st, runner: runner}
}

// TranslateSelected queues the given entries, skipping the ones that already
// carry a translation.
func (a *QueueAPI) TranslateSelected(ids []string, targetLang, sourceLang string) bool {
	items := make([]domain.QueueItem, 0, len(ids))
	for _, id := range ids {
		e, ok := a.store.Get(id)
		if !ok || !e.Untranslated() {
			continue
		}
		items = append(items, domain.QueueItem{EntryID: e.ID, Text: e.Original})
	}
	return a.runner.Start(items, targetLang, sourceLang)
}

// TranslateAll queues every untranslated entry in the store.
func (a *QueueAPI) TranslateAll(targetLang, sourceLang string) bool {
	entries := a.store.Entries()
	items := make([]domain.QueueItem, 0, len(entries))
	for _, e := range entries {
		if !e.Untranslated() {
			continue
		}
		items = append(items, domain.QueueItem{EntryID: e.ID, Text: e.Original})
	}
	return a.runner.Start(items, targetLang, sourceLang)
}

func (a *QueueAPI) Cancel() bool { return a.runner.Cancel() }

func (a *QueueAPI) State() domain.QueueState { return a.runner.State() }
