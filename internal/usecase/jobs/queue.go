// Package jobs drives the sequential translation queue: exactly one backend
// call in flight, results applied to the document store in request order.
package jobs

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"deeploc/internal/domain"
	"deeploc/internal/ports"
	"deeploc/internal/store"
	"deeploc/internal/usecase/translator"
)

type Deps struct {
	Store      *store.Document
	Translator *translator.Service
	Emitter    ports.EventEmitter
	Logger     *logrus.Logger
}

type Runner struct {
	d Deps

	mu     sync.Mutex
	state  domain.QueueState
	queue  []domain.QueueItem
	done   int
	cancel context.CancelFunc
}

func NewRunner(d Deps) *Runner {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &Runner{d: d, state: domain.QueueIdle}
}

func (r *Runner) SetEmitter(em ports.EventEmitter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.d.Emitter = em
}

func (r *Runner) State() domain.QueueState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start enqueues the given items and begins sequential processing. Items
// whose translation already differs from the original should be filtered by
// the caller; an empty batch reports "nothing to do" and stays Idle.
func (r *Runner) Start(items []domain.QueueItem, targetLang, sourceLang string) bool {
	r.mu.Lock()
	if r.state == domain.QueueRunning {
		r.mu.Unlock()
		r.emit("queue.busy", nil)
		return false
	}
	pending := make([]domain.QueueItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Text) == "" {
			continue
		}
		pending = append(pending, it)
	}
	if len(pending) == 0 {
		r.mu.Unlock()
		r.emit("queue.empty", "nothing to do")
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.state = domain.QueueRunning
	r.queue = pending
	r.done = 0
	r.cancel = cancel
	total := len(pending)
	r.mu.Unlock()

	r.emit("queue.started", map[string]any{"total": total})
	r.d.Logger.Infof("translation queue started: %d items", total)
	go r.run(ctx, targetLang, sourceLang)
	return true
}

func (r *Runner) run(ctx context.Context, targetLang, sourceLang string) {
	for {
		select {
		case <-ctx.Done():
			r.finish(domain.QueueAborted, "queue.canceled")
			return
		default:
		}

		r.mu.Lock()
		if len(r.queue) == 0 {
			r.mu.Unlock()
			r.finish(domain.QueueIdle, "queue.done")
			return
		}
		item := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		// One call in flight at a time; the manager falls back to the
		// original text on failure, so the queue never stalls on one item.
		text := r.d.Translator.Translate(ctx, item.Text, targetLang, sourceLang)
		if ctx.Err() != nil {
			// In-flight result discarded after cancellation.
			r.finish(domain.QueueAborted, "queue.canceled")
			return
		}
		if !r.d.Store.UpdateTranslation(item.EntryID, text) {
			r.d.Logger.Warnf("queue: unknown entry id %q, skipping", item.EntryID)
		}

		r.mu.Lock()
		r.done++
		done := r.done
		queued := len(r.queue)
		r.mu.Unlock()

		stats := r.d.Store.Stats()
		r.emit("queue.progress", domain.QueueProgress{
			Done:       done,
			Queued:     queued,
			Translated: stats.Translated,
			Total:      stats.Total,
			State:      domain.QueueRunning,
		})
		r.emit("queue.item.done", map[string]any{"entry_id": item.EntryID, "text": text})
	}
}

// Cancel aborts the queue. The in-flight HTTP call still completes but its
// result is discarded.
func (r *Runner) Cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != domain.QueueRunning || r.cancel == nil {
		return false
	}
	r.cancel()
	return true
}

func (r *Runner) finish(state domain.QueueState, event string) {
	r.mu.Lock()
	r.queue = nil
	r.state = state
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if state == domain.QueueAborted {
		// Aborted is transient; the driver is immediately startable again.
		r.state = domain.QueueIdle
	}
	r.mu.Unlock()

	stats := r.d.Store.Stats()
	r.emit(event, domain.QueueProgress{
		Done:       r.doneCount(),
		Translated: stats.Translated,
		Total:      stats.Total,
		State:      state,
	})
	r.d.Logger.Infof("translation queue finished: %s", event)
}

func (r *Runner) doneCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Runner) emit(name string, payload any) {
	r.mu.Lock()
	em := r.d.Emitter
	r.mu.Unlock()
	if em != nil {
		em.Emit(name, payload)
	}
}
