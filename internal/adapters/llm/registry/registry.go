package registry

import (
	"context"
	"errors"
	"sync"

	"deeploc/internal/ports"
)

// Registry holds the configured backend per type name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]ports.Backend
}

func New() *Registry {
	return &Registry{backends: make(map[string]ports.Backend)}
}

func (r *Registry) Register(b ports.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[b.Type()] = b
}

func (r *Registry) Get(typeName string) (ports.Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[typeName]
	return b, ok
}

// HealthCheck probes every registered backend. Used by the periodic status
// poll; results feed the status indicator, never a modal.
func (r *Registry) HealthCheck(ctx context.Context) map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]error, len(r.backends))
	for name, b := range r.backends {
		if b == nil {
			out[name] = errors.New("nil backend")
			continue
		}
		out[name] = b.TestConnection(ctx)
	}
	return out
}
