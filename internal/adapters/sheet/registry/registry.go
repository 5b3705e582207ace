package registry

import (
	"path/filepath"
	"strings"

	"deeploc/internal/ports"
)

// Registry maps spreadsheet formats to codecs, keyed the same way the
// parser/exporter registries key file formats.
type Registry struct {
	byFormat map[string]ports.SheetCodec
}

func New() *Registry { return &Registry{byFormat: map[string]ports.SheetCodec{}} }

func (r *Registry) Register(c ports.SheetCodec) { r.byFormat[c.Format()] = c }

func (r *Registry) Get(format string) (ports.SheetCodec, bool) {
	c, ok := r.byFormat[format]
	return c, ok
}

// ForPath picks a codec by file extension.
func (r *Registry) ForPath(path string) (ports.SheetCodec, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return r.Get(ext)
}
