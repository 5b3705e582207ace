package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deeploc/internal/ports"
)

type fakeCodec struct{ format string }

func (f *fakeCodec) Format() string                        { return f.format }
func (f *fakeCodec) Write(string, []ports.SheetRow) error  { return nil }
func (f *fakeCodec) Read(string) ([]ports.SheetRow, error) { return nil, nil }

func TestForPath(t *testing.T) {
	r := New()
	r.Register(&fakeCodec{format: "csv"})
	r.Register(&fakeCodec{format: "xlsx"})

	tests := []struct {
		path   string
		format string
		ok     bool
	}{
		{"export.csv", "csv", true},
		{"EXPORT.CSV", "csv", true},
		{"/tmp/out.xlsx", "xlsx", true},
		{"notes.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		c, ok := r.ForPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		if tt.ok {
			require.NotNil(t, c)
			assert.Equal(t, tt.format, c.Format())
		}
	}
}
