package placeholder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectRestoreRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no tokens", "plain sentence with no markers"},
		{"single token", "Hello [name], welcome aboard."},
		{"repeated token", "[name] greets [name] at [location]."},
		{"adjacent tokens", "[item][weapon] combo"},
		{"token only", "[value]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			protected, mapping := Protect(tt.text)
			assert.Equal(t, tt.text, Restore(protected, mapping))
		})
	}
}

func TestProtectHidesTokens(t *testing.T) {
	protected, mapping := Protect("Give [item] to [name].")
	assert.NotContains(t, protected, "[item]")
	assert.NotContains(t, protected, "[name]")
	assert.Len(t, mapping, 2)
	for marker := range mapping {
		assert.Contains(t, protected, marker)
	}
}

func TestProtectLongestTokenFirst(t *testing.T) {
	// "[item_rare]" must not be clobbered by a partial replacement of
	// "[item]" even though "[item]" appears first in the text.
	text := "[item] and [item_rare] drop here"
	protected, mapping := Protect(text)
	assert.NotContains(t, protected, "[item")
	assert.Equal(t, text, Restore(protected, mapping))
}

func TestProtectNoTokens(t *testing.T) {
	protected, mapping := Protect("nothing to hide")
	assert.Equal(t, "nothing to hide", protected)
	assert.Nil(t, mapping)
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"你好 [姓名]！", "你好 [name]！"},
		{"[玩家] 拿到了 [物品]", "[name] 拿到了 [item]"},
		{"[武器] 造成 [数值] 伤害", "[weapon] 造成 [value] 伤害"},
		{"no brackets here", "no brackets here"},
		{"[name] already fine", "[name] already fine"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Correct(tt.in))
	}
}

func TestRestoreAppliesCorrections(t *testing.T) {
	protected, mapping := Protect("Hello [name]")
	// Simulate a model that translated an unprotected stray token.
	mangled := protected + " [姓名]"
	assert.Equal(t, "Hello [name] [name]", Restore(mangled, mapping))
}

func TestSplit(t *testing.T) {
	segs := Split("Hello [name], welcome to [location]!")
	require.Len(t, segs, 5)
	assert.Equal(t, SegmentText, segs[0].Kind)
	assert.Equal(t, "Hello ", segs[0].Content)
	assert.Equal(t, SegmentPlaceholder, segs[1].Kind)
	assert.Equal(t, "[name]", segs[1].Content)
	assert.Equal(t, SegmentText, segs[2].Kind)
	assert.Equal(t, ", welcome to ", segs[2].Content)
	assert.Equal(t, SegmentPlaceholder, segs[3].Kind)
	assert.Equal(t, "[location]", segs[3].Content)
	assert.Equal(t, SegmentText, segs[4].Kind)
	assert.Equal(t, "!", segs[4].Content)
}

func TestSplitDropsWhitespaceRuns(t *testing.T) {
	segs := Split("[name] [item]")
	require.Len(t, segs, 2)
	assert.Equal(t, SegmentPlaceholder, segs[0].Kind)
	assert.Equal(t, SegmentPlaceholder, segs[1].Kind)
}

func TestSplitNoTokens(t *testing.T) {
	segs := Split("plain text")
	require.Len(t, segs, 1)
	assert.Equal(t, SegmentText, segs[0].Kind)
	assert.Equal(t, "plain text", segs[0].Content)
}

// Splicing translated text runs back between untouched tokens must keep the
// tokens literal. A backend that prefixes every run with "*" produces
// exactly one "*" per surviving text segment.
func TestSplitSpliceScenario(t *testing.T) {
	segs := Split("Hello [name], welcome to [location]!")
	var b strings.Builder
	for _, s := range segs {
		if s.Kind == SegmentPlaceholder {
			b.WriteString(s.Content)
			continue
		}
		b.WriteString("*" + s.Content)
	}
	assert.Equal(t, "*Hello [name]*, welcome to [location]*!", b.String())
}
