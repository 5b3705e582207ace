// Package placeholder shields [token]-style markers from translation
// backends. Two strategies are provided: marker substitution (opaque
// stand-ins swapped in and out around a single backend call) and
// segment-and-splice (only the plain-text runs between tokens are sent out).
package placeholder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var tokenRE = regexp.MustCompile(`\[[^\]]+\]`)

// corrections repairs bracket tokens that a model rendered into the target
// language despite instructions.
var corrections = []struct{ wrong, right string }{
	{"[姓名]", "[name]"},
	{"[名字]", "[name]"},
	{"[人名]", "[name]"},
	{"[用户]", "[name]"},
	{"[玩家]", "[name]"},
	{"[角色]", "[character]"},
	{"[数值]", "[value]"},
	{"[数字]", "[number]"},
	{"[地点]", "[location]"},
	{"[物品]", "[item]"},
	{"[武器]", "[weapon]"},
}

// Protect replaces every bracket token with an opaque marker and returns the
// protected text plus the marker->token mapping needed by Restore.
// Replacement runs longest-token-first so a token whose name is a prefix of
// another's is never clobbered by a partial match.
func Protect(text string) (string, map[string]string) {
	matches := tokenRE.FindAllString(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	type numbered struct {
		token string
		n     int
	}
	seen := make(map[string]struct{}, len(matches))
	list := make([]numbered, 0, len(matches))
	for i, tok := range matches {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		list = append(list, numbered{token: tok, n: i})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return len(list[i].token) > len(list[j].token)
	})
	mapping := make(map[string]string, len(list))
	out := text
	for _, it := range list {
		marker := fmt.Sprintf("__PLACEHOLDER_%d__", it.n)
		mapping[marker] = it.token
		out = strings.ReplaceAll(out, it.token, marker)
	}
	return out, mapping
}

// Restore substitutes markers back to their original tokens and applies the
// corrections table. Markers never overlap, so order does not matter.
func Restore(text string, mapping map[string]string) string {
	out := text
	for marker, token := range mapping {
		out = strings.ReplaceAll(out, marker, token)
	}
	return Correct(out)
}

// Correct applies the fixed mistranslated-token repairs.
func Correct(text string) string {
	out := text
	for _, c := range corrections {
		out = strings.ReplaceAll(out, c.wrong, c.right)
	}
	return out
}

type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentPlaceholder
)

type Segment struct {
	Kind    SegmentKind
	Content string
}

// Split walks the text left to right into alternating plain-text and
// bracket-token runs. Whitespace-only text runs are dropped so they are
// never sent to a backend.
func Split(text string) []Segment {
	locs := tokenRE.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Kind: SegmentText, Content: text}}
	}
	var segs []Segment
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			before := text[last:loc[0]]
			if strings.TrimSpace(before) != "" {
				segs = append(segs, Segment{Kind: SegmentText, Content: before})
			}
		}
		segs = append(segs, Segment{Kind: SegmentPlaceholder, Content: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	if last < len(text) {
		after := text[last:]
		if strings.TrimSpace(after) != "" {
			segs = append(segs, Segment{Kind: SegmentText, Content: after})
		}
	}
	return segs
}
