package domain

import "strings"

// MarkedPrefix tags a translation as operator-confirmed without machine
// translation. Entries carrying it count as translated everywhere.
const MarkedPrefix = "[已标记]"

type Entry struct {
	Type        string `json:"type"`
	ID          string `json:"id"`
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

// Translated reports whether the entry has a usable translation: either the
// text differs from the original and is non-blank, or it was marked by hand.
func (e *Entry) Translated() bool {
	t := strings.TrimSpace(e.Translation)
	if strings.HasPrefix(t, MarkedPrefix) {
		return true
	}
	return t != "" && e.Translation != e.Original
}

// Untranslated reports whether the entry still needs work. Marked entries
// never do, even though their text equals the original.
func (e *Entry) Untranslated() bool {
	t := strings.TrimSpace(e.Translation)
	if strings.HasPrefix(t, MarkedPrefix) {
		return false
	}
	return t == "" || e.Translation == e.Original
}

// DocumentMeta holds the root attributes of a loaded localization file.
type DocumentMeta struct {
	Language       string `json:"language"`
	TranslatedName string `json:"translated_name"`
	NoWhitespace   bool   `json:"no_whitespace"`
}

// Comment is a comment node of the source document, pinned to the ordinal
// position it occupied among the root's children.
type Comment struct {
	Position int    `json:"position"`
	Text     string `json:"text"`
}

type Stats struct {
	Translated int `json:"translated"`
	Total      int `json:"total"`
}
