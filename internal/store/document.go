// Package store holds the in-memory collection of translation entries parsed
// from a game localization XML file, with id and type indices for fast
// lookup, non-destructive filtered views, and round-trip save.
package store

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/beevik/etree"

	"deeploc/internal/domain"
)

// ProgressFunc receives coarse load/save milestones (0-100) for the UI
// progress indicator.
type ProgressFunc func(percent int, message string)

// rootAttr is one root-element attribute, kept verbatim so save re-emits
// the full attribute list, not just the ones the tool interprets.
type rootAttr struct {
	key   string
	value string
}

type Document struct {
	mu sync.RWMutex

	path      string
	rootTag   string
	rootAttrs []rootAttr
	meta      domain.DocumentMeta
	entries   []*domain.Entry
	comments  []domain.Comment

	// Rebuildable indices; the entry slice is the source of truth.
	idIndex   map[string]int
	typeIndex map[string][]int
}

func New() *Document {
	return &Document{
		idIndex:   map[string]int{},
		typeIndex: map[string][]int{},
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load parses the file at path and replaces the store's contents. On any
// failure the previous snapshot stays installed.
func (d *Document) Load(path string, progress ProgressFunc) error {
	report := func(p int, msg string) {
		if progress != nil {
			progress(p, msg)
		}
	}
	report(0, "reading file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if bytes.HasPrefix(data, utf8BOM) {
		data = data[len(utf8BOM):]
		report(10, "stripped UTF-8 BOM")
	}

	report(20, "parsing XML")
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("parse %s: no root element", path)
	}

	report(40, "reading root attributes")
	meta := domain.DocumentMeta{
		Language:       root.SelectAttrValue("language", ""),
		TranslatedName: root.SelectAttrValue("translatedname", ""),
		NoWhitespace:   strings.EqualFold(root.SelectAttrValue("nowhitespace", "false"), "true"),
	}
	rootAttrs := make([]rootAttr, 0, len(root.Attr))
	for _, a := range root.Attr {
		rootAttrs = append(rootAttrs, rootAttr{key: a.FullKey(), value: a.Value})
	}

	report(60, "extracting entries")
	var entries []*domain.Entry
	var comments []domain.Comment
	typeIndex := map[string][]int{}
	pos := 0 // ordinal over elements and comments, whitespace excluded
	children := root.Child
	for i, tok := range children {
		switch t := tok.(type) {
		case *etree.Comment:
			comments = append(comments, domain.Comment{Position: pos, Text: t.Data})
			pos++
		case *etree.Element:
			tag := t.Tag
			text := t.Text()
			e := &domain.Entry{Type: tag, ID: tag, Original: text, Translation: text}
			entries = append(entries, e)
			typeIndex[tag] = append(typeIndex[tag], len(entries)-1)
			pos++
		default:
			continue
		}
		if len(children) > 0 && i%64 == 0 {
			report(60+30*i/len(children), fmt.Sprintf("processing entry %d/%d", i+1, len(children)))
		}
	}

	idIndex := make(map[string]int, len(entries))
	for i, e := range entries {
		idIndex[e.ID] = i
	}

	d.mu.Lock()
	d.path = path
	d.rootTag = root.Tag
	d.rootAttrs = rootAttrs
	d.meta = meta
	d.entries = entries
	d.comments = comments
	d.idIndex = idIndex
	d.typeIndex = typeIndex
	d.mu.Unlock()

	report(100, "file loaded")
	return nil
}

// Save rebuilds the XML tree from current entries and writes it out,
// re-splicing the original comment nodes at their recorded positions.
// An empty path reuses the path the document was loaded from.
func (d *Document) Save(path string, progress ProgressFunc) error {
	report := func(p int, msg string) {
		if progress != nil {
			progress(p, msg)
		}
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.entries) == 0 && d.rootTag == "" {
		return fmt.Errorf("no document loaded")
	}
	if path == "" {
		path = d.path
	}

	report(0, "building XML")
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement(d.rootTag)
	for _, a := range d.rootAttrs {
		root.CreateAttr(a.key, a.value)
	}

	report(30, "writing entries")
	for _, e := range d.entries {
		el := root.CreateElement(e.Type)
		el.SetText(e.Translation)
	}

	// Comments go back in at their original ordinal slots, clamped in case
	// the entry count shrank.
	for _, c := range d.comments {
		pos := c.Position
		if pos > len(root.Child) {
			pos = len(root.Child)
		}
		root.InsertChildAt(pos, etree.NewComment(c.Text))
	}

	if !d.meta.NoWhitespace {
		doc.Indent(2)
	}
	report(90, "writing file")
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	report(100, "file saved")
	return nil
}

func (d *Document) Meta() domain.DocumentMeta {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.meta
}

func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

func (d *Document) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}

// Entries returns the live entry slice in document order.
func (d *Document) Entries() []*domain.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*domain.Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Get looks an entry up by id.
func (d *Document) Get(id string) (*domain.Entry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.idIndex[id]
	if !ok {
		return nil, false
	}
	return d.entries[i], true
}

// UpdateTranslation overwrites one entry's translation by id. Unknown ids
// are a no-op returning false.
func (d *Document) UpdateTranslation(id, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, ok := d.idIndex[id]
	if !ok {
		return false
	}
	d.entries[i].Translation = text
	return true
}

// MarkTranslated stamps the given entries with the marked sentinel without
// any backend call. Unknown ids are skipped; returns the count marked.
func (d *Document) MarkTranslated(ids []string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, id := range ids {
		i, ok := d.idIndex[id]
		if !ok {
			continue
		}
		d.entries[i].Translation = domain.MarkedPrefix + " " + d.entries[i].Original
		n++
	}
	return n
}

// MarkAllTranslated stamps every entry with the marked sentinel.
func (d *Document) MarkAllTranslated() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.entries {
		e.Translation = domain.MarkedPrefix + " " + e.Original
	}
	return len(d.entries)
}

// Stats counts translated entries over the whole store; marked entries count
// as translated.
func (d *Document) Stats() domain.Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s := domain.Stats{Total: len(d.entries)}
	for _, e := range d.entries {
		if e.Translated() {
			s.Translated++
		}
	}
	return s
}

// EntryTypes lists the distinct entry tags, sorted.
func (d *Document) EntryTypes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.typeIndex))
	for t := range d.typeIndex {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
