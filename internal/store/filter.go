package store

import (
	"sort"
	"strings"

	"deeploc/internal/domain"
)

// FilterOptions are ANDed predicates over the entry list. Zero values mean
// "not applied".
type FilterOptions struct {
	EntryType        string `json:"entry_type"`
	SearchText       string `json:"search_text"`
	TranslatedOnly   bool   `json:"translated_only"`
	UntranslatedOnly bool   `json:"untranslated_only"`
	ItemCategory     string `json:"item_category"`
}

// categoryKeywords is the fixed heuristic mapping from coarse item category
// to the substrings that identify it in an entry id or original text.
var categoryKeywords = map[string][]string{
	"weapon":   {"weapon", "gun", "rifle", "pistol", "shotgun", "smg", "revolver", "coilgun", "railgun", "explosive", "grenade", "launcher", "machinegun", "carbine", "assault", "sniper"},
	"tool":     {"tool", "cutter", "welder", "screwdriver", "wrench", "crowbar", "repair", "extinguisher", "knife", "axe", "mace", "sword"},
	"medical":  {"medical", "medic", "bandage", "health", "firstaid", "antidote", "medicine", "cure", "stim", "heal", "affliction"},
	"suit":     {"suit", "diving", "armor", "uniform", "clothes", "helmet", "gear", "outfit", "exoskeleton", "ballistichelmet", "bodyarmor", "tactical"},
	"item":     {"round", "ammo", "magazine", "shell", "bullet", "clip", "explosive", "dart", "rocket", "grenade", "cartridge"},
	"material": {"material", "resource", "steel", "plastic", "rubber", "fabric", "organic", "alien", "barrel", "reciever", "gunpowder"},
	"creature": {"creature", "monster", "animal", "alien", "moloch", "endworm", "crawler", "husk", "affliction"},
}

// Filter returns a fresh list of entries passing every supplied predicate.
// The store itself is not mutated. Setting both TranslatedOnly and
// UntranslatedOnly applies neither; the two flags cancel out.
func (d *Document) Filter(opts FilterOptions) []*domain.Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if opts.TranslatedOnly && opts.UntranslatedOnly {
		opts.TranslatedOnly = false
		opts.UntranslatedOnly = false
	}

	var base []*domain.Entry
	if opts.EntryType != "" {
		if idxs, ok := d.typeIndex[opts.EntryType]; ok {
			base = make([]*domain.Entry, 0, len(idxs))
			for _, i := range idxs {
				base = append(base, d.entries[i])
			}
		}
	} else {
		base = d.entries
	}

	search := strings.ToLower(opts.SearchText)
	var keywords []string
	if opts.ItemCategory != "" {
		keywords = categoryKeywords[opts.ItemCategory]
	}

	result := make([]*domain.Entry, 0, len(base))
	for _, e := range base {
		if opts.ItemCategory != "" && !matchesCategory(e, keywords) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(e.ID), search) &&
			!strings.Contains(strings.ToLower(e.Original), search) &&
			!strings.Contains(strings.ToLower(e.Translation), search) {
			continue
		}
		if opts.TranslatedOnly && !e.Translated() {
			continue
		}
		if opts.UntranslatedOnly && !e.Untranslated() {
			continue
		}
		result = append(result, e)
	}
	return result
}

func matchesCategory(e *domain.Entry, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	id := strings.ToLower(e.ID)
	text := strings.ToLower(e.Original)
	for _, kw := range keywords {
		if strings.Contains(id, kw) || strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// itemTagPrefixes drive GetItemTags' prefix sniff over the id segment after
// the first dot.
var itemTagPrefixes = []string{"weapon_", "tool_", "medical_", "suit_", "item_", "creature_", "material_"}

// GetItemTags derives the coarse categories actually present in the loaded
// document. Approximate; only feeds the category filter dropdown.
func (d *Document) GetItemTags() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	tags := map[string]struct{}{}
	for _, e := range d.entries {
		parts := strings.SplitN(e.ID, ".", 2)
		if len(parts) < 2 {
			continue
		}
		item := parts[1]
		for _, prefix := range itemTagPrefixes {
			if strings.HasPrefix(item, prefix) {
				tags[strings.TrimSuffix(prefix, "_")] = struct{}{}
				break
			}
		}
		switch {
		case strings.Contains(item, "gun") || strings.Contains(item, "rifle") || strings.Contains(item, "pistol"):
			tags["weapon"] = struct{}{}
		case strings.Contains(item, "medic") || strings.Contains(item, "health") || strings.Contains(item, "bandage"):
			tags["medical"] = struct{}{}
		case strings.Contains(item, "armor") || strings.Contains(item, "helmet"):
			tags["suit"] = struct{}{}
		case strings.Contains(item, "monster") || strings.Contains(item, "alien"):
			tags["creature"] = struct{}{}
		}
	}
	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
