// Package valuation implements the rule-based revenue multiple model: three
// ordered lookup tables (sector multiple, geography adjustment, sector
// confidence), a revenue size bracket, and the scoring function that combines
// them into a multiple, a ±25% range and an enterprise value estimate.
package valuation

import "strings"

// ─────────────────────────────────────────────────────────────────────────────
// Table: ordered label → value lookup with a default
// ─────────────────────────────────────────────────────────────────────────────

// Entry is one (label, value) row of a Table.
type Entry struct {
	Label string
	Value float64
}

// Table is an immutable, ordered lookup table. Order is significant: the
// substring pass returns the first matching entry, so a Table must never be
// rebuilt from a map.
type Table struct {
	name     string
	entries  []Entry
	fallback float64
}

// NewTable copies entries into a new Table.
func NewTable(name string, fallback float64, entries ...Entry) *Table {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{name: name, entries: cp, fallback: fallback}
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Default returns the value used when a key does not resolve.
func (t *Table) Default() float64 { return t.fallback }

// Entries returns a copy of the rows in table order.
func (t *Table) Entries() []Entry {
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Resolve maps key to a value. It never fails:
//
//  1. empty key → default
//  2. exact, case-sensitive label match
//  3. first label (in table order) where either lowercased string contains
//     the other
//  4. default
//
// Step 3 is permissive and order dependent. "Global" resolves
// against the geography table through its exact row, while "US West" matches
// "US" via substring and "software platform" matches "Software".
func (t *Table) Resolve(key string) float64 {
	v, _ := t.Lookup(key)
	return v
}

// Lookup is Resolve that also reports which label matched ("" for default).
func (t *Table) Lookup(key string) (float64, string) {
	if key == "" {
		return t.fallback, ""
	}
	for _, e := range t.entries {
		if e.Label == key {
			return e.Value, e.Label
		}
	}
	lk := strings.ToLower(key)
	for _, e := range t.entries {
		ll := strings.ToLower(e.Label)
		if strings.Contains(lk, ll) || strings.Contains(ll, lk) {
			return e.Value, e.Label
		}
	}
	return t.fallback, ""
}

//Personal.AI order the ending
