// Package keymap defines the static translation from firmware scancodes to
// input key actions. Tables are configuration data, not logic: one table per
// hardware variant, immutable after package init.
package keymap

import "slices"

// Action is the semantic meaning assigned to a scancode.
type Action uint8

const (
	// ActionKey emits a synthetic key press/release pair.
	ActionKey Action = iota
	// ActionIgnore drops the event; the firmware already handled it.
	ActionIgnore
)

// Entry maps a single firmware scancode to an action.
type Entry struct {
	Scancode uint32
	Action   Action
	// Key is the key to emit for ActionKey entries; zero otherwise.
	Key Key
}

// Table is an immutable set of scancode mappings for one hardware variant.
// Scancodes within a table are unique.
type Table struct {
	model   string
	entries []Entry
}

// Model returns the hardware variant identifier this table belongs to.
func (t *Table) Model() string { return t.model }

// Len returns the number of entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table's entries.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup finds the entry for a scancode. The second return value is false
// when the scancode is not present in the table and the caller should treat
// the event as unknown. Lookup is a pure function of its input.
func (t *Table) Lookup(scancode uint32) (Entry, bool) {
	for _, e := range t.entries {
		if e.Scancode == scancode {
			return e, true
		}
	}
	return Entry{}, false
}

// Capabilities returns the distinct key targets of all ActionKey entries,
// sorted ascending. The set is announced to the input subsystem at
// registration time so the host knows every key this device can produce.
func (t *Table) Capabilities() []Key {
	seen := make(map[Key]bool, len(t.entries))
	out := make([]Key, 0, len(t.entries))
	for _, e := range t.entries {
		if e.Action != ActionKey || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		out = append(out, e.Key)
	}
	slices.Sort(out)
	return out
}
