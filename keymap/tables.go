package keymap

import (
	"fmt"
	"slices"
	"strings"
)

// Model identifiers for the built-in tables.
const (
	ModelYoga914IAP7 = "yoga9-14iap7"
	ModelYoga914ITL5 = "yoga9-14itl5"
)

// Yoga 9 14IAP7 hotkey table.
var yoga914IAP7 = &Table{
	model: ModelYoga914IAP7,
	entries: []Entry{
		// Customizable Lenovo hotkey ("star" with 'S' inside)
		{Scancode: 0x01, Action: ActionKey, Key: KeyMacro1},
		// FnLock disable, handled entirely by the firmware
		{Scancode: 0x02, Action: ActionIgnore},
		// FnLock enable, handled entirely by the firmware
		{Scancode: 0x03, Action: ActionIgnore},
		// Snipping tool (dashed circle with scissors)
		{Scancode: 0x04, Action: ActionKey, Key: KeySelectiveScreenshot},
		// Customizable Lenovo hotkey, long press
		{Scancode: 0x08, Action: ActionKey, Key: KeyFavorites},
		// Sound profile switch
		{Scancode: 0x12, Action: ActionKey, Key: KeyProg2},
		// Dark mode toggle
		{Scancode: 0x13, Action: ActionKey, Key: KeyProg1},
		// Lenovo Support
		{Scancode: 0x27, Action: ActionKey, Key: KeyHelp},
		// Virtual background application
		{Scancode: 0x28, Action: ActionKey, Key: KeyProg3},
	},
}

// Yoga 9 14ITL5 hotkey table. Same scancodes as the 14IAP7 for the most
// part, but 0x01/0x04/0x13/0x28 carry different key targets and the
// telephony hotkeys 0x0e/0x0f only exist on this revision.
var yoga914ITL5 = &Table{
	model: ModelYoga914ITL5,
	entries: []Entry{
		// Customizable Lenovo hotkey ("star" with 'S' inside)
		{Scancode: 0x01, Action: ActionKey, Key: KeyProg1},
		// FnLock disable, handled entirely by the firmware
		{Scancode: 0x02, Action: ActionIgnore},
		// FnLock enable, handled entirely by the firmware
		{Scancode: 0x03, Action: ActionIgnore},
		// Snipping tool
		{Scancode: 0x04, Action: ActionKey, Key: KeyF14},
		// Customizable Lenovo hotkey, long press
		{Scancode: 0x08, Action: ActionKey, Key: KeyFavorites},
		// Answer incoming call
		{Scancode: 0x0e, Action: ActionKey, Key: KeyPickupPhone},
		// Decline incoming call
		{Scancode: 0x0f, Action: ActionKey, Key: KeyHangupPhone},
		// Sound profile switch
		{Scancode: 0x12, Action: ActionKey, Key: KeyProg2},
		// Dark mode toggle
		{Scancode: 0x13, Action: ActionKey, Key: KeyProg3},
		// Lenovo Support
		{Scancode: 0x27, Action: ActionKey, Key: KeyHelp},
		// Virtual background application
		{Scancode: 0x28, Action: ActionKey, Key: KeyProg4},
	},
}

var builtinTables = map[string]*Table{
	ModelYoga914IAP7: yoga914IAP7,
	ModelYoga914ITL5: yoga914ITL5,
}

// dmiMatches maps DMI product-name substrings to model identifiers.
var dmiMatches = []struct {
	substr string
	model  string
}{
	{"Yoga 9 14IAP7", ModelYoga914IAP7},
	{"Yoga 9 14ITL5", ModelYoga914ITL5},
}

// ForModel returns the built-in table for a model identifier.
func ForModel(model string) (*Table, error) {
	if t, ok := builtinTables[strings.ToLower(model)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("no keymap for model %q (known: %s)", model, strings.Join(Models(), ", "))
}

// Detect matches a DMI product name against the known hardware variants.
// The second return value is false when the hardware is unsupported.
func Detect(productName string) (*Table, bool) {
	for _, m := range dmiMatches {
		if strings.Contains(productName, m.substr) {
			return builtinTables[m.model], true
		}
	}
	return nil, false
}

// Models returns the identifiers of all built-in tables, sorted.
func Models() []string {
	out := make([]string, 0, len(builtinTables))
	for m := range builtinTables {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}
