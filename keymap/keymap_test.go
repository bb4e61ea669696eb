package keymap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuth/fnkeyd/keymap"
)

func TestLookup(t *testing.T) {
	table, err := keymap.ForModel(keymap.ModelYoga914ITL5)
	require.NoError(t, err)

	tests := []struct {
		name       string
		scancode   uint32
		wantFound  bool
		wantAction keymap.Action
		wantKey    keymap.Key
	}{
		{name: "customizable hotkey", scancode: 0x01, wantFound: true, wantAction: keymap.ActionKey, wantKey: keymap.KeyProg1},
		{name: "fnlock disable ignored", scancode: 0x02, wantFound: true, wantAction: keymap.ActionIgnore},
		{name: "fnlock enable ignored", scancode: 0x03, wantFound: true, wantAction: keymap.ActionIgnore},
		{name: "snipping tool", scancode: 0x04, wantFound: true, wantAction: keymap.ActionKey, wantKey: keymap.KeyF14},
		{name: "pickup phone", scancode: 0x0e, wantFound: true, wantAction: keymap.ActionKey, wantKey: keymap.KeyPickupPhone},
		{name: "hangup phone", scancode: 0x0f, wantFound: true, wantAction: keymap.ActionKey, wantKey: keymap.KeyHangupPhone},
		{name: "absent scancode", scancode: 0x99, wantFound: false},
		{name: "zero scancode", scancode: 0x00, wantFound: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, found := table.Lookup(tt.scancode)
			assert.Equal(t, tt.wantFound, found)
			if !tt.wantFound {
				return
			}
			assert.Equal(t, tt.wantAction, entry.Action)
			if tt.wantAction == keymap.ActionKey {
				assert.Equal(t, tt.wantKey, entry.Key)
			}
		})
	}
}

func TestLookupIsPure(t *testing.T) {
	table, err := keymap.ForModel(keymap.ModelYoga914IAP7)
	require.NoError(t, err)

	// Same unknown scancode twice: no hidden state may accumulate.
	_, found1 := table.Lookup(0x99)
	_, found2 := table.Lookup(0x99)
	assert.False(t, found1)
	assert.False(t, found2)
}

func TestScancodesUniquePerTable(t *testing.T) {
	for _, model := range keymap.Models() {
		table, err := keymap.ForModel(model)
		require.NoError(t, err)
		seen := map[uint32]bool{}
		for _, e := range table.Entries() {
			assert.Falsef(t, seen[e.Scancode], "%s: duplicate scancode 0x%02x", model, e.Scancode)
			seen[e.Scancode] = true
		}
	}
}

func TestCapabilities(t *testing.T) {
	table, err := keymap.ForModel(keymap.ModelYoga914ITL5)
	require.NoError(t, err)

	caps := table.Capabilities()
	assert.Len(t, caps, 9)
	assert.Contains(t, caps, keymap.KeyF14)
	assert.Contains(t, caps, keymap.KeyPickupPhone)
	assert.NotContains(t, caps, keymap.Key(0))
	for i := 1; i < len(caps); i++ {
		assert.Less(t, caps[i-1], caps[i], "capabilities must be sorted and distinct")
	}
}

func TestVariantTablesDiverge(t *testing.T) {
	iap7, err := keymap.ForModel(keymap.ModelYoga914IAP7)
	require.NoError(t, err)
	itl5, err := keymap.ForModel(keymap.ModelYoga914ITL5)
	require.NoError(t, err)

	// The two revisions assign different keys to the same scancodes.
	for _, scancode := range []uint32{0x01, 0x04, 0x13, 0x28} {
		a, found := iap7.Lookup(scancode)
		require.True(t, found)
		b, found := itl5.Lookup(scancode)
		require.True(t, found)
		assert.NotEqualf(t, a.Key, b.Key, "scancode 0x%02x should differ between revisions", scancode)
	}

	// Telephony hotkeys exist only on the 14ITL5.
	_, found := iap7.Lookup(0x0e)
	assert.False(t, found)
}

func TestForModelUnknown(t *testing.T) {
	_, err := keymap.ForModel("yoga9-99xyz")
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		product   string
		wantModel string
		wantOK    bool
	}{
		{product: "Lenovo Yoga 9 14IAP7", wantModel: keymap.ModelYoga914IAP7, wantOK: true},
		{product: "Yoga 9 14ITL5", wantModel: keymap.ModelYoga914ITL5, wantOK: true},
		{product: "ThinkPad X1 Carbon", wantOK: false},
		{product: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.product, func(t *testing.T) {
			table, ok := keymap.Detect(tt.product)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantModel, table.Model())
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "F14", keymap.KeyF14.String())
	assert.Equal(t, "PICKUP_PHONE", keymap.KeyPickupPhone.String())
	assert.Equal(t, "0x123", keymap.Key(0x123).String())
}
