package dispatch_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/keymap"
	"github.com/mhuth/fnkeyd/sink"
)

func newDispatcher(t *testing.T, model string) (*dispatch.Dispatcher, *sink.MemoryRegistry) {
	t.Helper()
	registry := &sink.MemoryRegistry{}
	table, err := keymap.ForModel(model)
	require.NoError(t, err)
	d, err := dispatch.New(registry, "test-fn-keys", table, slog.Default())
	require.NoError(t, err)
	return d, registry
}

func TestNewDeclaresCapabilities(t *testing.T) {
	d, registry := newDispatcher(t, keymap.ModelYoga914ITL5)
	defer func() { _ = d.Close() }()

	s := registry.Last()
	require.NotNil(t, s)
	assert.Equal(t, "test-fn-keys", s.Name())
	assert.Equal(t, d.Table().Capabilities(), s.Capabilities())
	assert.Len(t, s.Capabilities(), 9)
}

func TestNewAllocationFailure(t *testing.T) {
	registry := &sink.MemoryRegistry{FailAllocation: errors.New("no memory")}
	table, err := keymap.ForModel(keymap.ModelYoga914IAP7)
	require.NoError(t, err)

	_, err = dispatch.New(registry, "test-fn-keys", table, slog.Default())
	require.Error(t, err)
	var allocErr *sink.AllocationError
	assert.ErrorAs(t, err, &allocErr)
}

func TestNewRegistrationFailure(t *testing.T) {
	registry := &sink.MemoryRegistry{FailRegistration: errors.New("registry rejected device")}
	table, err := keymap.ForModel(keymap.ModelYoga914IAP7)
	require.NoError(t, err)

	_, err = dispatch.New(registry, "test-fn-keys", table, slog.Default())
	require.Error(t, err)
	var regErr *sink.RegistrationError
	assert.ErrorAs(t, err, &regErr)
}

func TestHandleEvent(t *testing.T) {
	tests := []struct {
		name          string
		model         string
		scancode      uint32
		wantOutcome   dispatch.Outcome
		wantEmissions []sink.Emission
	}{
		{
			name:        "key scancode emits press then release",
			model:       keymap.ModelYoga914IAP7,
			scancode:    0x01,
			wantOutcome: dispatch.OutcomeReported,
			wantEmissions: []sink.Emission{
				{Key: keymap.KeyMacro1, Pressed: true},
				{Key: keymap.KeyMacro1, Pressed: false},
			},
		},
		{
			name:        "snipping key on second revision",
			model:       keymap.ModelYoga914ITL5,
			scancode:    0x04,
			wantOutcome: dispatch.OutcomeReported,
			wantEmissions: []sink.Emission{
				{Key: keymap.KeyF14, Pressed: true},
				{Key: keymap.KeyF14, Pressed: false},
			},
		},
		{
			name:          "ignored scancode emits nothing",
			model:         keymap.ModelYoga914IAP7,
			scancode:      0x02,
			wantOutcome:   dispatch.OutcomeIgnored,
			wantEmissions: nil,
		},
		{
			name:          "unknown scancode emits nothing",
			model:         keymap.ModelYoga914IAP7,
			scancode:      0x99,
			wantOutcome:   dispatch.OutcomeUnknown,
			wantEmissions: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, registry := newDispatcher(t, tt.model)
			defer func() { _ = d.Close() }()

			outcome := d.HandleEvent(tt.scancode)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantEmissions, registry.Last().Emissions())
		})
	}
}

func TestHandleEventUnknownIsIdempotent(t *testing.T) {
	d, registry := newDispatcher(t, keymap.ModelYoga914IAP7)
	defer func() { _ = d.Close() }()

	assert.Equal(t, dispatch.OutcomeUnknown, d.HandleEvent(0x99))
	assert.Equal(t, dispatch.OutcomeUnknown, d.HandleEvent(0x99))
	assert.Empty(t, registry.Last().Emissions())
	assert.Equal(t, uint64(2), d.Stats().Unknown)
}

func TestStats(t *testing.T) {
	d, _ := newDispatcher(t, keymap.ModelYoga914IAP7)
	defer func() { _ = d.Close() }()

	d.HandleEvent(0x01) // reported
	d.HandleEvent(0x02) // ignored
	d.HandleEvent(0x03) // ignored
	d.HandleEvent(0x99) // unknown

	stats := d.Stats()
	assert.Equal(t, uint64(1), stats.Reported)
	assert.Equal(t, uint64(2), stats.Ignored)
	assert.Equal(t, uint64(1), stats.Unknown)
}

func TestCloseReleasesSink(t *testing.T) {
	d, registry := newDispatcher(t, keymap.ModelYoga914IAP7)

	require.NoError(t, d.Close())
	s := registry.Last()
	assert.True(t, s.Closed())

	// Emission through the stale handle is rejected.
	err := s.Emit(keymap.KeyProg1, true)
	assert.ErrorIs(t, err, sink.ErrClosed)
}

func TestDoubleClose(t *testing.T) {
	d, _ := newDispatcher(t, keymap.ModelYoga914IAP7)

	require.NoError(t, d.Close())
	assert.ErrorIs(t, d.Close(), dispatch.ErrTornDown)
}
