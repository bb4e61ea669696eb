// Package dispatch converts incoming firmware scancodes into synthetic key
// events on a registered input sink.
package dispatch

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/mhuth/fnkeyd/keymap"
	"github.com/mhuth/fnkeyd/sink"
)

// Outcome classifies the handling of a single scancode.
type Outcome int

const (
	// OutcomeReported means a key press/release pair was emitted.
	OutcomeReported Outcome = iota
	// OutcomeIgnored means the scancode is known but deliberately dropped.
	OutcomeIgnored
	// OutcomeUnknown means the scancode is not in the table. Expected when
	// firmware introduces signals the current table does not cover; never
	// fatal.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReported:
		return "reported"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// ErrTornDown is returned when Close is called on an already torn down
// dispatcher. Teardown before a successful initialization cannot occur by
// construction; a second teardown is a caller bug.
var ErrTornDown = errors.New("dispatch: already torn down")

// Stats are running tallies of event outcomes since initialization.
type Stats struct {
	Reported uint64 `json:"reported"`
	Ignored  uint64 `json:"ignored"`
	Unknown  uint64 `json:"unknown"`
}

// Dispatcher owns the registered input sink and translates scancodes
// through an immutable keymap table. HandleEvent is not reentrant-safe;
// callers must serialize deliveries.
type Dispatcher struct {
	table  *keymap.Table
	sink   sink.Sink
	logger *slog.Logger

	reported atomic.Uint64
	ignored  atomic.Uint64
	unknown  atomic.Uint64
}

// New registers an input sink seeded with the table's full capability set
// and returns a dispatcher owning it. The registry guarantees that on a
// registration failure the underlying device resource has already been
// released, so there is nothing to clean up on the error path here.
func New(registry sink.Registry, deviceName string, table *keymap.Table, logger *slog.Logger) (*Dispatcher, error) {
	caps := table.Capabilities()
	s, err := registry.Register(deviceName, caps)
	if err != nil {
		return nil, err
	}
	logger.Info("input device registered",
		"name", deviceName,
		"model", table.Model(),
		"capabilities", len(caps))
	return &Dispatcher{table: table, sink: s, logger: logger}, nil
}

// Table returns the keymap table the dispatcher translates through.
func (d *Dispatcher) Table() *keymap.Table { return d.table }

// Stats returns the outcome tallies accumulated so far. Safe to call
// concurrently with HandleEvent.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Reported: d.reported.Load(),
		Ignored:  d.ignored.Load(),
		Unknown:  d.unknown.Load(),
	}
}

// HandleEvent translates one scancode. Key entries emit exactly a press
// followed by a release; every incoming scancode is a discrete pulse, the
// firmware never signals held state. Emission errors are logged and the
// event still counts as reported; the translation itself cannot fail.
func (d *Dispatcher) HandleEvent(scancode uint32) Outcome {
	entry, ok := d.table.Lookup(scancode)
	if !ok {
		d.unknown.Add(1)
		return OutcomeUnknown
	}
	switch entry.Action {
	case keymap.ActionIgnore:
		d.ignored.Add(1)
		return OutcomeIgnored
	default:
		if err := d.sink.Emit(entry.Key, true); err != nil {
			d.logger.Error("emit key press", "key", entry.Key.String(), "error", err)
		}
		if err := d.sink.Emit(entry.Key, false); err != nil {
			d.logger.Error("emit key release", "key", entry.Key.String(), "error", err)
		}
		d.reported.Add(1)
		return OutcomeReported
	}
}

// Close unregisters and releases the input sink. A second Close returns
// ErrTornDown.
func (d *Dispatcher) Close() error {
	if d.sink == nil {
		return ErrTornDown
	}
	err := d.sink.Close()
	d.sink = nil
	if err != nil {
		return fmt.Errorf("dispatch: releasing sink: %w", err)
	}
	return nil
}
