package sink

import (
	"log/slog"

	"github.com/mhuth/fnkeyd/keymap"
)

// Emission records a single key event delivered to a MemorySink.
type Emission struct {
	Key     keymap.Key
	Pressed bool
}

// MemoryRegistry hands out in-process sinks that record every emission.
// It backs dry-run operation (no uinput device is created) and tests.
type MemoryRegistry struct {
	// Logger, when set, logs each emission at debug level.
	Logger *slog.Logger

	// FailAllocation / FailRegistration force the corresponding
	// initialization error, for exercising failure paths.
	FailAllocation   error
	FailRegistration error

	last *MemorySink
}

// Register implements Registry.
func (r *MemoryRegistry) Register(name string, capabilities []keymap.Key) (Sink, error) {
	if r.FailAllocation != nil {
		return nil, &AllocationError{Err: r.FailAllocation}
	}
	if r.FailRegistration != nil {
		return nil, &RegistrationError{Err: r.FailRegistration}
	}
	caps := make([]keymap.Key, len(capabilities))
	copy(caps, capabilities)
	r.last = &MemorySink{name: name, caps: caps, logger: r.Logger}
	return r.last, nil
}

// Last returns the most recently registered sink, for inspection.
func (r *MemoryRegistry) Last() *MemorySink { return r.last }

// MemorySink records emissions instead of delivering them to the kernel.
type MemorySink struct {
	name      string
	caps      []keymap.Key
	logger    *slog.Logger
	emissions []Emission
	closed    bool
}

// Name returns the device name the sink was registered under.
func (s *MemorySink) Name() string { return s.name }

// Capabilities returns the key set declared at registration.
func (s *MemorySink) Capabilities() []keymap.Key { return s.caps }

// Emissions returns all recorded key events in delivery order.
func (s *MemorySink) Emissions() []Emission { return s.emissions }

// Closed reports whether the sink has been released.
func (s *MemorySink) Closed() bool { return s.closed }

func (s *MemorySink) Emit(key keymap.Key, pressed bool) error {
	if s.closed {
		return ErrClosed
	}
	s.emissions = append(s.emissions, Emission{Key: key, Pressed: pressed})
	if s.logger != nil {
		s.logger.Debug("key event", "key", key.String(), "pressed", pressed)
	}
	return nil
}

func (s *MemorySink) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}
