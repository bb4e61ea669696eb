// Package sink abstracts the registered output device through which
// synthetic key events reach the host input subsystem.
package sink

import (
	"errors"
	"fmt"

	"github.com/mhuth/fnkeyd/keymap"
)

// ErrClosed is returned by Emit after the sink has been released.
var ErrClosed = errors.New("sink: device released")

// Sink is an exclusively owned handle to a registered input device.
// It is not safe for concurrent use; the dispatcher serializes access.
type Sink interface {
	// Emit delivers a single key event. pressed=true is key-down.
	Emit(key keymap.Key, pressed bool) error
	// Close unregisters and releases the device. A second Close is an error.
	Close() error
}

// Registry creates and registers sinks with the host input subsystem.
// The capability set announces every key the sink may ever emit, so
// downstream consumers know it in advance.
type Registry interface {
	Register(name string, capabilities []keymap.Key) (Sink, error)
}

// AllocationError reports that the device resource could not be created.
// Fatal to initialization; nothing was registered.
type AllocationError struct {
	Err error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("sink: allocating input device: %v", e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// RegistrationError reports that the host registry rejected the device.
// Fatal to initialization; the underlying resource has already been
// released when this error is returned.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("sink: registering input device: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }
