// Package notify is the delivery layer between the platform notification
// source and the dispatcher. It validates the type-tagged payloads so only
// plain integer scancodes ever reach translation.
package notify

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/internal/log"
)

// PayloadType tags the shape of a notification payload.
type PayloadType int

const (
	// PayloadInteger is the only type the dispatcher accepts.
	PayloadInteger PayloadType = iota
	// PayloadMalformed covers anything the source could not parse into an
	// integer. Rejected here with a warning; never forwarded.
	PayloadMalformed
)

func (t PayloadType) String() string {
	switch t {
	case PayloadInteger:
		return "integer"
	default:
		return "malformed"
	}
}

// Payload is a single notification as delivered by a source. Raw carries
// the undecoded bytes for the raw event log.
type Payload struct {
	Type    PayloadType
	Integer uint64
	Raw     []byte
	Source  string
}

// IntegerPayload builds a valid scancode payload.
func IntegerPayload(source string, scancode uint64) Payload {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, scancode)
	return Payload{Type: PayloadInteger, Integer: scancode, Raw: raw, Source: source}
}

// Listener validates payloads and forwards scancodes into the dispatcher.
// Notify is not safe for concurrent use; all sources funnel through one
// delivery loop.
type Listener struct {
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	raw        log.RawLogger
}

func NewListener(d *dispatch.Dispatcher, logger *slog.Logger, raw log.RawLogger) *Listener {
	return &Listener{dispatcher: d, logger: logger, raw: raw}
}

// Notify handles one notification. Malformed payloads are dropped with a
// warning before any table lookup. Unknown scancodes are logged at info
// level and are never an error; firmware is free to grow new signals.
func (l *Listener) Notify(p Payload) dispatch.Outcome {
	l.raw.Log(p.Source, p.Raw)

	if p.Type != PayloadInteger {
		l.logger.Warn("notification payload is not an integer",
			"source", p.Source, "type", p.Type.String())
		return dispatch.OutcomeIgnored
	}

	outcome := l.dispatcher.HandleEvent(uint32(p.Integer))
	switch outcome {
	case dispatch.OutcomeUnknown:
		l.logger.Info("unknown scancode", "scancode", fmtScancode(uint32(p.Integer)))
	default:
		l.logger.Debug("scancode handled",
			"scancode", fmtScancode(uint32(p.Integer)), "outcome", outcome.String())
	}
	return outcome
}

func fmtScancode(code uint32) string {
	return fmt.Sprintf("0x%02x", code)
}
