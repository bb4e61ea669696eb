package notify

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
)

// AcpidSource reads newline-delimited ACPI events from the acpid socket
// and converts matching lines into notification payloads. Event lines have
// the form "class device type data" with type and data in hex, e.g.
//
//	wmi PNP0C14:01 000000d0 00000001
//
// Only the data field matters here; it carries the firmware scancode.
// Device and GUID discovery happen outside this daemon: the event class to
// match comes from configuration.
type AcpidSource struct {
	SocketPath string
	EventClass string
	Logger     *slog.Logger
}

// Run connects to the acpid socket and delivers payloads until the context
// is cancelled or the socket closes. No reconnects are attempted; a closed
// source ends the run and the service manager decides whether to re-probe.
func (s *AcpidSource) Run(ctx context.Context, deliver func(Payload)) error {
	conn, err := net.Dial("unix", s.SocketPath)
	if err != nil {
		return fmt.Errorf("notify: connecting to acpid socket %s: %w", s.SocketPath, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	s.Logger.Info("listening for ACPI events",
		"socket", s.SocketPath, "class", s.EventClass)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, ok := s.parseLine(line)
		if !ok {
			continue
		}
		deliver(p)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("notify: reading acpid socket: %w", err)
	}
	return fmt.Errorf("notify: acpid socket closed: %w", io.EOF)
}

// parseLine filters on the configured event class and decodes the data
// field. Lines whose data field is not a hex integer still produce a
// payload, tagged malformed, so the listener can warn about them.
func (s *AcpidSource) parseLine(line string) (Payload, bool) {
	fields := strings.Fields(line)
	if len(fields) < 1 || !strings.HasPrefix(fields[0], s.EventClass) {
		return Payload{}, false
	}
	if len(fields) < 4 {
		s.Logger.Debug("short ACPI event line", "line", line)
		return Payload{Type: PayloadMalformed, Raw: []byte(line), Source: "acpid"}, true
	}

	data, err := strconv.ParseUint(fields[3], 16, 64)
	if err != nil {
		return Payload{Type: PayloadMalformed, Raw: []byte(line), Source: "acpid"}, true
	}
	p := IntegerPayload("acpid", data)
	p.Raw = []byte(line)
	return p, true
}
