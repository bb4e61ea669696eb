package handler_test

import (
	"bufio"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/internal/ctl"
	"github.com/mhuth/fnkeyd/internal/ctl/handler"
	"github.com/mhuth/fnkeyd/keymap"
	"github.com/mhuth/fnkeyd/sink"
)

// startCtlServer boots a control server on a temp socket with the given
// routes and returns the socket path.
func startCtlServer(t *testing.T, register func(r *ctl.Router)) string {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "fnkeyd.sock")
	srv := ctl.New(sock, slog.Default())
	register(srv.Router())
	require.NoError(t, srv.Start())
	t.Cleanup(srv.Close)
	return sock
}

// do sends one null-terminated command and returns the single-line reply.
func do(t *testing.T, sock, cmd string) string {
	t.Helper()
	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write(append([]byte(cmd), 0))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	return strings.TrimSuffix(line, "\n")
}

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	table, err := keymap.ForModel(keymap.ModelYoga914ITL5)
	require.NoError(t, err)
	d, err := dispatch.New(&sink.MemoryRegistry{}, "test-fn-keys", table, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestPing(t *testing.T) {
	sock := startCtlServer(t, func(r *ctl.Router) {
		r.Register("ping", handler.Ping("fnkeyd", "test"))
	})
	assert.Equal(t, `{"server":"fnkeyd","version":"test"}`, do(t, sock, "ping"))
}

func TestStatus(t *testing.T) {
	d := newDispatcher(t)
	d.HandleEvent(0x01) // reported
	d.HandleEvent(0x02) // ignored
	d.HandleEvent(0x99) // unknown

	sock := startCtlServer(t, func(r *ctl.Router) {
		r.Register("status", handler.Status(d, "test-fn-keys"))
	})

	resp := do(t, sock, "status")
	assert.Contains(t, resp, `"model":"yoga9-14itl5"`)
	assert.Contains(t, resp, `"tableSize":11`)
	assert.Contains(t, resp, `"capabilities":9`)
	assert.Contains(t, resp, `"reported":1`)
	assert.Contains(t, resp, `"ignored":1`)
	assert.Contains(t, resp, `"unknown":1`)
}

func TestKeymap(t *testing.T) {
	table, err := keymap.ForModel(keymap.ModelYoga914IAP7)
	require.NoError(t, err)

	sock := startCtlServer(t, func(r *ctl.Router) {
		r.Register("keymap", handler.Keymap(table))
	})

	resp := do(t, sock, "keymap")
	assert.Contains(t, resp, `"model":"yoga9-14iap7"`)
	assert.Contains(t, resp, `{"scancode":"0x01","action":"key","key":"MACRO1"}`)
	assert.Contains(t, resp, `{"scancode":"0x02","action":"ignore"}`)
}

func TestInject(t *testing.T) {
	d := newDispatcher(t)
	inject := func(scancode uint64) dispatch.Outcome {
		return d.HandleEvent(uint32(scancode))
	}

	sock := startCtlServer(t, func(r *ctl.Router) {
		r.Register("inject", handler.Inject(inject))
	})

	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{name: "hex key scancode", cmd: "inject 0x04", want: `{"scancode":"0x04","outcome":"reported"}`},
		{name: "decimal scancode", cmd: "inject 2", want: `{"scancode":"0x02","outcome":"ignored"}`},
		{name: "unknown scancode", cmd: "inject 0x99", want: `{"scancode":"0x99","outcome":"unknown"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, sock, tt.cmd))
		})
	}
}

func TestInjectBadRequest(t *testing.T) {
	sock := startCtlServer(t, func(r *ctl.Router) {
		r.Register("inject", handler.Inject(func(uint64) dispatch.Outcome { return dispatch.OutcomeIgnored }))
	})

	assert.Contains(t, do(t, sock, "inject zzz"), `"status":400`)
	assert.Contains(t, do(t, sock, "inject"), `"status":400`)
}

func TestUnknownPath(t *testing.T) {
	sock := startCtlServer(t, func(r *ctl.Router) {})
	assert.Contains(t, do(t, sock, "nonsense"), `"status":404`)
}
