// Package ctl implements the local control server: a unix-socket command
// protocol for inspecting the running daemon and injecting test scancodes.
// Requests are a null-terminated "path [payload]" line; responses are a
// single line of JSON, errors as problem-JSON. Access control is the
// socket's file permissions; there is no authentication.
package ctl

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
)

// Server serves control commands on a unix socket.
type Server struct {
	path   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
}

// New creates a control server bound to the given socket path.
func New(socketPath string, logger *slog.Logger) *Server {
	return &Server{
		path:   socketPath,
		logger: logger,
		router: NewRouter(),
	}
}

// Router returns the router so callers can register handlers.
func (s *Server) Router() *Router { return s.router }

// Start listens on the configured socket and serves incoming commands.
// A stale socket file from a previous run is removed first.
func (s *Server) Start() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ctl: removing stale socket: %w", err)
	}
	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("ctl: listen on %s: %w", s.path, err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		_ = ln.Close()
		return fmt.Errorf("ctl: restricting socket permissions: %w", err)
	}
	s.ln = ln
	s.logger.Info("control socket listening", "path", s.path)
	go s.serve()
	return nil
}

// Close stops the control server and removes the socket file.
func (s *Server) Close() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
	_ = os.Remove(s.path)
}

func (s *Server) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.logger.Info("control server stopped")
				return
			}
			s.logger.Info("control accept error", "error", err)
			return
		}
		go s.handleConn(c)
	}
}

func (s *Server) writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(WrapError(err))
	fmt.Fprintf(w, "%s\n", string(problemJSON))
}

func (s *Server) writeOK(w io.Writer, rest string) {
	if rest == "" {
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "%s\n", rest)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := s.logger.With("ctl", s.path)
	r := bufio.NewReader(conn)
	w := conn

	// Read until null terminator
	reqData, err := r.ReadString('\x00')
	if err != nil {
		if err == io.EOF {
			connLogger.Error("ctl incomplete request (no null terminator)")
		} else {
			connLogger.Error("read ctl data", "error", err)
		}
		return
	}
	reqData = strings.TrimSuffix(reqData, "\x00")

	if strings.TrimSpace(reqData) == "" {
		connLogger.Error("ctl empty command")
		s.writeError(w, ErrBadRequest("empty request"))
		return
	}

	path, payload, _ := strings.Cut(reqData, " ")
	path = strings.ToLower(strings.TrimSpace(path))
	payload = strings.TrimSpace(payload)

	if path == "" {
		s.writeError(w, ErrBadRequest("empty path"))
		return
	}

	connLogger.Debug("ctl cmd", "path", path)

	h, params := s.router.Match(path)
	if h == nil {
		connLogger.Error("ctl unknown path", "path", path)
		s.writeError(w, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
		return
	}

	req := &Request{Ctx: connCtx, Params: params, Payload: payload}
	res := &Response{}
	if err := h(req, res, connLogger); err != nil {
		connLogger.Error("ctl handler error", "path", path, "error", err)
		s.writeError(w, err)
		return
	}
	s.writeOK(w, res.JSON)
}
