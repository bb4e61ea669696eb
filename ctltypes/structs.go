// Package ctltypes defines the request/response DTOs of the local control
// protocol shared by the daemon and command-line clients.
package ctltypes

import "fmt"

// CtlError represents an RFC 7807 (problem+json) error response.
type CtlError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e CtlError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type StatusResponse struct {
	Model        string `json:"model"`
	Device       string `json:"device"`
	TableSize    int    `json:"tableSize"`
	Capabilities int    `json:"capabilities"`
	Reported     uint64 `json:"reported"`
	Ignored      uint64 `json:"ignored"`
	Unknown      uint64 `json:"unknown"`
}

type KeymapEntry struct {
	Scancode string `json:"scancode"`
	Action   string `json:"action"`
	Key      string `json:"key,omitempty"`
}

type KeymapResponse struct {
	Model   string        `json:"model"`
	Entries []KeymapEntry `json:"entries"`
}

type InjectResponse struct {
	Scancode string `json:"scancode"`
	Outcome  string `json:"outcome"`
}
