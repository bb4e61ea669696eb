package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/mhuth/fnkeyd/ctltypes"
	"github.com/mhuth/fnkeyd/internal/ctl"
)

// Ping returns a handler that reports server identity and version.
func Ping(server, version string) ctl.HandlerFunc {
	return func(req *ctl.Request, res *ctl.Response, logger *slog.Logger) error {
		b, err := json.Marshal(ctltypes.PingResponse{Server: server, Version: version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
