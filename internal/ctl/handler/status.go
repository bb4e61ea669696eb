package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/mhuth/fnkeyd/ctltypes"
	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/internal/ctl"
)

// Status returns a handler reporting the active table and outcome tallies.
// Error logging is centralized in the control server.
func Status(d *dispatch.Dispatcher, deviceName string) ctl.HandlerFunc {
	return func(req *ctl.Request, res *ctl.Response, logger *slog.Logger) error {
		stats := d.Stats()
		table := d.Table()
		payload := ctltypes.StatusResponse{
			Model:        table.Model(),
			Device:       deviceName,
			TableSize:    table.Len(),
			Capabilities: len(table.Capabilities()),
			Reported:     stats.Reported,
			Ignored:      stats.Ignored,
			Unknown:      stats.Unknown,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
