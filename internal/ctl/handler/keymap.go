package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mhuth/fnkeyd/ctltypes"
	"github.com/mhuth/fnkeyd/internal/ctl"
	"github.com/mhuth/fnkeyd/keymap"
)

// Keymap returns a handler that dumps the active translation table.
func Keymap(t *keymap.Table) ctl.HandlerFunc {
	return func(req *ctl.Request, res *ctl.Response, logger *slog.Logger) error {
		entries := t.Entries()
		payload := ctltypes.KeymapResponse{
			Model:   t.Model(),
			Entries: make([]ctltypes.KeymapEntry, 0, len(entries)),
		}
		for _, e := range entries {
			ke := ctltypes.KeymapEntry{Scancode: fmt.Sprintf("0x%02x", e.Scancode)}
			switch e.Action {
			case keymap.ActionIgnore:
				ke.Action = "ignore"
			default:
				ke.Action = "key"
				ke.Key = e.Key.String()
			}
			payload.Entries = append(payload.Entries, ke)
		}
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
