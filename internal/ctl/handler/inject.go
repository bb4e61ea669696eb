package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mhuth/fnkeyd/ctltypes"
	"github.com/mhuth/fnkeyd/dispatch"
	"github.com/mhuth/fnkeyd/internal/ctl"
)

// InjectFunc feeds a scancode through the daemon's serialized delivery
// loop, exactly as if the firmware had sent it, and reports the outcome.
type InjectFunc func(scancode uint64) dispatch.Outcome

// Inject returns a handler that translates a caller-supplied scancode.
// Accepts decimal or 0x-prefixed hex. Intended for validating mappings on
// new hardware without touching the keyboard firmware.
func Inject(inject InjectFunc) ctl.HandlerFunc {
	return func(req *ctl.Request, res *ctl.Response, logger *slog.Logger) error {
		if req.Payload == "" {
			return ctl.ErrBadRequest("missing scancode")
		}
		code, err := strconv.ParseUint(req.Payload, 0, 32)
		if err != nil {
			return ctl.ErrBadRequest(fmt.Sprintf("invalid scancode %q: %v", req.Payload, err))
		}

		outcome := inject(code)

		b, err := json.Marshal(ctltypes.InjectResponse{
			Scancode: fmt.Sprintf("0x%02x", code),
			Outcome:  outcome.String(),
		})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
