package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
)

// handleForward relays offer/answer/ice-candidate frames to the target
// connection untouched. Only the target field is parsed; the payload
// itself is opaque to the relay.
func (ctl *Controller) handleForward(connID core.ConnID, kind string, data []byte) {
	var p struct {
		Target string `json:"target"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Target == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Str("kind", kind).Msg("forward without target")
		return
	}
	log.Debug().Str("module", "signal").Str("kind", kind).
		Str("from", string(connID)).Str("target", p.Target).Msg("forwarding")
	ctl.Router.ToConnRaw(core.ConnID(p.Target), core.Frame(data))
}
