package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
)

// Router is the stateless fan-out over the registry. Delivery is
// fire-and-forget: TrySend never blocks, and an unknown or stalled
// target is a drop, not an error, since the remote peer may already
// be gone.
type Router struct {
	reg *Registry
}

func NewRouter(reg *Registry) *Router {
	return &Router{reg: reg}
}

// ToConn marshals v and delivers it to a single connection handle.
func (rt *Router) ToConn(id core.ConnID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("marshal outbound event")
		return
	}
	rt.ToConnRaw(id, b)
}

// ToConnRaw delivers an already-encoded frame verbatim. This is the
// path negotiation payloads take; they are never inspected.
func (rt *Router) ToConnRaw(id core.ConnID, data core.Frame) {
	conn, ok := rt.reg.Conn(id)
	if !ok {
		log.Debug().Str("module", "app.router").Str("conn", string(id)).Msg("target not connected, dropping")
		return
	}
	if err := conn.TrySend(data); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("conn", string(id)).Msg("send failed, dropping")
	}
}

// ToRoom broadcasts v to the given connection handles, optionally
// excluding one (the sender, for self-initiated joins).
func (rt *Router) ToRoom(conns []core.ConnID, v any, exclude core.ConnID) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("marshal broadcast event")
		return
	}
	for _, id := range conns {
		if exclude != "" && id == exclude {
			continue
		}
		rt.ToConnRaw(id, b)
	}
}
