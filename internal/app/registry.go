package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
	"github.com/akeyre/parley/internal/domain"
)

// binding records which room identity a connection currently holds.
// Pending requesters are indexed too so their disconnects clear the
// host's queue.
type binding struct {
	Room    domain.RoomID
	User    domain.UserID
	Pending bool
}

// Registry is the handle -> connection and handle -> (room, user)
// index. It makes disconnect handling O(1) instead of a scan over all
// rooms, and it is mutated under the Manager's event lock alongside
// the Store so the two never drift apart.
type Registry struct {
	mu       sync.RWMutex
	conns    map[core.ConnID]core.SignalConn
	bindings map[core.ConnID]binding
}

func NewRegistry() *Registry {
	return &Registry{
		conns:    make(map[core.ConnID]core.SignalConn),
		bindings: make(map[core.ConnID]binding),
	}
}

func (r *Registry) Register(id core.ConnID, conn core.SignalConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = conn
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("registered connection")
}

func (r *Registry) Unregister(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	delete(r.bindings, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unregistered connection")
}

func (r *Registry) Conn(id core.ConnID) (core.SignalConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[id]
	return c, ok
}

// BindRoom associates a connection with a room identity, replacing any
// previous binding (one active session per connection).
func (r *Registry) BindRoom(id core.ConnID, room domain.RoomID, user domain.UserID, pending bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[id] = binding{Room: room, User: user, Pending: pending}
}

func (r *Registry) ClearRoom(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, id)
}

func (r *Registry) Binding(id core.ConnID) (binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[id]
	return b, ok
}
