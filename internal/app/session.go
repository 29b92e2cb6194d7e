package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
	"github.com/akeyre/parley/internal/domain"
)

// Error strings surfaced to clients as room-error events. The first
// two match the reference server's wording.
const (
	errRoomNotFound  = "Room does not exist."
	errNoHost        = "No host in the room."
	errAlreadyMember = "Already a member of this room."
	errRoomClosed    = "Room closed."
)

// Manager is the session state machine. Every inbound event is
// serialized by one mutex so the Store and the Registry always mutate
// together; outbound delivery is fire-and-forget and therefore safe to
// do while the lock is held.
type Manager struct {
	mu         sync.Mutex
	store      *Store
	reg        *Registry
	router     *Router
	notFound   RoomNotFoundPolicy
	pendingTTL time.Duration
}

func NewManager(store *Store, reg *Registry, router *Router, notFound RoomNotFoundPolicy, pendingTTL time.Duration) *Manager {
	return &Manager{
		store:      store,
		reg:        reg,
		router:     router,
		notFound:   notFound,
		pendingTTL: pendingTTL,
	}
}

// CreateRoom creates a room for an unused id and makes the creator its
// first member (and host, for host-approval rooms). Creation is
// first-writer-wins: an existing room keeps its policy and the request
// is handled as a join under that policy instead.
func (m *Manager) CreateRoom(conn core.ConnID, room string, p domain.Participant, vis domain.Visibility, password string) {
	meta, err := domain.NewRoom(room, vis, password)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.session").Str("room", room).Msg("invalid create-room, dropping")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	st, created := m.store.CreateIfAbsent(meta)
	if !created {
		m.admitLocked(conn, st.meta.ID, p, password)
		return
	}
	m.detachLocked(conn)
	entry := memberEntry{Part: p, Conn: conn}
	st.members[p.ID] = entry
	if meta.Visibility == domain.VisibilityHostApproval {
		host := entry
		st.host = &host
	}
	m.reg.BindRoom(conn, meta.ID, p.ID, false)
	log.Info().Str("module", "app.session").Str("room", string(meta.ID)).
		Str("user", string(p.ID)).Str("visibility", meta.Visibility.String()).Msg("room created")
}

// ProvisionRoom reserves a room ahead of any event connection (the
// REST surface). The empty-room deletion rule only fires on member
// removal, so a provisioned room waits intact for its first joiner.
func (m *Manager) ProvisionRoom(room string, public bool, password string) (bool, error) {
	vis := domain.VisibilityPassword
	if public {
		vis = domain.VisibilityOpen
	}
	meta, err := domain.NewRoom(room, vis, password)
	if err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, created := m.store.CreateIfAbsent(meta)
	if created {
		log.Info().Str("module", "app.session").Str("room", string(meta.ID)).
			Str("visibility", vis.String()).Msg("room provisioned")
	}
	return created, nil
}

// RoomCount reports how many rooms currently exist.
func (m *Manager) RoomCount() int {
	return m.store.Len()
}

// Join admits a requester according to the room's visibility.
func (m *Manager) Join(conn core.ConnID, room string, p domain.Participant, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admitLocked(conn, domain.RoomID(room), p, password)
}

func (m *Manager) admitLocked(conn core.ConnID, roomID domain.RoomID, p domain.Participant, password string) {
	st, ok := m.store.Get(roomID)
	if !ok {
		m.roomNotFoundLocked(conn, roomID)
		return
	}
	if _, dup := st.members[p.ID]; dup {
		m.router.ToConn(conn, core.NewRoomError(errAlreadyMember))
		return
	}
	// Gate checks come before anything destructive: a refused join must
	// not disturb the session the connection already holds.
	if st.meta.Visibility == domain.VisibilityPassword && password != st.meta.Password {
		// Silent: a bad password leaks nothing, not even room existence.
		log.Debug().Str("module", "app.session").Str("room", string(roomID)).Msg("bad password, dropping join")
		return
	}
	if st.meta.Visibility == domain.VisibilityHostApproval && st.host == nil {
		m.router.ToConn(conn, core.NewRoomError(errNoHost))
		return
	}

	// Admission will proceed; release any session this connection holds.
	// That can empty (and thus delete) another room, or even this one if
	// the connection was its last member under a different identity.
	m.detachLocked(conn)
	st, ok = m.store.Get(roomID)
	if !ok {
		m.roomNotFoundLocked(conn, roomID)
		return
	}

	if st.meta.Visibility == domain.VisibilityHostApproval {
		if st.host == nil {
			m.router.ToConn(conn, core.NewRoomError(errNoHost))
			return
		}
		m.enqueuePendingLocked(conn, st, p)
		return
	}

	st.members[p.ID] = memberEntry{Part: p, Conn: conn}
	m.reg.BindRoom(conn, roomID, p.ID, false)
	m.router.ToRoom(st.conns(""), core.NewUserJoined(p, conn), conn)
	log.Info().Str("module", "app.session").Str("room", string(roomID)).Str("user", string(p.ID)).Msg("member joined")
}

func (m *Manager) enqueuePendingLocked(conn core.ConnID, st *roomState, p domain.Participant) {
	if i := st.findPending(p.ID); i >= 0 {
		// Re-join while pending: refresh the handle and nudge the host
		// again, but keep a single queue entry per user.
		old := st.pending[i]
		if old.Conn != conn {
			m.reg.ClearRoom(old.Conn)
		}
		st.pending[i] = pendingEntry{Part: p, Conn: conn, Since: time.Now()}
	} else {
		st.pending = append(st.pending, pendingEntry{Part: p, Conn: conn, Since: time.Now()})
	}
	m.reg.BindRoom(conn, st.meta.ID, p.ID, true)
	m.router.ToConn(st.host.Conn, core.NewJoinRequest(p))
	log.Info().Str("module", "app.session").Str("room", string(st.meta.ID)).Str("user", string(p.ID)).Msg("join request queued")
}

// Approve moves a pending requester into the member set. Only the
// host's connection may approve; an unknown pending user is a no-op.
func (m *Manager) Approve(conn core.ConnID, room string, userID domain.UserID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.store.Get(domain.RoomID(room))
	if !ok {
		return
	}
	if st.host == nil || st.host.Conn != conn {
		log.Warn().Str("module", "app.session").Str("room", room).Str("user", string(userID)).Msg("approve from non-host, ignoring")
		return
	}
	i := st.findPending(userID)
	if i < 0 {
		return
	}
	entry := st.dropPendingAt(i)
	st.members[userID] = memberEntry{Part: entry.Part, Conn: entry.Conn}
	m.reg.BindRoom(entry.Conn, st.meta.ID, userID, false)
	m.router.ToRoom(st.conns(""), core.NewUserJoined(entry.Part, entry.Conn), "")
	log.Info().Str("module", "app.session").Str("room", room).Str("user", string(userID)).Msg("join approved")
}

// Reject drops a pending requester and tells only them. Idempotent:
// a second reject for the same user finds no entry and does nothing.
func (m *Manager) Reject(conn core.ConnID, room string, userID domain.UserID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.store.Get(domain.RoomID(room))
	if !ok {
		return
	}
	if st.host == nil || st.host.Conn != conn {
		log.Warn().Str("module", "app.session").Str("room", room).Str("user", string(userID)).Msg("reject from non-host, ignoring")
		return
	}
	i := st.findPending(userID)
	if i < 0 {
		return
	}
	entry := st.dropPendingAt(i)
	m.reg.ClearRoom(entry.Conn)
	m.router.ToConn(entry.Conn, core.NewJoinRejected(userID))
	log.Info().Str("module", "app.session").Str("room", room).Str("user", string(userID)).Msg("join rejected")
}

// Chat broadcasts a message to every member, sender included.
func (m *Manager) Chat(conn core.ConnID, room string, userID domain.UserID, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.store.Get(domain.RoomID(room))
	if !ok {
		return
	}
	m.router.ToRoom(st.conns(""), core.NewChatMessage(userID, message), "")
}

// Leave removes a member (or a still-pending requester) from a room.
func (m *Manager) Leave(conn core.ConnID, room string, userID domain.UserID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.store.Get(domain.RoomID(room))
	if !ok {
		return
	}
	if i := st.findPending(userID); i >= 0 {
		entry := st.dropPendingAt(i)
		m.reg.ClearRoom(entry.Conn)
		return
	}
	m.removeMemberLocked(st, userID)
}

// Disconnect tears down whatever session the connection holds and
// forgets the connection. The registry index makes this a lookup, not
// a scan over every room.
func (m *Manager) Disconnect(conn core.ConnID) {
	m.mu.Lock()
	m.detachLocked(conn)
	m.mu.Unlock()
	m.reg.Unregister(conn)
}

func (m *Manager) roomNotFoundLocked(conn core.ConnID, roomID domain.RoomID) {
	if m.notFound == NotFoundExplicit {
		m.router.ToConn(conn, core.NewRoomError(errRoomNotFound))
		return
	}
	log.Debug().Str("module", "app.session").Str("room", string(roomID)).Msg("room not found, dropping join")
}

// detachLocked releases the session bound to conn, if any: a pending
// entry is dequeued quietly, a membership is removed with the usual
// user-left / empty-room handling.
func (m *Manager) detachLocked(conn core.ConnID) {
	b, ok := m.reg.Binding(conn)
	if !ok {
		return
	}
	m.reg.ClearRoom(conn)
	st, ok := m.store.Get(b.Room)
	if !ok {
		return
	}
	if b.Pending {
		if i := st.findPending(b.User); i >= 0 && st.pending[i].Conn == conn {
			st.dropPendingAt(i)
		}
		return
	}
	m.removeMemberLocked(st, b.User)
}

func (m *Manager) removeMemberLocked(st *roomState, userID domain.UserID) {
	entry, ok := st.members[userID]
	if !ok {
		return
	}
	delete(st.members, userID)
	if st.host != nil && st.host.Part.ID == userID {
		st.host = nil
	}
	m.reg.ClearRoom(entry.Conn)
	if len(st.members) == 0 {
		m.closeRoomLocked(st)
		return
	}
	m.router.ToRoom(st.conns(""), core.NewUserLeft(userID), "")
	log.Info().Str("module", "app.session").Str("room", string(st.meta.ID)).Str("user", string(userID)).Msg("member left")
}

// closeRoomLocked deletes an emptied room in the same transition that
// removed its last member, flushing anyone still waiting for approval.
func (m *Manager) closeRoomLocked(st *roomState) {
	for _, p := range st.pending {
		m.router.ToConn(p.Conn, core.NewRoomError(errRoomClosed))
		m.reg.ClearRoom(p.Conn)
	}
	st.pending = nil
	m.store.Delete(st.meta.ID)
	log.Info().Str("module", "app.session").Str("room", string(st.meta.ID)).Msg("room closed")
}
