package app

import (
	"sync"
	"time"

	"github.com/akeyre/parley/internal/core"
	"github.com/akeyre/parley/internal/domain"
)

// memberEntry ties a participant to the connection it arrived on.
type memberEntry struct {
	Part domain.Participant
	Conn core.ConnID
}

// pendingEntry is a join request waiting for the host's decision.
type pendingEntry struct {
	Part  domain.Participant
	Conn  core.ConnID
	Since time.Time
}

// roomState is the authoritative state of one room. Its fields are
// only touched while the Manager's event lock is held; the Store's own
// lock covers map structure only.
type roomState struct {
	meta    *domain.Room
	host    *memberEntry // non-nil iff host-approval and the host is still a member
	members map[domain.UserID]memberEntry
	pending []pendingEntry
}

func newRoomState(meta *domain.Room) *roomState {
	return &roomState{
		meta:    meta,
		members: make(map[domain.UserID]memberEntry),
	}
}

// conns returns the member connection handles, optionally excluding one.
func (st *roomState) conns(exclude core.ConnID) []core.ConnID {
	out := make([]core.ConnID, 0, len(st.members))
	for _, m := range st.members {
		if exclude != "" && m.Conn == exclude {
			continue
		}
		out = append(out, m.Conn)
	}
	return out
}

func (st *roomState) findPending(id domain.UserID) int {
	for i, p := range st.pending {
		if p.Part.ID == id {
			return i
		}
	}
	return -1
}

func (st *roomState) dropPendingAt(i int) pendingEntry {
	p := st.pending[i]
	st.pending = append(st.pending[:i], st.pending[i+1:]...)
	return p
}

// Store is the process-wide room directory. Creation is
// first-writer-wins: an existing room's policy is never overwritten.
type Store struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*roomState
}

func NewStore() *Store {
	return &Store{rooms: make(map[domain.RoomID]*roomState)}
}

func (s *Store) Get(id domain.RoomID) (*roomState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rooms[id]
	return st, ok
}

// CreateIfAbsent inserts a fresh room for meta.ID unless one already
// exists, in which case the existing room is returned untouched.
func (s *Store) CreateIfAbsent(meta *domain.Room) (*roomState, bool) {
	s.mu.RLock()
	st, ok := s.rooms[meta.ID]
	s.mu.RUnlock()
	if ok {
		return st, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.rooms[meta.ID]; ok {
		return st, false
	}
	st = newRoomState(meta)
	s.rooms[meta.ID] = st
	return st, true
}

func (s *Store) Delete(id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// snapshot returns the current room states for iteration (pending
// expiry sweeps). Callers still need the Manager lock to touch them.
func (s *Store) snapshot() []*roomState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*roomState, 0, len(s.rooms))
	for _, st := range s.rooms {
		out = append(out, st)
	}
	return out
}
