package app

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/akeyre/parley/internal/core"
)

// fakeConn records every frame routed to it.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	closed bool
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// events decodes the recorded frames into generic maps.
func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("decode frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeConn) eventTypes(t *testing.T) []string {
	t.Helper()
	evs := f.events(t)
	out := make([]string, 0, len(evs))
	for _, e := range evs {
		typ, _ := e["type"].(string)
		out = append(out, typ)
	}
	return out
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}

type fixture struct {
	store *Store
	reg   *Registry
	m     *Manager
}

func newFixture(policy RoomNotFoundPolicy, ttl time.Duration) *fixture {
	store := NewStore()
	reg := NewRegistry()
	router := NewRouter(reg)
	return &fixture{
		store: store,
		reg:   reg,
		m:     NewManager(store, reg, router, policy, ttl),
	}
}

func (fx *fixture) connect(id string) *fakeConn {
	c := &fakeConn{}
	fx.reg.Register(core.ConnID(id), c)
	return c
}

func hasEvent(t *testing.T, c *fakeConn, typ string) bool {
	t.Helper()
	for _, got := range c.eventTypes(t) {
		if got == typ {
			return true
		}
	}
	return false
}

func lastEvent(t *testing.T, c *fakeConn) map[string]any {
	t.Helper()
	evs := c.events(t)
	if len(evs) == 0 {
		t.Fatalf("no events recorded")
	}
	return evs[len(evs)-1]
}
