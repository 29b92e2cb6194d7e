package app

import (
	"bytes"
	"testing"

	"github.com/akeyre/parley/internal/core"
)

func TestRouter_TargetedForwardIsVerbatimAndExclusive(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)

	a := &fakeConn{}
	b := &fakeConn{}
	reg.Register("conn-a", a)
	reg.Register("conn-b", b)

	payload := core.Frame(`{"type":"offer","target":"conn-b","sdp":"v=0 o=..."}`)
	rt.ToConnRaw("conn-b", payload)

	if b.count() != 1 {
		t.Fatalf("target got %d frames, want 1", b.count())
	}
	if !bytes.Equal(b.frames[0], payload) {
		t.Fatalf("payload altered in flight: %q", b.frames[0])
	}
	if a.count() != 0 {
		t.Fatalf("sender got %d frames, want 0", a.count())
	}
}

func TestRouter_UnknownTargetIsSilentlyDropped(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)

	a := &fakeConn{}
	reg.Register("conn-a", a)

	rt.ToConnRaw("conn-gone", core.Frame(`{"type":"answer"}`))
	if a.count() != 0 {
		t.Fatalf("unrelated conn got frames: %v", a.frames)
	}
}

func TestRouter_BroadcastExcludesSender(t *testing.T) {
	reg := NewRegistry()
	rt := NewRouter(reg)

	conns := []core.ConnID{"c1", "c2", "c3"}
	fakes := map[core.ConnID]*fakeConn{}
	for _, id := range conns {
		f := &fakeConn{}
		fakes[id] = f
		reg.Register(id, f)
	}

	rt.ToRoom(conns, map[string]string{"type": "user-joined", "user_id": "u"}, "c2")

	if fakes["c1"].count() != 1 || fakes["c3"].count() != 1 {
		t.Fatalf("broadcast missed members: c1=%d c3=%d", fakes["c1"].count(), fakes["c3"].count())
	}
	if fakes["c2"].count() != 0 {
		t.Fatalf("excluded sender got %d frames, want 0", fakes["c2"].count())
	}
}
