package app

import "testing"

func TestRegistry_BindingLifecycle(t *testing.T) {
	r := NewRegistry()
	c := &fakeConn{}

	r.Register("c1", c)
	if _, ok := r.Conn("c1"); !ok {
		t.Fatalf("registered conn not found")
	}
	if _, ok := r.Binding("c1"); ok {
		t.Fatalf("fresh conn has a binding")
	}

	r.BindRoom("c1", "room", "user", true)
	b, ok := r.Binding("c1")
	if !ok || b.Room != "room" || b.User != "user" || !b.Pending {
		t.Fatalf("binding=%+v ok=%v", b, ok)
	}

	// Re-bind replaces; one active session per connection.
	r.BindRoom("c1", "other", "user", false)
	b, _ = r.Binding("c1")
	if b.Room != "other" || b.Pending {
		t.Fatalf("rebind failed: %+v", b)
	}

	r.ClearRoom("c1")
	if _, ok := r.Binding("c1"); ok {
		t.Fatalf("binding survived ClearRoom")
	}
	if _, ok := r.Conn("c1"); !ok {
		t.Fatalf("ClearRoom dropped the connection itself")
	}
}

func TestRegistry_UnregisterDropsEverything(t *testing.T) {
	r := NewRegistry()
	r.Register("c1", &fakeConn{})
	r.BindRoom("c1", "room", "user", false)

	r.Unregister("c1")
	if _, ok := r.Conn("c1"); ok {
		t.Fatalf("conn survived Unregister")
	}
	if _, ok := r.Binding("c1"); ok {
		t.Fatalf("binding survived Unregister")
	}
}
