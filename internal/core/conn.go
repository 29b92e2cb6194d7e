// Package core holds the transport-agnostic contracts between the
// session manager and the signal adapters.
package core

// Frame is a raw wire payload, forwarded verbatim.
type Frame []byte

// ConnID is an opaque connection handle minted by the transport adapter.
// The session layer never looks inside it.
type ConnID string

// SignalConn abstracts a client's messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConn interface {
	// TrySend queues a frame without blocking. It returns an error when
	// the peer's buffer is full or the connection is closed; senders
	// treat that as a drop, never as a reason to stall.
	TrySend(Frame) error
	Close()
}
