package app

import "strings"

// RoomNotFoundPolicy selects how a join against a missing room is
// answered. The original gated and open rooms surfaced an explicit
// room-error while the password-gated variant dropped the event; both
// behaviors are intentional, so the choice is a deployment knob rather
// than a hardcoded rule.
type RoomNotFoundPolicy int

const (
	NotFoundExplicit RoomNotFoundPolicy = iota
	NotFoundSilent
)

func (p RoomNotFoundPolicy) String() string {
	if p == NotFoundSilent {
		return "silent"
	}
	return "explicit"
}

// ParseRoomNotFoundPolicy maps a config string to a policy.
// Anything unrecognized falls back to explicit.
func ParseRoomNotFoundPolicy(s string) RoomNotFoundPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "silent") {
		return NotFoundSilent
	}
	return NotFoundExplicit
}
