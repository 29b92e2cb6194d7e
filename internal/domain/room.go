package domain

import (
	"errors"
	"strings"
)

const MaxRoomIDLen = 64

var (
	ErrRoomIDEmpty      = errors.New("room id empty")
	ErrRoomIDTooLong    = errors.New("room id too long")
	ErrBadVisibility    = errors.New("unknown visibility")
	ErrPasswordRequired = errors.New("password required for password rooms")
)

type RoomID string

// Visibility is the admission policy of a room, fixed at creation.
type Visibility int

const (
	VisibilityOpen Visibility = iota
	VisibilityPassword
	VisibilityHostApproval
)

func (v Visibility) String() string {
	switch v {
	case VisibilityOpen:
		return "open"
	case VisibilityPassword:
		return "password"
	case VisibilityHostApproval:
		return "host-approval"
	}
	return "unknown"
}

// ParseVisibility maps the wire strings to a Visibility.
// The empty string defaults to host-approval, the behavior of the
// original gated rooms.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "host-approval":
		return VisibilityHostApproval, nil
	case "open", "public":
		return VisibilityOpen, nil
	case "password", "private":
		return VisibilityPassword, nil
	}
	return VisibilityOpen, ErrBadVisibility
}

// Room is the immutable meta of a room. Membership lives in the store,
// not here.
type Room struct {
	ID         RoomID
	Visibility Visibility
	Password   string
}

// NewRoom validates the id and the visibility/password pairing.
func NewRoom(id string, vis Visibility, password string) (*Room, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrRoomIDEmpty
	}
	if len(id) > MaxRoomIDLen {
		return nil, ErrRoomIDTooLong
	}
	if vis == VisibilityPassword && password == "" {
		return nil, ErrPasswordRequired
	}
	if vis != VisibilityPassword {
		password = ""
	}
	return &Room{ID: RoomID(id), Visibility: vis, Password: password}, nil
}
