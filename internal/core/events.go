package core

import "github.com/akeyre/parley/internal/domain"

// Inbound event names carried in the envelope "type" field.
const (
	EvCreateRoom   = "create-room"
	EvJoinRoom     = "join-room"
	EvApprove      = "approve-request"
	EvReject       = "reject-request"
	EvChatMessage  = "chat-message"
	EvLeaveRoom    = "leave-room"
	EvOffer        = "offer"
	EvAnswer       = "answer"
	EvICECandidate = "ice-candidate"
	EvPing         = "ping"
)

// Outbound event names.
const (
	EvWelcome      = "welcome"
	EvUserJoined   = "user-joined"
	EvUserLeft     = "user-left"
	EvJoinRequest  = "join-request"
	EvJoinRejected = "join-rejected"
	EvRoomError    = "room-error"
	EvPong         = "pong"
)

// Welcome tells a freshly connected client its own connection handle,
// the value peers will later name as a forwarding target.
type Welcome struct {
	Type   string `json:"type"`
	ConnID ConnID `json:"conn_id"`
}

func NewWelcome(id ConnID) Welcome {
	return Welcome{Type: EvWelcome, ConnID: id}
}

type UserJoined struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"user_id"`
	Name   string        `json:"name,omitempty"`
	ConnID ConnID        `json:"conn_id,omitempty"`
}

func NewUserJoined(p domain.Participant, conn ConnID) UserJoined {
	return UserJoined{Type: EvUserJoined, UserID: p.ID, Name: p.Name, ConnID: conn}
}

type UserLeft struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"user_id"`
}

func NewUserLeft(id domain.UserID) UserLeft {
	return UserLeft{Type: EvUserLeft, UserID: id}
}

// JoinRequest is sent to the host of a host-approval room when someone
// asks to join.
type JoinRequest struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"user_id"`
	Name   string        `json:"name"`
}

func NewJoinRequest(p domain.Participant) JoinRequest {
	return JoinRequest{Type: EvJoinRequest, UserID: p.ID, Name: p.Name}
}

type JoinRejected struct {
	Type   string        `json:"type"`
	UserID domain.UserID `json:"user_id"`
}

func NewJoinRejected(id domain.UserID) JoinRejected {
	return JoinRejected{Type: EvJoinRejected, UserID: id}
}

type RoomError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func NewRoomError(msg string) RoomError {
	return RoomError{Type: EvRoomError, Error: msg}
}

type ChatMessage struct {
	Type    string        `json:"type"`
	UserID  domain.UserID `json:"user_id"`
	Message string        `json:"message"`
}

func NewChatMessage(id domain.UserID, msg string) ChatMessage {
	return ChatMessage{Type: EvChatMessage, UserID: id, Message: msg}
}
