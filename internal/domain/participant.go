// Package domain contains entities without logic, just meta-data.
package domain

import (
	"errors"
	"strings"
)

const (
	MaxUserIDLen = 64
	MaxNameLen   = 36
)

var (
	ErrUserIDEmpty   = errors.New("user id empty")
	ErrUserIDTooLong = errors.New("user id too long")
	ErrNameTooLong   = errors.New("display name too long")
)

type UserID string

// Participant is a user's identity inside a room.
type Participant struct {
	ID   UserID `json:"user_id"`
	Name string `json:"name"`
}

// NewParticipant validates identity fields and applies the fallback
// display name ("Host"/"Guest" depending on the caller) when none is given.
func NewParticipant(id, name, fallback string) (Participant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Participant{}, ErrUserIDEmpty
	}
	if len(id) > MaxUserIDLen {
		return Participant{}, ErrUserIDTooLong
	}
	if name == "" {
		name = fallback
	}
	if len(name) > MaxNameLen {
		return Participant{}, ErrNameTooLong
	}
	return Participant{ID: UserID(id), Name: name}, nil
}
