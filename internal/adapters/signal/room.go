package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
	"github.com/akeyre/parley/internal/domain"
)

// Malformed payloads are rejected here, before any shared state is
// touched, and nothing is emitted back.

func (ctl *Controller) handleCreateRoom(connID core.ConnID, data []byte) {
	var p struct {
		Room       string `json:"room"`
		UserID     string `json:"user_id"`
		Name       string `json:"name"`
		Password   string `json:"password"`
		Visibility string `json:"visibility"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad create-room payload")
		return
	}
	part, err := domain.NewParticipant(p.UserID, p.Name, "Host")
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad create-room identity")
		return
	}
	vis, err := domain.ParseVisibility(p.Visibility)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("visibility", p.Visibility).Msg("bad create-room visibility")
		return
	}
	// A password with no explicit visibility means a password room.
	if p.Visibility == "" && p.Password != "" {
		vis = domain.VisibilityPassword
	}
	ctl.Manager.CreateRoom(connID, p.Room, part, vis, p.Password)
}

func (ctl *Controller) handleJoin(connID core.ConnID, data []byte) {
	var p struct {
		Room     string `json:"room"`
		UserID   string `json:"user_id"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad join-room payload")
		return
	}
	part, err := domain.NewParticipant(p.UserID, p.Name, "Guest")
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join-room identity")
		return
	}
	ctl.Manager.Join(connID, p.Room, part, p.Password)
}

func (ctl *Controller) handleApprove(connID core.ConnID, data []byte) {
	var p struct {
		Room   string `json:"room"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad approve-request payload")
		return
	}
	ctl.Manager.Approve(connID, p.Room, domain.UserID(p.UserID))
}

func (ctl *Controller) handleReject(connID core.ConnID, data []byte) {
	var p struct {
		Room   string `json:"room"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad reject-request payload")
		return
	}
	ctl.Manager.Reject(connID, p.Room, domain.UserID(p.UserID))
}

func (ctl *Controller) handleChat(connID core.ConnID, data []byte) {
	var p struct {
		Room    string `json:"room"`
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" || p.Message == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad chat-message payload")
		return
	}
	ctl.Manager.Chat(connID, p.Room, domain.UserID(p.UserID), p.Message)
}

func (ctl *Controller) handleLeave(connID core.ConnID, data []byte) {
	var p struct {
		Room   string `json:"room"`
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" || p.UserID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("bad leave-room payload")
		return
	}
	ctl.Manager.Leave(connID, p.Room, domain.UserID(p.UserID))
}
