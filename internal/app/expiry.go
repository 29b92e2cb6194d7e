package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akeyre/parley/internal/core"
)

// ExpirePending rejects join requests that have waited longer than the
// configured TTL, so a host that never answers does not strand
// requesters forever. Disabled when the TTL is zero.
func (m *Manager) ExpirePending(now time.Time) {
	if m.pendingTTL <= 0 {
		return
	}
	cutoff := now.Add(-m.pendingTTL)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.store.snapshot() {
		kept := st.pending[:0]
		for _, p := range st.pending {
			if p.Since.Before(cutoff) {
				m.reg.ClearRoom(p.Conn)
				m.router.ToConn(p.Conn, core.NewJoinRejected(p.Part.ID))
				log.Info().Str("module", "app.session").Str("room", string(st.meta.ID)).
					Str("user", string(p.Part.ID)).Msg("pending join expired")
				continue
			}
			kept = append(kept, p)
		}
		st.pending = kept
	}
}

// RunPendingSweeper drives ExpirePending until ctx is cancelled.
func (m *Manager) RunPendingSweeper(ctx context.Context, every time.Duration) {
	if m.pendingTTL <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.ExpirePending(now)
		}
	}
}
