package room

import (
	"time"

	"github.com/voltrace/gameserver/internal/match"
	"github.com/voltrace/gameserver/internal/metrics"
)

// armTurnTimer starts (or restarts) the 90-second inactivity timer for the
// player whose turn it currently is. Each arm bumps turnGen so a timer that
// fires after the turn has already moved on recognizes it is stale and
// no-ops instead of force-resolving the wrong player.
func (m *Manager) armTurnTimer(r *Room) {
	if r.Match == nil || r.Match.Ended {
		return
	}
	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	r.turnGen++
	gen := r.turnGen
	roomID := r.ID

	r.turnTimer = time.AfterFunc(TurnTimeout, func() {
		m.onTurnTimeout(roomID, gen)
	})
}

func (m *Manager) onTurnTimeout(roomID string, gen int) {
	r, err := m.Get(roomID)
	if err != nil {
		return
	}

	r.mu.Lock()
	stale := r.Match == nil || r.Match.Ended || gen != r.turnGen
	var owner string
	if !stale {
		owner = r.Match.Players[r.Match.CurrentTurnIdx].Name
	}
	r.mu.Unlock()
	if stale {
		return
	}

	m.log.Info("turn timed out", "room_id", roomID, "player", owner)
	metrics.TurnTimeouts.Inc()
	m.expelForInactivity(r, owner)
}

// expelForInactivity auto-plays a timed-out player's turn if it was theirs
// (rolling if they hadn't yet, then resolving the tile/collision step),
// marks them inactive, emits an expulsion notice, and runs the same
// match-end/rearm/rematch-queue cleanup the disconnect path runs — per
// spec.md §4.4's "marks the player inactive, emits expulsion notice, and
// invokes the disconnect path".
func (m *Manager) expelForInactivity(r *Room, name string) {
	r.mu.Lock()

	if r.Match == nil || r.Match.Ended {
		r.mu.Unlock()
		return
	}

	wasTurn := r.Match.Players[r.Match.CurrentTurnIdx].Name == name
	if wasTurn {
		switch r.Match.TurnState {
		case match.TurnStarted:
			_ = r.Match.RollAndMove(name)
			fallthrough
		case match.TurnRolled:
			_ = r.Match.ResolveTileAndCollisions(name)
		}
	}

	if p, ok := r.Match.PlayerByName(name); ok {
		p.Active = false
	}
	r.inactiveName[name] = true
	r.Match.CheckActiveCount()

	m.emitRoom(r, match.Event{
		Type: "player_expelled", Scope: match.ScopeAll,
		Payload: map[string]any{"names": r.activeClientNames(), "name": name, "reason": "inactivity"},
	})

	m.flush(r)
	if r.Match.Ended {
		m.onMatchEnded(r)
	} else {
		m.armTurnTimer(r)
	}
	r.mu.Unlock()

	m.removeFromRematchQueues(name)
}
