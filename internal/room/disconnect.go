package room

import "github.com/voltrace/gameserver/internal/match"

// Disconnect handles a client dropping its transport connection while in a
// room. If it was their turn, the resolve step is forced on their current
// cell before they're marked inactive so tile effects still land.
func (m *Manager) Disconnect(roomID, clientID string) {
	r, err := m.Get(roomID)
	if err != nil {
		return
	}

	r.mu.Lock()
	ref, present := r.removeClient(clientID)
	if !present {
		r.mu.Unlock()
		return
	}

	if r.State == StatePlaying && r.Match != nil && !r.Match.Ended {
		r.inactiveName[ref.Name] = true
		wasTurn := r.Match.Players[r.Match.CurrentTurnIdx].Name == ref.Name

		if p, ok := r.Match.PlayerByName(ref.Name); ok && p.Active {
			if wasTurn {
				switch r.Match.TurnState {
				case match.TurnStarted:
					_ = r.Match.RollAndMove(ref.Name)
					fallthrough
				case match.TurnRolled:
					_ = r.Match.ResolveTileAndCollisions(ref.Name)
				}
			}
			p.Active = false
			r.Match.CheckActiveCount()
		}

		m.emitRoom(r, match.Event{
			Type: "player_left", Scope: match.ScopeAll,
			Payload: map[string]any{"names": r.activeClientNames(), "disconnect_message": ref.Name + " disconnected"},
		})

		m.flush(r)
		if r.Match.Ended {
			m.onMatchEnded(r)
		} else if wasTurn {
			m.armTurnTimer(r)
		}
	}
	r.mu.Unlock()

	m.removeFromRematchQueues(ref.Name)
}
