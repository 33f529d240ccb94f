package room

import (
	"errors"

	"github.com/voltrace/gameserver/internal/match"
)

var (
	ErrRoomNotPlaying = errors.New("room: not playing")
)

// Roll forwards a roll-and-move request to the room's match, serialized
// under the room's own lock so transport goroutines never call into a
// *match.Match concurrently.
func (m *Manager) Roll(roomID, playerName string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Match == nil || r.State != StatePlaying {
		return ErrRoomNotPlaying
	}
	if err := r.Match.RollAndMove(playerName); err != nil {
		m.flush(r)
		return err
	}
	m.flush(r)

	if r.Match.Ended {
		m.onMatchEnded(r)
	} else if r.Match.TurnState == match.TurnStarted {
		// A paused player's roll ends their turn at once, so the next
		// player's turn has already started.
		m.armTurnTimer(r)
	}
	return nil
}

// ResolveAck forwards the tile/collision resolve step. On a finish-line or
// last-player-standing ending, the turn timer is retired instead of
// rearmed.
func (m *Manager) ResolveAck(roomID, playerName string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Match == nil || r.State != StatePlaying {
		return ErrRoomNotPlaying
	}
	if err := r.Match.ResolveTileAndCollisions(playerName); err != nil {
		m.flush(r)
		return err
	}
	m.flush(r)

	if r.Match.Ended {
		m.onMatchEnded(r)
		return nil
	}
	m.armTurnTimer(r)
	return nil
}

// UseAbility forwards an ability-use request.
func (m *Manager) UseAbility(roomID, playerName string, slot int, target string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Match == nil || r.State != StatePlaying {
		return ErrRoomNotPlaying
	}
	err = r.Match.UseAbility(playerName, slot, target)
	m.flush(r)
	if err != nil {
		return err
	}

	if r.Match.Ended {
		m.onMatchEnded(r)
	}
	return nil
}
