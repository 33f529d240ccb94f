package room

import (
	"time"

	"github.com/google/uuid"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/match"
	"github.com/voltrace/gameserver/internal/metrics"
)

// rematchQueue tracks one terminated room's opt-in window.
type rematchQueue struct {
	roomID      string
	originals   []string
	requested   map[string]bool
	timer       *time.Timer
	timerArmed  bool
	resolved    bool
}

// onMatchEnded transitions a room to terminated and opens its rematch
// queue. Called with r.mu already held.
func (m *Manager) onMatchEnded(r *Room) {
	r.State = StateTerminated
	if r.turnTimer != nil {
		r.turnTimer.Stop()
	}
	metrics.MatchesEnded.Inc()

	q := &rematchQueue{
		roomID:    r.ID,
		originals: r.activeClientNames(),
		requested: make(map[string]bool),
	}
	m.rematchMu.Lock()
	m.rematches[r.ID] = q
	m.rematchMu.Unlock()
}

// RequestRematch records one original participant's opt-in.
func (m *Manager) RequestRematch(originalRoomID, playerName string) error {
	m.rematchMu.Lock()
	q, ok := m.rematches[originalRoomID]
	m.rematchMu.Unlock()
	if !ok {
		return ErrRoomNotFound
	}

	q.requested[playerName] = true

	all := len(q.requested) >= len(q.originals)
	ready := len(q.requested) >= 2

	m.emitRoom(&Room{ID: originalRoomID}, match.Event{
		Type: "rematch_updated", Scope: match.ScopeAll,
		Payload: map[string]any{"requesters": requestedNames(q), "originals": q.originals},
	})

	switch {
	case all:
		m.fireRematch(q)
	case ready && !q.timerArmed:
		q.timerArmed = true
		q.timer = time.AfterFunc(RematchWindow, func() { m.fireRematch(q) })
	}
	return nil
}

// CancelRematch lets a requester withdraw before the window fires.
func (m *Manager) CancelRematch(originalRoomID, playerName string) error {
	m.rematchMu.Lock()
	q, ok := m.rematches[originalRoomID]
	m.rematchMu.Unlock()
	if !ok {
		return ErrRoomNotFound
	}
	delete(q.requested, playerName)
	if len(q.requested) < 2 && q.timer != nil {
		q.timer.Stop()
		q.timerArmed = false
	}
	return nil
}

// LeaveRematchQueue removes a participant entirely (e.g. they left the
// terminated room's chat/lobby view).
func (m *Manager) LeaveRematchQueue(originalRoomID, playerName string) {
	m.rematchMu.Lock()
	q, ok := m.rematches[originalRoomID]
	m.rematchMu.Unlock()
	if !ok {
		return
	}
	q.originals = removeName(q.originals, playerName)
	delete(q.requested, playerName)
	if len(q.originals) < MinPlayers {
		m.cancelQueue(q, "not enough players left for a rematch")
	}
}

// removeFromRematchQueues drops a disconnecting client from every queue it
// might be waiting in (it can only realistically be in the one for the room
// it just left, but disconnects can race a rematch response).
func (m *Manager) removeFromRematchQueues(playerName string) {
	m.rematchMu.RLock()
	queues := make([]*rematchQueue, 0, len(m.rematches))
	for _, q := range m.rematches {
		queues = append(queues, q)
	}
	m.rematchMu.RUnlock()

	for _, q := range queues {
		m.LeaveRematchQueue(q.roomID, playerName)
	}
}

func (m *Manager) fireRematch(q *rematchQueue) {
	m.rematchMu.Lock()
	if q.resolved {
		m.rematchMu.Unlock()
		return
	}
	q.resolved = true
	delete(m.rematches, q.roomID)
	m.rematchMu.Unlock()

	var selected []string
	for name := range q.requested {
		if m.presence == nil || m.presence.IsOnline(name) {
			selected = append(selected, name)
		}
	}
	if len(selected) < MinPlayers {
		m.emitRoom(&Room{ID: q.roomID}, match.Event{
			Type: "rematch_cancelled", Scope: match.ScopeAll,
			Payload: map[string]any{"message": "not enough players online for a rematch"},
		})
		return
	}

	newRoom := &Room{
		ID:              uuid.NewString(),
		State:           StateWaiting,
		CreatedAt:       time.Now(),
		ColorAssignment: make(map[string]string),
		KitPreference:   make(map[string]catalog.Kit),
		inactiveName:    make(map[string]bool),
	}
	for i, name := range selected {
		newRoom.Players = append(newRoom.Players, ClientRef{ClientID: name, Name: name})
		newRoom.ColorAssignment[name] = colorPalette[i%len(colorPalette)]
	}

	m.mu.Lock()
	m.rooms[newRoom.ID] = newRoom
	m.mu.Unlock()
	metrics.RoomsActive.Inc()

	m.emitRoom(&Room{ID: q.roomID}, match.Event{
		Type: "rematch_ready", Scope: match.ScopeAll,
		Payload: map[string]any{"new_room_id": newRoom.ID},
	})
}

func (m *Manager) cancelQueue(q *rematchQueue, reason string) {
	m.rematchMu.Lock()
	if q.resolved {
		m.rematchMu.Unlock()
		return
	}
	q.resolved = true
	if q.timer != nil {
		q.timer.Stop()
	}
	delete(m.rematches, q.roomID)
	m.rematchMu.Unlock()

	m.emitRoom(&Room{ID: q.roomID}, match.Event{
		Type: "rematch_cancelled", Scope: match.ScopeAll,
		Payload: map[string]any{"message": reason},
	})
}

func requestedNames(q *rematchQueue) []string {
	names := make([]string, 0, len(q.requested))
	for n := range q.requested {
		names = append(names, n)
	}
	return names
}

func removeName(names []string, target string) []string {
	out := names[:0]
	for _, n := range names {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}
