package room

import (
	"fmt"

	"github.com/voltrace/gameserver/internal/match"
)

// SendChat relays a chat line to every client in the room. Chat is
// accepted in any room state, including the lobby and the post-match
// rematch window.
func (m *Manager) SendChat(roomID, playerName, text string) error {
	r, err := m.Get(roomID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	present := r.hasClientName(playerName)
	r.mu.Unlock()
	if !present {
		return fmt.Errorf("room: client not in room")
	}

	m.emitRoom(r, match.Event{
		Type: "chat", Scope: match.ScopeAll,
		Payload: map[string]any{"from": playerName, "text": text},
	})
	return nil
}
