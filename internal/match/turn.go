package match

// Begin starts the match at its first active player, emitting game_started.
func (m *Match) Begin() {
	m.CurrentTurnIdx = m.firstActiveIdx()
	m.TurnState = TurnStarted
	m.refreshBounty()
	m.emit(Event{Type: "game_started", Scope: ScopeAll, Payload: map[string]any{
		"players": m.playerNames(),
		"round":   m.Round,
	}})
}

func (m *Match) playerNames() []string {
	names := make([]string, len(m.Players))
	for i, p := range m.Players {
		names[i] = p.Name
	}
	return names
}

func (m *Match) firstActiveIdx() int {
	for i, p := range m.Players {
		if p.Active {
			return i
		}
	}
	return 0
}

// advanceTurn moves CurrentTurnIdx to the next active player, rolling into
// advanceRound when the index wraps past the end of the player list.
func (m *Match) advanceTurn() {
	if m.Ended {
		return
	}
	m.MidGameLastPlayerName = m.currentPlayer().Name

	start := m.CurrentTurnIdx
	idx := start
	wrapped := false
	for {
		idx++
		if idx >= len(m.Players) {
			idx = 0
			wrapped = true
		}
		if m.Players[idx].Active || idx == start {
			break
		}
	}
	m.CurrentTurnIdx = idx

	if wrapped {
		m.advanceRound()
	}
	m.TurnState = TurnStarted
}
