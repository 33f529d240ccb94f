package match

import "github.com/voltrace/gameserver/internal/catalog"

// FinalStanding is one player's end-of-match line in the game_terminated
// payload.
type FinalStanding struct {
	Name     string
	Score    int
	Position int
	Energy   int
}

// CheckActiveCount ends the match if fewer than two players remain active,
// for callers (the room coordinator's disconnect path) that mark a player
// inactive outside the normal resolve flow.
func (m *Match) CheckActiveCount() {
	if !m.Ended && len(m.activePlayers()) < 2 {
		m.endMatch()
	}
}

// endMatch freezes the match, computes every player's score once, and picks
// a winner, per spec.md §4.3.7.
func (m *Match) endMatch() {
	if m.Ended {
		return
	}
	m.Ended = true
	m.TurnState = TurnEnded

	maxVisited := 0
	for _, p := range m.Players {
		if n := len(p.VisitedTileTypes); n > maxVisited {
			maxVisited = n
		}
	}

	standings := make([]FinalStanding, 0, len(m.Players))
	bestScore := -1
	winnerIdx := -1
	for i, p := range m.Players {
		score := p.Energy + p.Position
		if p.Position >= catalog.FinishCell && p.Energy > 0 {
			score += 100
		}
		score += 15 * p.Counters.CollisionsCaused
		score += 5 * p.CommandPoints
		score += 20 * len(p.Perks)
		if len(p.VisitedTileTypes) == maxVisited && maxVisited > 0 {
			score += 100
		}

		standings = append(standings, FinalStanding{
			Name: p.Name, Score: score, Position: p.Position, Energy: p.Energy,
		})

		if p.Active && score >= bestScore {
			bestScore = score
			winnerIdx = i
		}
	}

	if winnerIdx >= 0 {
		m.Winner = m.Players[winnerIdx].Name
	}

	m.emit(Event{Type: "game_terminated", Scope: ScopeAll, Payload: map[string]any{
		"winner": m.Winner,
		"stats":  standings,
	}})
}
