package ws

import "github.com/voltrace/gameserver/internal/match"

// Deliver fans out one match/room event to the room's connected clients
// according to its declared scope. This is the only place a private or
// caster-redacted event's full payload may be read; it must never be
// widened past what the scope allows.
func (g *Gateway) Deliver(roomID string, ev match.Event) {
	g.mu.RLock()
	members := make([]*Client, 0, len(g.roomMembers[roomID]))
	for _, c := range g.roomMembers[roomID] {
		members = append(members, c)
	}
	g.mu.RUnlock()

	switch ev.Scope {
	case match.ScopePrivate:
		for _, c := range members {
			if c.name == ev.Recipient {
				c.deliver(withType(ev.Type, ev.Payload))
			}
		}

	case match.ScopeCasterRedacted:
		for _, c := range members {
			if c.name == ev.Recipient {
				c.deliver(withType(ev.Type, ev.Payload))
			} else {
				c.deliver(withType(ev.Type, ev.Redacted))
			}
		}

	default: // ScopeAll
		for _, c := range members {
			c.deliver(withType(ev.Type, ev.Payload))
		}
	}

	if ev.Type == "game_terminated" {
		g.checkAchievements(members, ev)
	}
}

// checkAchievements runs the game_finished event through the achievement
// checker for every standing player and delivers any newly unlocked ids
// straight to that player, per spec.md §4.6/§6.
func (g *Gateway) checkAchievements(members []*Client, ev match.Event) {
	if g.achievements == nil {
		return
	}
	standings, _ := ev.Payload["stats"].([]match.FinalStanding)
	winner, _ := ev.Payload["winner"].(string)

	for _, c := range members {
		var standing *match.FinalStanding
		for i := range standings {
			if standings[i].Name == c.name {
				standing = &standings[i]
				break
			}
		}
		if standing == nil {
			continue
		}
		data := map[string]any{
			"won":      c.name == winner,
			"position": standing.Position,
		}
		unlocked := g.achievements.Check(c.name, "game_finished", data)
		if len(unlocked) == 0 {
			continue
		}
		c.deliver(map[string]any{"type": "achievements_unlocked", "list": unlocked})
	}
}

func withType(evType string, payload map[string]any) map[string]any {
	out := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["type"] = evType
	return out
}
