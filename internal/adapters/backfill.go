package adapters

// GameFinishedEvent is one buffered game_terminated outcome for a single
// player, the shape an operator's event log would hold for replay. It
// mirrors the fields the transport gateway reads off match.FinalStanding
// (see internal/transport/ws/scopes.go's checkAchievements) plus the
// per-match counters that would normally be persisted as the match ended.
type GameFinishedEvent struct {
	Player   string
	Won      bool
	Score    int
	Position int
	Counters map[string]int
}

// Backfill replays a buffered log of game_finished events into store,
// recomputing every named player's account counters. It exists for an
// operator to run after the account store was reset or lost state, not as
// part of the hot path — the equivalent of backfill.py in the original
// source, which recomputed a derived friends_count column from the
// authoritative friendship table after it went stale. It reports how many
// events were applied and the first persistence error encountered, if any.
func Backfill(store *AccountStore, events []GameFinishedEvent) (int, error) {
	applied := 0
	for _, ev := range events {
		updates := make(map[string]int, len(ev.Counters)+2)
		for k, v := range ev.Counters {
			updates[k] = v
		}
		updates["games_played"]++
		updates["score_total"] += ev.Score
		if ev.Won {
			updates["wins"]++
		}

		if err := store.Persist(ev.Player, updates); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
