package match

import "github.com/voltrace/gameserver/internal/catalog"

// refreshBounty marks the current leader (highest position among active,
// not-yet-finished players) as is_bounty from round 5 onward, clearing the
// flag everywhere else, per spec.md §4.3.6. It also clears every player's
// bounty_claimed_this_round flag, since that flag is scoped to one round.
func (m *Match) refreshBounty() {
	for _, p := range m.Players {
		p.BountyClaimedThisRound = false
	}

	if m.Round < 5 {
		for _, p := range m.Players {
			p.IsBounty = false
		}
		return
	}

	leaderPos := -1
	leaderIdx := -1
	for i, p := range m.Players {
		if !p.Active || p.Position >= catalog.FinishCell {
			continue
		}
		if p.Position > leaderPos {
			leaderPos = p.Position
			leaderIdx = i
		}
	}

	for i, p := range m.Players {
		p.IsBounty = i == leaderIdx
	}
}
