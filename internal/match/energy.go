package match

import "github.com/voltrace/gameserver/internal/player"

// applyEnergyDelta runs delta through target's AdjustEnergy, resolving any
// pain_transfer redirect through the match's own player index (per
// spec.md §9, peer lookups never happen inside the player package itself),
// and applies the bounty-claim reward when attacker is set and distinct
// from target. It returns the direct AdjustResult for target.
func (m *Match) applyEnergyDelta(target *player.Player, delta int, attacker *player.Player) player.AdjustResult {
	res := target.AdjustEnergy(delta, len(m.Players))

	if res.RedirectToName != "" {
		if peer, ok := m.playerByName(res.RedirectToName); ok && peer.Active {
			peer.AdjustEnergy(res.RedirectDelta, len(m.Players))
		}
	}

	if delta < 0 && attacker != nil && attacker != target {
		m.maybeAwardBounty(attacker, target)
	}

	return res
}

// maybeAwardBounty grants the fixed bounty reward the first time attacker
// damages the current bounty target this round, per spec.md §4.3.6.
func (m *Match) maybeAwardBounty(attacker, target *player.Player) {
	if !target.IsBounty || attacker.BountyClaimedThisRound {
		return
	}
	attacker.AdjustEnergy(50, len(m.Players))
	attacker.CommandPoints += 2
	attacker.BountyClaimedThisRound = true
	target.IsBounty = false
}
