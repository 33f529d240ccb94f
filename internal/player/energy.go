package player

import "github.com/voltrace/gameserver/internal/catalog"

// DefaultRoundsOfLastBreath is the shield duration (in rounds) granted by
// ultimo_aliento before multiplying by the match's player count, per
// spec.md §4.2.
const DefaultRoundsOfLastBreath = 3

// AdjustResult reports what AdjustEnergy actually did, including whether a
// pain_transfer redirect to a peer still needs to be applied by the
// caller (the match engine, which alone knows how to look a peer up).
type AdjustResult struct {
	ActualDelta         int
	RedirectToName      string
	RedirectDelta       int
	Eliminated          bool
	LastBreathTriggered bool
}

// AdjustEnergy applies delta to the player's energy following the ordered
// rule set in spec.md §4.2:
//  1. shield nullifies incoming damage (without being consumed)
//  2. aislamiento mitigates incoming damage to 80%
//  3. an active pain_transfer effect redirects half of incoming damage to
//     its bonded peer (the caller must apply RedirectDelta to that peer)
//  4. energy_block nullifies incoming gains
//  5. clamp to >= 0
//  6. a lethal result is rescued once by ultimo_aliento (snap to 50 energy,
//     append a shield), otherwise the player is eliminated
//
// playerCount is the number of players in the match, used to scale the
// last_breath shield's duration.
func (p *Player) AdjustEnergy(delta int, playerCount int) AdjustResult {
	original := p.Energy

	if delta < 0 && p.HasEffect(EffectShield) {
		delta = 0
	}

	if delta < 0 && p.HasPerk(catalog.Aislamiento) {
		delta = delta * 8 / 10
	}

	result := AdjustResult{}
	if delta < 0 {
		if pt, ok := p.Effect(EffectPainTransfer); ok {
			redirect := delta / 2
			remainder := delta - redirect
			result.RedirectToName = pt.Target
			result.RedirectDelta = redirect
			delta = remainder
			p.RemoveEffect(EffectPainTransfer)
		}
	}

	if delta > 0 && p.HasEffect(EffectEnergyBlock) {
		delta = 0
	}

	rawEnergy := p.Energy + delta
	newEnergy := rawEnergy
	if newEnergy < 0 {
		newEnergy = 0
	}

	if rawEnergy <= 0 {
		if p.HasPerk(catalog.UltimoAliento) && !p.LastBreathUsed {
			p.Energy = 50
			p.LastBreathUsed = true
			duration := DefaultRoundsOfLastBreath * playerCount
			if p.HasPerk(catalog.EscudoDuradero) {
				duration++
			}
			p.AddEffect(Effect{Kind: EffectShield, TurnsRemaining: duration})
			result.ActualDelta = p.Energy - original
			result.LastBreathTriggered = true
			return result
		}
		p.Energy = 0
		p.Active = false
		result.Eliminated = true
		result.ActualDelta = p.Energy - original
		return result
	}

	p.Energy = newEnergy
	result.ActualDelta = p.Energy - original
	return result
}
