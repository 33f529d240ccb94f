package player

// EffectKind is one of the closed set of ticking statuses a player can
// carry. Each carries its own TurnsRemaining.
type EffectKind string

const (
	EffectPause              EffectKind = "pause"
	EffectShield             EffectKind = "shield"
	EffectBarrier            EffectKind = "barrier"
	EffectInvisible          EffectKind = "invisible"
	EffectPhase              EffectKind = "phase"
	EffectTurbo              EffectKind = "turbo"
	EffectMultiplier         EffectKind = "multiplier"
	EffectDoubleDice         EffectKind = "double_dice"
	EffectEnergyBlock        EffectKind = "energy_block"
	EffectSobrecargaPending  EffectKind = "sobrecarga_pending"
	EffectEnergyLeak         EffectKind = "energy_leak"
	EffectLink               EffectKind = "link"
	EffectPainTransfer       EffectKind = "pain_transfer"
	EffectControlled         EffectKind = "controlled"
)

// Effect is one active status on a player. Fields not relevant to Kind are
// left zero; Target/Controller hold opaque peer names, never pointers.
type Effect struct {
	Kind           EffectKind
	TurnsRemaining int

	Damage     int    // energy_leak: per-tick damage
	Target     string // link, pain_transfer: the bonded peer's name
	Controller string // controlled: the player who forced the die
	ForcedDie  int    // controlled: the die value the controller chose
}

// HasEffect reports whether the player currently carries an effect of kind.
func (p *Player) HasEffect(kind EffectKind) bool {
	for _, e := range p.ActiveEffects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Effect returns the first active effect of kind, if any.
func (p *Player) Effect(kind EffectKind) (Effect, bool) {
	for _, e := range p.ActiveEffects {
		if e.Kind == kind {
			return e, true
		}
	}
	return Effect{}, false
}

// AddEffect appends a new effect instance. Multiple effects of the same
// kind can coexist only where the ability contracts call for it (none do
// today); callers that want "refresh, don't stack" should RemoveEffect
// first.
func (p *Player) AddEffect(e Effect) {
	p.ActiveEffects = append(p.ActiveEffects, e)
}

// RemoveEffect deletes every instance of kind, returning how many were
// removed.
func (p *Player) RemoveEffect(kind EffectKind) int {
	out := p.ActiveEffects[:0]
	removed := 0
	for _, e := range p.ActiveEffects {
		if e.Kind == kind {
			removed++
			continue
		}
		out = append(out, e)
	}
	p.ActiveEffects = out
	return removed
}

// ConsumeShieldOrBarrier removes the shield effect, or failing that the
// barrier effect, and reports which, if either, was consumed. Used by the
// ability pipeline's interception step, which must consume the specific
// effect it checked.
func (p *Player) ConsumeShieldOrBarrier() (kind EffectKind, consumed bool) {
	if p.HasEffect(EffectShield) {
		p.RemoveEffect(EffectShield)
		return EffectShield, true
	}
	if p.HasEffect(EffectBarrier) {
		p.RemoveEffect(EffectBarrier)
		return EffectBarrier, true
	}
	return "", false
}

// ConsumePauseTick decrements an active pause effect's TurnsRemaining by
// one immediately (used at the start of a paused player's turn, distinct
// from the once-per-resolve TickEffects sweep), removing it once it drops
// to zero. Reports whether a pause was present to consume.
func (p *Player) ConsumePauseTick() bool {
	for i := range p.ActiveEffects {
		if p.ActiveEffects[i].Kind != EffectPause {
			continue
		}
		p.ActiveEffects[i].TurnsRemaining--
		if p.ActiveEffects[i].TurnsRemaining <= 0 {
			p.RemoveEffect(EffectPause)
		}
		return true
	}
	return false
}

// TickEffects decrements every active effect's TurnsRemaining by one and
// drops any that reach zero. Effects with TurnsRemaining <= 0 already
// (shouldn't normally occur) are dropped too.
func (p *Player) TickEffects() {
	out := p.ActiveEffects[:0]
	for _, e := range p.ActiveEffects {
		e.TurnsRemaining--
		if e.TurnsRemaining > 0 {
			out = append(out, e)
		}
	}
	p.ActiveEffects = out
}
