package match

import (
	"fmt"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

// recargaConstanteTrickle is the small per-turn energy gain recarga_constante
// grants, applied right after cooldowns tick at round start.
const recargaConstanteTrickle = 10

var sobrecargaOutcomes = []int{-25, 75, 150}

// RollAndMove runs Phase 1 for name: round-start effects, the die roll
// (or forced die, or a consumed pause), turbo/impulso_inestable modifiers,
// and the resulting position update. It does not resolve the landed tile;
// that is ResolveTileAndCollisions's job. Returns an error if it is not
// name's turn or they are not in the "started" state.
func (m *Match) RollAndMove(name string) error {
	p, ok := m.playerByName(name)
	if !ok {
		return fmt.Errorf("match: unknown player %q", name)
	}
	if m.currentPlayer() != p {
		return fmt.Errorf("match: not %s's turn", name)
	}
	if m.TurnState != TurnStarted {
		return fmt.Errorf("match: %s cannot roll in state %s", name, m.TurnState)
	}
	if len(m.PendingPerkOffers) > 0 && m.PendingPerkOffers[name] != nil {
		return fmt.Errorf("match: %s has a pending perk offer", name)
	}

	m.applyRoundStartEffects(p)

	if p.HasEffect(player.EffectPause) {
		p.ConsumePauseTick()
		m.emit(Event{
			Type: "paused", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name},
		})
		m.finishResolve(p, true)
		return nil
	}

	die := m.rollDie(p)

	total := die
	if p.HasEffect(player.EffectDoubleDice) {
		total += m.rollRawDie()
		p.RemoveEffect(player.EffectDoubleDice)
	}

	if p.HasEffect(player.EffectTurbo) {
		total *= 2
		p.RemoveEffect(player.EffectTurbo)
	}
	total = m.applyImpulsoInestable(p, total)

	initial := p.Position
	final := clampPosition(p.Position + total)
	p.Position = final
	p.RolledThisTurn = true

	finishReached := final >= catalog.FinishCell

	m.emit(Event{
		Type: "phase1_move_result", Scope: ScopeAll,
		Payload: map[string]any{
			"player":            p.Name,
			"dice":              total,
			"pos_initial":       initial,
			"pos_final":         final,
			"finish_reached":    finishReached,
			"consecutive_sixes": p.ConsecutiveSixes,
		},
	})

	m.TurnState = TurnRolled
	return nil
}

// applyRoundStartEffects decrements cooldowns, grants recarga_constante,
// ticks energy_leak, and resolves any pending sobrecarga, in that order.
func (m *Match) applyRoundStartEffects(p *player.Player) {
	p.TickCooldownsAndStart()

	if p.HasPerk(catalog.RecargaConstante) {
		m.applyEnergyDelta(p, recargaConstanteTrickle, nil)
	}

	if leak, ok := p.Effect(player.EffectEnergyLeak); ok {
		m.applyEnergyDelta(p, -leak.Damage, nil)
	}

	if _, ok := p.Effect(player.EffectSobrecargaPending); ok {
		outcome := sobrecargaOutcomes[m.rng.Intn(len(sobrecargaOutcomes))]
		m.applyEnergyDelta(p, outcome, nil)
		p.RemoveEffect(player.EffectSobrecargaPending)
	}
}

// rollDie resolves the die value for this turn: a controlled effect's
// forced_die, a stashed dado_perfecto forced_die, or a uniform [1,6] roll.
// A controlled die leaves the six-in-a-row counter alone, a dado_perfecto
// die resets it, and a uniform roll updates it.
func (m *Match) rollDie(p *player.Player) int {
	if controlled, ok := p.Effect(player.EffectControlled); ok {
		p.RemoveEffect(player.EffectControlled)
		return controlled.ForcedDie
	}
	if p.ForcedDie != 0 {
		die := p.ForcedDie
		p.ForcedDie = 0
		p.ConsecutiveSixes = 0
		return die
	}
	die := m.rollRawDie()
	if die == 6 {
		p.ConsecutiveSixes++
	} else {
		p.ConsecutiveSixes = 0
	}
	return die
}

func (m *Match) rollRawDie() int {
	return 1 + m.rng.Intn(6)
}

// applyImpulsoInestable applies the impulso_inestable perk's 50/50 ±2/−1
// swing to a move total.
func (m *Match) applyImpulsoInestable(p *player.Player, total int) int {
	if !p.HasPerk(catalog.ImpulsoInestable) {
		return total
	}
	if m.rng.Intn(2) == 0 {
		return total + 2
	}
	return total - 1
}
