package match

import (
	"fmt"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

const mineDefaultDamage = 60

// pendingEffectLifetime is the TurnsRemaining given to "next use" effects
// (turbo, multiplier, sobrecarga_pending) that are consumed explicitly by
// the action they modify rather than by the generic per-turn ticker; it
// only needs to outlast any realistic number of intervening ticks.
const pendingEffectLifetime = 999

// ResolveTileAndCollisions runs Phase 2 for name: the idempotent tile and
// collision loop, effect ticking, turn-flag clearing, and (only if this
// resolve was triggered by a die roll) turn advancement.
func (m *Match) ResolveTileAndCollisions(name string) error {
	p, ok := m.playerByName(name)
	if !ok {
		return fmt.Errorf("match: unknown player %q", name)
	}
	if m.currentPlayer() != p {
		return fmt.Errorf("match: not %s's turn", name)
	}
	if m.TurnState != TurnRolled {
		return fmt.Errorf("match: %s cannot resolve in state %s", name, m.TurnState)
	}

	m.TurnState = TurnResolving
	m.resolveFullCell(p)
	m.resolveCollisions(p)

	m.finishResolve(p, true)
	return nil
}

// resolveFullCell loops tile dispatch until the player's position stops
// changing or they reach the finish, per spec.md §4.3.3. It is reused by
// ability handlers that reposition a peer inline (e.g. tsunami, caos,
// magnet) without ending the acting player's turn.
func (m *Match) resolveFullCell(p *player.Player) {
	for {
		before := p.Position
		m.resolveOneCell(p)
		if p.Position == before || p.Position >= catalog.FinishCell {
			return
		}
	}
}

// resolveOneCell applies whatever is on p's current cell exactly once:
// a special tile (if any), otherwise an energy pack (if any).
func (m *Match) resolveOneCell(p *player.Player) {
	cell := p.Position

	if tile, ok := m.Board.CellAt(cell); ok {
		if p.HasEffect(player.EffectPhase) && catalog.IsNegative(tile.Kind) {
			m.emit(Event{Type: "phase_ignored", Scope: ScopeCasterRedacted, Recipient: p.Name,
				Payload:  map[string]any{"player": p.Name, "tile": string(tile.Kind)},
				Redacted: map[string]any{"player": p.Name}})
			p.RemoveEffect(player.EffectPhase)
			return
		}
		if m.hasGlobalEvent(EventApagon) {
			return
		}
		m.dispatchTile(p, tile)
		return
	}

	if pack, ok := m.Board.EnergyPacks[cell]; ok {
		if p.HasEffect(player.EffectPhase) && pack.Value < 0 {
			m.emit(Event{Type: "phase_ignored", Scope: ScopeCasterRedacted, Recipient: p.Name,
				Payload:  map[string]any{"player": p.Name, "tile": "energy_pack"},
				Redacted: map[string]any{"player": p.Name}})
			p.RemoveEffect(player.EffectPhase)
			return
		}
		if pack.Collapsed() {
			return
		}
		gained := pack.PickUp()
		gained = m.applyGainMultipliers(p, gained)
		m.applyEnergyDelta(p, gained, nil)
		m.emit(Event{Type: "energy_pack", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "amount": gained, "cell": cell}})
	}
}

// applyGainMultipliers doubles a positive energy gain under the
// multiplier effect (consuming it) and/or scales it up under
// eficiencia_energetica, per spec.md §4.3.3.
func (m *Match) applyGainMultipliers(p *player.Player, amount int) int {
	if amount <= 0 {
		return amount
	}
	if p.HasEffect(player.EffectMultiplier) {
		amount *= 2
		p.RemoveEffect(player.EffectMultiplier)
	}
	if p.HasPerk(catalog.EficienciaEnergetica) {
		amount = amount * 12 / 10
	}
	return amount
}

func (m *Match) dispatchTile(p *player.Player, tile catalog.SpecialTile) {
	switch tile.Kind {
	case catalog.TileTreasure:
		gained := m.applyGainMultipliers(p, tile.Value)
		m.applyEnergyDelta(p, gained, nil)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "treasure", "amount": gained}})

	case catalog.TileTrap:
		m.applyEnergyDelta(p, tile.Value, nil)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "trap", "amount": tile.Value}})

	case catalog.TileTeleport:
		span := tile.Max - tile.Min
		delta := tile.Min
		if span > 0 {
			delta += m.rng.Intn(span + 1)
		}
		p.Position = clampPosition(p.Position + delta)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "teleport", "to": p.Position}})

	case catalog.TileMultiplier:
		// Consumed explicitly by the next positive adjustEnergy, not by the
		// generic per-turn ticker, so it survives to the player's next gain.
		p.AddEffect(player.Effect{Kind: player.EffectMultiplier, TurnsRemaining: pendingEffectLifetime})
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "multiplier"}})

	case catalog.TileSwap:
		others := m.otherActivePlayers(p)
		if len(others) > 0 {
			target := others[m.rng.Intn(len(others))]
			p.Position, target.Position = target.Position, p.Position
			m.emit(Event{Type: "special_tile", Scope: ScopeAll,
				Payload: map[string]any{"player": p.Name, "tile": "swap", "with": target.Name}})
		}

	case catalog.TilePauseToll:
		m.applyEnergyDelta(p, -tile.Value, nil)
		p.CommandPoints -= tile.PM
		if p.CommandPoints < 0 {
			p.CommandPoints = 0
		}
		p.AddEffect(player.Effect{Kind: player.EffectPause, TurnsRemaining: 1})
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "pause_toll"}})

	case catalog.TileTurbo:
		// Consumed explicitly by the next roll, not by the generic ticker.
		p.AddEffect(player.Effect{Kind: player.EffectTurbo, TurnsRemaining: pendingEffectLifetime})
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "turbo"}})

	case catalog.TileDrain:
		loss := p.Energy * tile.Percent / 100
		m.applyEnergyDelta(p, -loss, nil)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "drain", "amount": loss}})

	case catalog.TileRebound:
		p.Position = clampPosition(p.Position - 3)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "rebound"}})

	case catalog.TileBlackHole:
		p.Position = clampPosition(p.Position - tile.Back)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "black_hole"}})

	case catalog.TilePMWell:
		p.CommandPoints += 3
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "pm_well"}})

	case catalog.TileMagnet:
		m.applyMagnet(p)
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "magnet"}})

	case catalog.TileScrapExchange:
		if p.CommandPoints >= 5 {
			p.CommandPoints -= 5
			m.applyEnergyDelta(p, 80, nil)
		}
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "scrap_exchange"}})

	case catalog.TileMine:
		m.Board.ConsumeMine(p.Position)
		damage := tile.Value
		if damage == 0 {
			damage = mineDefaultDamage
		}
		var attacker *player.Player
		if placer, ok := m.playerByName(tile.PlacedBy); ok {
			attacker = placer
		}
		m.applyEnergyDelta(p, -damage, attacker)
		if attacker != nil && attacker != p && attacker.HasPerk(catalog.RecompensaDeMina) {
			m.applyEnergyDelta(attacker, damage/2, nil)
		}
		p.Counters.MinesCollected++
		m.emit(Event{Type: "special_tile", Scope: ScopeAll,
			Payload: map[string]any{"player": p.Name, "tile": "mine", "damage": damage}})
	}

	p.VisitTileType(tile.Kind)
}

// applyMagnet pulls every other active player 2 cells toward the
// activator, resolving their new tile and collisions inline.
func (m *Match) applyMagnet(activator *player.Player) {
	for _, peer := range m.otherActivePlayers(activator) {
		if peer.Position < activator.Position {
			peer.Position = clampPosition(peer.Position + 2)
		} else if peer.Position > activator.Position {
			peer.Position = clampPosition(peer.Position - 2)
		} else {
			continue
		}
		m.resolveFullCell(peer)
		m.resolveCollisions(peer)
	}
}

// resolveCollisions applies the per-collision damage rule to every other
// active player sharing p's cell, per spec.md §4.3.3. Both participants take
// collision damage, each checked against their own shield/invisibility/perks
// (see _examples/original_source/JuegoPosiciones.py's arrayJugadores[k] and
// arrayJugadores[i] both taking -100 on the same collision).
func (m *Match) resolveCollisions(p *player.Player) {
	for _, other := range m.Players {
		if other == p || !other.Active || other.Position != p.Position {
			continue
		}

		base := m.collisionDamage()
		if other.HasPerk(catalog.PresenciaIntimidante) {
			m.applyEnergyDelta(p, -25, other)
		}

		m.applyCollisionDamage(p, other, base)
		m.applyCollisionDamage(other, p, base)

		p.Counters.CollisionsCaused++
		m.emit(Event{Type: "collision", Scope: ScopeAll,
			Payload: map[string]any{"mover": p.Name, "stationary": other.Name}})
	}
}

// applyCollisionDamage applies the collision damage rule to target for a
// collision against opponent, consulting only target's own shield,
// invisibility, and perks — each side of a collision is resolved
// independently.
func (m *Match) applyCollisionDamage(target, opponent *player.Player, base int) {
	if target.HasEffect(player.EffectShield) || (target.HasEffect(player.EffectInvisible) && target.HasPerk(catalog.SombraFugaz)) {
		target.ConsumeShieldOrBarrier()
		target.CommandPoints += 2
		return
	}

	damage := base
	if target.HasPerk(catalog.Amortiguacion) {
		damage = damage * 2 / 3
	}
	m.applyEnergyDelta(target, -damage, opponent)

	if target.HasPerk(catalog.DrenajeColision) {
		m.applyEnergyDelta(opponent, -50, target)
		m.applyEnergyDelta(target, 50, nil)
	}
}

// finishResolve ticks every effect on p by one, clears its per-turn flags,
// and — only when advancedByRoll is true — advances the turn and checks for
// end of match.
func (m *Match) finishResolve(p *player.Player, advancedByRoll bool) {
	p.TickEffects()
	p.ClearTurnFlags()

	if p.Position >= catalog.FinishCell {
		m.endMatch()
		return
	}

	if advancedByRoll {
		m.advanceTurn()
	}

	if len(m.activePlayers()) < 2 {
		m.endMatch()
	}
}
