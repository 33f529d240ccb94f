package match

import (
	"fmt"
	"strconv"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

// AbilityHandler implements one ability's body, assuming every common gate
// check (cooldown, cost, turn-flags, global Interferencia) has already
// passed. target carries the wire protocol's opaque target string: a peer
// name for targeted abilities, or an ability-specific parameter (e.g. the
// chosen die face for dado_perfecto) for the handful that need one. A
// non-nil error is a per-action failure (spec.md §7): no cost, cooldown, or
// PM is charged, and the turn state is untouched.
type AbilityHandler func(m *Match, caster *player.Player, target string) error

var abilityHandlers = map[catalog.AbilityName]AbilityHandler{
	catalog.Sabotaje:             handleSabotaje,
	catalog.BloqueoEnergetico:    handleBloqueoEnergetico,
	catalog.Retroceso:            handleRetroceso,
	catalog.IntercambioForzado:   handleIntercambioForzado,
	catalog.EscudoTotal:          handleEscudoTotal,
	catalog.Barrera:              handleBarrera,
	catalog.TransferenciaDeFase:  handleTransferenciaDeFase,
	catalog.Curacion:             handleCuracion,
	catalog.BombaEnergetica:      handleBombaEnergetica,
	catalog.Invisibilidad:        handleInvisibilidad,
	catalog.MinaDeEnergia:        handleMinaDeEnergia,
	catalog.SobrecargaInestable:  handleSobrecargaInestable,
	catalog.HilosEspectrales:     handleHilosEspectrales,
	catalog.TironDeCadenas:       handleTironDeCadenas,
	catalog.ControlTotal:         handleControlTotal,
	catalog.TraspasoDeDolor:      handleTraspasoDeDolor,
	catalog.Tsunami:              handleTsunami,
	catalog.DobleTurno:           handleDobleTurno,
	catalog.Caos:                 handleCaos,
	catalog.ReboteControlado:     handleReboteControlado,
	catalog.Robo:                 handleRobo,
	catalog.FugaDeEnergia:        handleFugaDeEnergia,
	catalog.Cohete:               handleCohete,
	catalog.DadoPerfecto:         handleDadoPerfecto,
}

// UseAbility runs the common entry gate for casterName's ability at the
// 1-indexed slot idx against target, then dispatches to its handler. On
// success it charges energy cost, sets the post-use cooldown, and awards
// command points, per spec.md §4.3.4.
func (m *Match) UseAbility(casterName string, idx int, target string) error {
	caster, ok := m.playerByName(casterName)
	if !ok {
		return fmt.Errorf("match: unknown player %q", casterName)
	}
	if m.currentPlayer() != caster {
		return fmt.Errorf("match: not %s's turn", casterName)
	}
	if m.hasGlobalEvent(EventInterferencia) {
		return fmt.Errorf("match: abilities are blocked this round (interferencia)")
	}
	if m.PendingPerkOffers[casterName] != nil {
		return fmt.Errorf("match: %s has a pending perk offer", casterName)
	}

	name, ok := caster.AbilityAt(idx)
	if !ok {
		return fmt.Errorf("match: invalid ability slot %d", idx)
	}
	ability, ok := m.Catalog.Ability(name)
	if !ok {
		return fmt.Errorf("match: unknown ability %q", name)
	}
	if caster.CooldownRemaining(name) > 0 {
		return fmt.Errorf("match: %s is on cooldown", name)
	}
	if caster.Energy < ability.EnergyCost {
		return fmt.Errorf("match: %s lacks energy for %s", casterName, name)
	}
	if caster.AbilityUsedThisTurn || caster.RolledThisTurn {
		return fmt.Errorf("match: %s already acted this turn", casterName)
	}
	if ability.RequiresTarget && target == "" {
		return fmt.Errorf("match: %s requires a target", name)
	}

	handler, ok := abilityHandlers[name]
	if !ok {
		return fmt.Errorf("match: no handler registered for %s", name)
	}

	if err := handler(m, caster, target); err != nil {
		return err
	}

	m.applyEnergyDelta(caster, -ability.EnergyCost, nil)
	discount := 0
	caster.SetCooldownAfterUse(name, ability.BaseCooldown, discount)
	caster.GainPM(1)
	caster.Counters.AbilitiesUsed++

	if ability.MovesCaster {
		caster.RolledThisTurn = true
		m.TurnState = TurnRolled
	} else {
		caster.AbilityUsedThisTurn = true
	}

	return nil
}

// resolveTargetedEffect runs the dodge/barrier/shield/invisible pipeline
// described in spec.md §4.3.4 and, only if every check passes, invokes
// apply(target). It returns the outcome for the caller's event payload.
func (m *Match) resolveTargetedEffect(caster, target *player.Player, category catalog.AbilityCategory, apply func(p *player.Player)) string {
	if category == catalog.CategoryOffensive && target.HasPerk(catalog.Anticipacion) && m.rng.Float64() < 0.2 {
		return "dodged"
	}

	if target.HasEffect(player.EffectBarrier) {
		target.RemoveEffect(player.EffectBarrier)
		if caster.HasEffect(player.EffectShield) || caster.HasEffect(player.EffectInvisible) {
			caster.ConsumeShieldOrBarrier()
			return "reflected_blocked"
		}
		apply(caster)
		return "reflected"
	}

	if target.HasEffect(player.EffectShield) {
		target.RemoveEffect(player.EffectShield)
		return "shielded"
	}

	if target.HasEffect(player.EffectInvisible) {
		return "shielded"
	}

	apply(target)
	return "success"
}

func handleSabotaje(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	turns := 1
	if caster.HasPerk(catalog.SabotajePersistente) {
		turns = 2
	}
	outcome := m.resolveTargetedEffect(caster, target, catalog.CategoryControl, func(p *player.Player) {
		p.AddEffect(player.Effect{Kind: player.EffectPause, TurnsRemaining: turns})
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.Sabotaje), "target": targetName, "outcome": outcome},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.Sabotaje)}})
	return nil
}

func handleBloqueoEnergetico(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	outcome := m.resolveTargetedEffect(caster, target, catalog.CategoryControl, func(p *player.Player) {
		p.AddEffect(player.Effect{Kind: player.EffectEnergyBlock, TurnsRemaining: 2})
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.BloqueoEnergetico), "target": targetName, "outcome": outcome},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.BloqueoEnergetico)}})
	return nil
}

func handleRetroceso(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	distance := 5
	if caster.HasPerk(catalog.RetrocesoBrutal) {
		distance = 7
	}
	if target.HasPerk(catalog.DesvioCinetico) {
		distance /= 2
	}
	outcome := m.resolveTargetedEffect(caster, target, catalog.CategoryControl, func(p *player.Player) {
		p.Position = clampPosition(p.Position - distance)
		m.resolveFullCell(p)
		m.resolveCollisions(p)
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.Retroceso), "target": targetName, "outcome": outcome},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.Retroceso)}})
	return nil
}

func handleIntercambioForzado(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	caster.Position, target.Position = target.Position, caster.Position
	m.resolveFullCell(target)
	m.resolveCollisions(target)
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.IntercambioForzado), "caster": caster.Name, "target": targetName}})
	return nil
}

func handleEscudoTotal(m *Match, caster *player.Player, _ string) error {
	duration := 3
	if caster.HasPerk(catalog.EscudoDuradero) {
		duration++
	}
	caster.AddEffect(player.Effect{Kind: player.EffectShield, TurnsRemaining: duration})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.EscudoTotal), "caster": caster.Name}})
	return nil
}

func handleBarrera(m *Match, caster *player.Player, _ string) error {
	caster.AddEffect(player.Effect{Kind: player.EffectBarrier, TurnsRemaining: 2})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Barrera), "caster": caster.Name}})
	return nil
}

func handleTransferenciaDeFase(m *Match, caster *player.Player, _ string) error {
	caster.AddEffect(player.Effect{Kind: player.EffectPhase, TurnsRemaining: 1})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.TransferenciaDeFase), "caster": caster.Name}})
	return nil
}

func handleCuracion(m *Match, caster *player.Player, _ string) error {
	m.applyEnergyDelta(caster, 150, nil)
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Curacion), "caster": caster.Name}})
	return nil
}

func handleBombaEnergetica(m *Match, caster *player.Player, _ string) error {
	radius := 3
	if caster.HasPerk(catalog.BombaFragmentacion) {
		radius = 5
	}
	push := caster.HasPerk(catalog.Fragmentacion)

	for _, target := range m.otherActivePlayers(caster) {
		if abs(target.Position-caster.Position) > radius {
			continue
		}
		m.resolveTargetedEffect(caster, target, catalog.CategoryOffensive, func(p *player.Player) {
			m.applyEnergyDelta(p, -75, caster)
			if push && !p.HasPerk(catalog.DesvioCinetico) {
				if p.Position > caster.Position {
					p.Position = clampPosition(p.Position + 1)
				} else {
					p.Position = clampPosition(p.Position - 1)
				}
				m.resolveFullCell(p)
				m.resolveCollisions(p)
			}
		})
	}
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.BombaEnergetica), "caster": caster.Name}})
	return nil
}

func handleInvisibilidad(m *Match, caster *player.Player, _ string) error {
	caster.AddEffect(player.Effect{Kind: player.EffectInvisible, TurnsRemaining: 2})
	m.emit(Event{Type: "ability_broadcast_redacted", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.Invisibilidad), "caster": caster.Name},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.Invisibilidad)}})
	return nil
}

func handleMinaDeEnergia(m *Match, caster *player.Player, _ string) error {
	if !m.Board.PlaceMine(caster.Position, caster.Name, mineDefaultDamage) {
		return fmt.Errorf("match: cannot place a mine on cell %d", caster.Position)
	}
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.MinaDeEnergia), "caster": caster.Name, "cell": caster.Position}})
	return nil
}

func handleSobrecargaInestable(m *Match, caster *player.Player, _ string) error {
	caster.AddEffect(player.Effect{Kind: player.EffectSobrecargaPending, TurnsRemaining: pendingEffectLifetime})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.SobrecargaInestable), "caster": caster.Name}})
	return nil
}

func handleHilosEspectrales(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	if abs(target.Position-caster.Position) > 6 {
		return fmt.Errorf("match: %s is too far to link", targetName)
	}
	caster.AddEffect(player.Effect{Kind: player.EffectLink, TurnsRemaining: 4, Target: target.Name})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.HilosEspectrales), "caster": caster.Name, "target": targetName}})
	return nil
}

// linkedTarget resolves the peer caster is currently linked to, per
// spec.md §9's opaque-peer-name design.
func (m *Match) linkedTarget(caster *player.Player) (*player.Player, bool) {
	link, ok := caster.Effect(player.EffectLink)
	if !ok {
		return nil, false
	}
	return m.playerByName(link.Target)
}

func handleTironDeCadenas(m *Match, caster *player.Player, _ string) error {
	target, ok := m.linkedTarget(caster)
	if !ok || !target.Active {
		return fmt.Errorf("match: %s has no linked target", caster.Name)
	}
	distance := 3
	if target.HasPerk(catalog.DesvioCinetico) {
		distance /= 2
	}
	if target.Position > caster.Position {
		target.Position = clampPosition(target.Position - distance)
	} else {
		target.Position = clampPosition(target.Position + distance)
	}
	m.resolveFullCell(target)
	m.resolveCollisions(target)
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.TironDeCadenas), "caster": caster.Name, "target": target.Name}})
	return nil
}

func handleControlTotal(m *Match, caster *player.Player, _ string) error {
	target, ok := m.linkedTarget(caster)
	if !ok || !target.Active {
		return fmt.Errorf("match: %s has no linked target", caster.Name)
	}
	forced := 1 + m.rng.Intn(6)
	outcome := m.resolveTargetedEffect(caster, target, catalog.CategoryControl, func(p *player.Player) {
		p.AddEffect(player.Effect{Kind: player.EffectControlled, TurnsRemaining: 1, Controller: caster.Name, ForcedDie: forced})
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.ControlTotal), "target": target.Name, "outcome": outcome},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.ControlTotal)}})
	return nil
}

func handleTraspasoDeDolor(m *Match, caster *player.Player, _ string) error {
	target, ok := m.linkedTarget(caster)
	if !ok || !target.Active {
		return fmt.Errorf("match: %s has no linked target", caster.Name)
	}
	caster.AddEffect(player.Effect{Kind: player.EffectPainTransfer, TurnsRemaining: 2, Target: target.Name})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.TraspasoDeDolor), "caster": caster.Name}})
	return nil
}

func handleTsunami(m *Match, caster *player.Player, _ string) error {
	distance := 3
	if caster.HasPerk(catalog.Maremoto) {
		distance = 5
	}
	for _, target := range m.otherActivePlayers(caster) {
		d := distance
		if target.HasPerk(catalog.DesvioCinetico) {
			d /= 2
		}
		target.Position = clampPosition(target.Position - d)
		m.resolveFullCell(target)
		m.resolveCollisions(target)
	}
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Tsunami), "caster": caster.Name}})
	return nil
}

func handleDobleTurno(m *Match, caster *player.Player, _ string) error {
	caster.AddEffect(player.Effect{Kind: player.EffectDoubleDice, TurnsRemaining: pendingEffectLifetime})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.DobleTurno), "caster": caster.Name}})
	return nil
}

func handleCaos(m *Match, caster *player.Player, _ string) error {
	for _, p := range m.activePlayers() {
		roll := 1 + m.rng.Intn(6)
		if p == caster && caster.HasPerk(catalog.MaestroDelAzar) {
			roll *= 2
		}
		p.Position = clampPosition(p.Position + roll)
		m.resolveFullCell(p)
		m.resolveCollisions(p)
	}
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Caos), "caster": caster.Name}})
	return nil
}

func handleReboteControlado(m *Match, caster *player.Player, _ string) error {
	caster.Position = clampPosition(caster.Position - 2)
	caster.Position = clampPosition(caster.Position + 9)
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.ReboteControlado), "caster": caster.Name, "pos_final": caster.Position}})
	return nil
}

func handleRobo(m *Match, caster *player.Player, _ string) error {
	var richest *player.Player
	for _, p := range m.otherActivePlayers(caster) {
		if richest == nil || p.Energy > richest.Energy {
			richest = p
		}
	}
	if richest == nil {
		return fmt.Errorf("match: no opponent to steal from")
	}
	amount := 50 + m.rng.Intn(101)
	if caster.HasPerk(catalog.Oportunista) {
		amount += 30
	}
	if amount > richest.Energy {
		amount = richest.Energy
	}
	outcome := m.resolveTargetedEffect(caster, richest, catalog.CategoryOffensive, func(p *player.Player) {
		m.applyEnergyDelta(p, -amount, caster)
		m.applyEnergyDelta(caster, amount, nil)
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Robo), "caster": caster.Name, "target": richest.Name, "outcome": outcome}})
	return nil
}

func handleFugaDeEnergia(m *Match, caster *player.Player, targetName string) error {
	target, ok := m.playerByName(targetName)
	if !ok || !target.Active {
		return fmt.Errorf("match: invalid target %q", targetName)
	}
	outcome := m.resolveTargetedEffect(caster, target, catalog.CategoryOffensive, func(p *player.Player) {
		p.AddEffect(player.Effect{Kind: player.EffectEnergyLeak, TurnsRemaining: 3, Damage: 25})
	})
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.FugaDeEnergia), "target": targetName, "outcome": outcome},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.FugaDeEnergia)}})
	return nil
}

func handleCohete(m *Match, caster *player.Player, _ string) error {
	caster.Position = clampPosition(caster.Position + 3 + m.rng.Intn(5))
	m.emit(Event{Type: "ability_full", Scope: ScopeAll,
		Payload: map[string]any{"ability": string(catalog.Cohete), "caster": caster.Name, "pos_final": caster.Position}})
	return nil
}

func handleDadoPerfecto(m *Match, caster *player.Player, target string) error {
	die, err := strconv.Atoi(target)
	if err != nil || die < 1 || die > 6 {
		return fmt.Errorf("match: dado_perfecto requires a die value in [1,6]")
	}
	caster.ForcedDie = die
	if caster.HasPerk(catalog.DadoCargado) {
		m.applyEnergyDelta(caster, 10, nil)
	}
	m.emit(Event{Type: "ability_full", Scope: ScopeCasterRedacted, Recipient: caster.Name,
		Payload:  map[string]any{"ability": string(catalog.DadoPerfecto), "die": die},
		Redacted: map[string]any{"player": caster.Name, "ability": string(catalog.DadoPerfecto)}})
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
