package match

// advanceRound is called when the turn index wraps back to the first
// player: it ticks the active global event, and — if none is active and the
// new round is >=5 and a multiple of 5 — draws one, per spec.md §4.3.5.
func (m *Match) advanceRound() {
	m.Round++

	if m.GlobalEvent != nil {
		m.GlobalEvent.RoundsRemaining--
		if m.GlobalEvent.RoundsRemaining <= 0 {
			m.GlobalEvent = nil
		}
	}

	if m.GlobalEvent == nil && m.Round >= 5 && m.Round%5 == 0 {
		m.drawGlobalEvent()
	}

	m.refreshBounty()
}

// drawGlobalEvent picks one event uniformly from the closed set in
// spec.md §4.3.5 and arms it with its fixed duration.
func (m *Match) drawGlobalEvent() {
	names := []GlobalEventName{
		EventSobrecarga, EventApagon, EventMercadoNegro, EventCortocircuito, EventInterferencia,
	}
	chosen := names[m.rng.Intn(len(names))]
	m.GlobalEvent = &GlobalEvent{Name: chosen, RoundsRemaining: globalEventDurations[chosen]}
	m.emit(Event{
		Type:  "global_event_started",
		Scope: ScopeAll,
		Payload: map[string]any{
			"name":             string(chosen),
			"rounds_remaining": m.GlobalEvent.RoundsRemaining,
		},
	})
}

// hasGlobalEvent reports whether name is the currently active global event.
func (m *Match) hasGlobalEvent(name GlobalEventName) bool {
	return m.GlobalEvent != nil && m.GlobalEvent.Name == name
}

// collisionDamage returns the base per-collision damage of 100, raised to
// 150 under Cortocircuito, per spec.md §4.3.3.
func (m *Match) collisionDamage() int {
	if m.hasGlobalEvent(EventCortocircuito) {
		return 150
	}
	return 100
}
