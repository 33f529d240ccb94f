package match

import (
	"math/rand"

	"github.com/voltrace/gameserver/internal/catalog"
	"github.com/voltrace/gameserver/internal/player"
)

// TurnState is one step of the per-player turn state machine from idle
// through ended.
type TurnState string

const (
	TurnIdle      TurnState = "idle"
	TurnStarted   TurnState = "started"
	TurnRolled    TurnState = "rolled"
	TurnResolving TurnState = "resolving"
	TurnEnded     TurnState = "ended"
)

// GlobalEventName is one of the five round-scoped rule overrides.
type GlobalEventName string

const (
	EventSobrecarga    GlobalEventName = "sobrecarga"
	EventApagon        GlobalEventName = "apagon"
	EventMercadoNegro  GlobalEventName = "mercado_negro"
	EventCortocircuito GlobalEventName = "cortocircuito"
	EventInterferencia GlobalEventName = "interferencia"
)

// globalEventDurations gives each event's duration in rounds, used by the
// uniform draw in global_events.go.
var globalEventDurations = map[GlobalEventName]int{
	EventSobrecarga:    2,
	EventApagon:        1,
	EventMercadoNegro:  1,
	EventCortocircuito: 2,
	EventInterferencia: 1,
}

// GlobalEvent is the single active round-scoped override, if any.
type GlobalEvent struct {
	Name            GlobalEventName
	RoundsRemaining int
}

// Scope classifies who receives an outbound event, per spec.md §4.5.
type Scope string

const (
	ScopeAll             Scope = "all"
	ScopeCasterRedacted  Scope = "caster_redacted"
	ScopePrivate         Scope = "private"
)

// Event is one outbound record the match loop emits. Recipient is set for
// ScopeCasterRedacted (the caster's name) and ScopePrivate (the target
// client's name); it is ignored for ScopeAll.
type Event struct {
	Type      string
	Scope     Scope
	Recipient string
	Redacted  map[string]any // the broadcast payload when Scope is caster-redacted
	Payload   map[string]any
}

// PerkOffer is an outstanding buy_perk_pack result awaiting select_perk or
// cancel_perk_offer from one player.
type PerkOffer struct {
	Tier    catalog.PerkTier
	Options []catalog.PerkID
	Cost    int
}

// Match is the authoritative root for one in-progress game.
type Match struct {
	Catalog *catalog.Catalog
	Board   *catalog.Board

	Players        []*player.Player
	CurrentTurnIdx int
	Round          int
	Ended          bool
	Winner         string

	GlobalEvent *GlobalEvent
	EventLog    []Event

	MidGameLastPlayerName string
	TurnState             TurnState

	PendingPerkOffers map[string]*PerkOffer

	rng *rand.Rand
}

// New builds a fresh match for the given players (already constructed with
// their kit's abilities) over a newly sampled board, seeded with seed for
// reproducible tests.
func New(cat *catalog.Catalog, players []*player.Player, packs []catalog.EnergyPack, seed int64) *Match {
	rng := rand.New(rand.NewSource(seed))
	board := cat.NewBoard(rng, 8, packs)
	m := &Match{
		Catalog:           cat,
		Board:             board,
		Players:           players,
		Round:             1,
		TurnState:         TurnIdle,
		PendingPerkOffers: make(map[string]*PerkOffer),
		rng:               rng,
	}
	return m
}

// playerByName resolves an opaque peer name through the match's own player
// index, per spec.md §9: effects never hold a pointer to another Player.
func (m *Match) playerByName(name string) (*player.Player, bool) {
	for _, p := range m.Players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// PlayerByName exposes the match's player index to the room coordinator,
// e.g. to mark a disconnecting client inactive.
func (m *Match) PlayerByName(name string) (*player.Player, bool) {
	return m.playerByName(name)
}

// currentPlayer returns the player whose turn it currently is.
func (m *Match) currentPlayer() *player.Player {
	return m.Players[m.CurrentTurnIdx]
}

// activePlayers returns every player still marked active.
func (m *Match) activePlayers() []*player.Player {
	var out []*player.Player
	for _, p := range m.Players {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// otherActivePlayers returns every active player except self.
func (m *Match) otherActivePlayers(self *player.Player) []*player.Player {
	var out []*player.Player
	for _, p := range m.Players {
		if p.Active && p != self {
			out = append(out, p)
		}
	}
	return out
}

func (m *Match) emit(e Event) {
	m.EventLog = append(m.EventLog, e)
}

func clampPosition(cell int) int {
	if cell < 1 {
		return 1
	}
	if cell > catalog.FinishCell {
		return catalog.FinishCell
	}
	return cell
}
