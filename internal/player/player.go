package player

import (
	"github.com/voltrace/gameserver/internal/catalog"
)

// Counters tracks the per-match tallies scoring reads at game end.
type Counters struct {
	CollisionsCaused int
	Treasures        int
	MinesCollected   int
	AbilitiesUsed    int
}

// Player is one participant's in-match state.
type Player struct {
	Name          string
	Position      int
	Energy        int
	CommandPoints int
	Active        bool
	KitID         catalog.Kit
	Abilities     [4]catalog.AbilityName
	Cooldowns     map[catalog.AbilityName]int
	ActiveEffects []Effect
	Perks         map[catalog.PerkID]bool

	// Turn-scoped flags, cleared at the end of every resolve step.
	RolledThisTurn  bool
	AbilityUsedThisTurn bool

	// One-shot flags.
	ForcedDie      int // 0 means "not set"; dado_perfecto stash
	LastBreathUsed bool

	Counters Counters

	VisitedTileTypes       map[catalog.TileKind]bool
	IsBounty               bool
	BountyClaimedThisRound bool
	ConsecutiveSixes       int
}

// New constructs a player standing on cell 1 with the given kit's four
// abilities and no cooldowns, effects, or perks.
func New(name string, kit catalog.Kit, abilities [4]catalog.AbilityName, startingEnergy int) *Player {
	return &Player{
		Name:             name,
		Position:         1,
		Energy:           startingEnergy,
		Active:           true,
		KitID:            kit,
		Abilities:        abilities,
		Cooldowns:        make(map[catalog.AbilityName]int),
		Perks:            make(map[catalog.PerkID]bool),
		VisitedTileTypes: make(map[catalog.TileKind]bool),
	}
}

// HasPerk reports whether the player holds perk id.
func (p *Player) HasPerk(id catalog.PerkID) bool {
	return p.Perks[id]
}

// GrantPerk adds perk id to the player's inventory.
func (p *Player) GrantPerk(id catalog.PerkID) {
	p.Perks[id] = true
}

// HasAbility reports whether one of the player's four kit slots is name.
func (p *Player) HasAbility(name catalog.AbilityName) bool {
	for _, a := range p.Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// AbilityAt returns the ability assigned to the 1-indexed slot idx
// (matching the wire protocol's ability_idx).
func (p *Player) AbilityAt(idx int) (catalog.AbilityName, bool) {
	if idx < 1 || idx > 4 {
		return "", false
	}
	return p.Abilities[idx-1], true
}

// CooldownRemaining returns the player's current cooldown for name.
func (p *Player) CooldownRemaining(name catalog.AbilityName) int {
	return p.Cooldowns[name]
}

// TickCooldownsAndStart decrements every non-zero cooldown by one, floor 0.
// Called once at the owner's turn start, per spec.md §4.2.
func (p *Player) TickCooldownsAndStart() {
	for name, remaining := range p.Cooldowns {
		if remaining > 0 {
			p.Cooldowns[name] = remaining - 1
		}
	}
}

// SetCooldownAfterUse sets the cooldown for name to base, discounted by 1
// for enfriamiento_rapido and by discount (a further per-ability discount
// supplied by the caller), floored at 1.
func (p *Player) SetCooldownAfterUse(name catalog.AbilityName, base int, discount int) {
	reduced := base
	if p.HasPerk(catalog.EnfriamientoRapido) {
		reduced--
	}
	reduced -= discount
	if reduced < 1 {
		reduced = 1
	}
	p.Cooldowns[name] = reduced
}

// GainPM awards command points for a successful ability use: the base 1
// plus 2 more if the player holds maestria_habilidad.
func (p *Player) GainPM(base int) {
	gained := base
	if p.HasPerk(catalog.MaestriaHabilidad) {
		gained += 2
	}
	p.CommandPoints += gained
}

// ClearTurnFlags resets the per-turn flags at the end of a resolve step.
func (p *Player) ClearTurnFlags() {
	p.RolledThisTurn = false
	p.AbilityUsedThisTurn = false
}

// VisitTileType records that the player has landed on a tile of kind k, for
// the end-of-match explorer bonus.
func (p *Player) VisitTileType(k catalog.TileKind) {
	p.VisitedTileTypes[k] = true
}

// MarkCellAt clamps a target cell to the track bounds [1, FinishCell].
func MarkCellAt(cell int) int {
	if cell < 1 {
		return 1
	}
	if cell > catalog.FinishCell {
		return catalog.FinishCell
	}
	return cell
}
