package catalog

// TileKind is one of the closed set of special-tile variants, plus the
// runtime-placed mine.
type TileKind string

const (
	TileTreasure      TileKind = "treasure"
	TileTrap          TileKind = "trap"
	TileTeleport      TileKind = "teleport"
	TileMultiplier    TileKind = "multiplier"
	TileSwap          TileKind = "swap"
	TilePauseToll     TileKind = "pause_toll"
	TileTurbo         TileKind = "turbo"
	TileDrain         TileKind = "drain"
	TileRebound       TileKind = "rebound"
	TileBlackHole     TileKind = "black_hole"
	TilePMWell        TileKind = "pm_well"
	TileMagnet        TileKind = "magnet"
	TileScrapExchange TileKind = "scrap_exchange"
	TileMine          TileKind = "mine"
)

// negativeTiles is consulted by Phase 2's phase-effect check: a player who is
// intangible ("phase") ignores these tiles and any energy pack on the cell.
var negativeTiles = map[TileKind]bool{
	TileTrap:          true,
	TilePauseToll:     true,
	TileDrain:         true,
	TileRebound:       true,
	TileScrapExchange: true,
	TileBlackHole:     true,
}

// IsNegative reports whether a tile kind belongs to the negative set
// ignored by an intangible ("phase") player.
func IsNegative(k TileKind) bool { return negativeTiles[k] }

// SpecialTile is one placed tile instance on the board.
type SpecialTile struct {
	Kind TileKind

	// Parameterized variants.
	Value       int    // treasure, trap, pause_toll energy, mine damage
	Min, Max    int    // teleport range
	PM          int    // pause_toll command-point cost
	Percent     int    // drain percent
	Back        int    // black_hole pull-back distance
	PlacedBy    string // mine: the player name who placed it
}

// TileTemplate is a sampleable tile definition kept in the catalog; Board
// sampling draws TileKind+parameters from these templates.
type TileTemplate struct {
	Kind        TileKind
	Value       int
	Min, Max    int
	PM          int
	Percent     int
	Back        int
}

func (t TileTemplate) Instance() SpecialTile {
	return SpecialTile{
		Kind: t.Kind, Value: t.Value, Min: t.Min, Max: t.Max,
		PM: t.PM, Percent: t.Percent, Back: t.Back,
	}
}

func defaultTileTemplates() []TileTemplate {
	return []TileTemplate{
		{Kind: TileTreasure, Value: 120},
		{Kind: TileTreasure, Value: 60},
		{Kind: TileTrap, Value: -90},
		{Kind: TileTrap, Value: -50},
		{Kind: TileTeleport, Min: -10, Max: 10},
		{Kind: TileMultiplier},
		{Kind: TileSwap},
		{Kind: TilePauseToll, Value: 40, PM: 2},
		{Kind: TileTurbo},
		{Kind: TileDrain, Percent: 30},
		{Kind: TileRebound},
		{Kind: TileBlackHole, Back: 8},
		{Kind: TilePMWell},
		{Kind: TileMagnet},
		{Kind: TileScrapExchange},
	}
}
