package catalog

import "math/rand"

// FinishCell is the last cell of the 75-cell track.
const FinishCell = 75

// TileSampleTarget is the number of special-tile cells a freshly built board
// carries, per spec.md §4.1 ("fill remaining slots (target 20)").
const TileSampleTarget = 20

// TileSampleCellMin and TileSampleCellMax bound where special tiles and the
// energy packs tied to them may be placed.
const (
	TileSampleCellMin = 4
	TileSampleCellMax = 73
)

// Board is the immutable per-match track: 75 ordered cells, a subset of
// which carry a SpecialTile, and a disjoint subset carrying an EnergyPack.
type Board struct {
	Tiles       map[int]SpecialTile // cell -> tile, 1-indexed
	EnergyPacks map[int]*EnergyPack // cell -> pack, 1-indexed, mutable
}

// CellAt returns the tile placed at cell, if any.
func (b *Board) CellAt(cell int) (SpecialTile, bool) {
	t, ok := b.Tiles[cell]
	return t, ok
}

// PlaceMine drops a runtime mine at cell, tagged with its placer. It fails
// (returns false) if the cell is the finish line or already holds a special
// tile, per the mina_de_energia ability contract.
func (b *Board) PlaceMine(cellNum int, placer string, damage int) bool {
	if cellNum >= FinishCell {
		return false
	}
	if _, occupied := b.Tiles[cellNum]; occupied {
		return false
	}
	b.Tiles[cellNum] = SpecialTile{Kind: TileMine, PlacedBy: placer, Value: damage}
	return true
}

// ConsumeMine removes the mine at cell, returning it and whether one was
// present.
func (b *Board) ConsumeMine(cell int) (SpecialTile, bool) {
	t, ok := b.Tiles[cell]
	if !ok || t.Kind != TileMine {
		return SpecialTile{}, false
	}
	delete(b.Tiles, cell)
	return t, true
}

// NewBoard samples up to K unique tile templates without replacement from
// the catalog, then fills the remaining slots (target 20) by sampling with
// replacement, placing each at a distinct cell uniformly chosen from
// [4, 73]. It then lays energy packs from packs onto cells disjoint from the
// tile placements, skipping any pack cell collision rather than displacing
// a tile.
func (c *Catalog) NewBoard(rng *rand.Rand, k int, packs []EnergyPack) *Board {
	templates := c.tileTemplates
	board := &Board{Tiles: make(map[int]SpecialTile), EnergyPacks: make(map[int]*EnergyPack)}

	used := make(map[int]bool)
	pickCell := func() int {
		for {
			cell := TileSampleCellMin + rng.Intn(TileSampleCellMax-TileSampleCellMin+1)
			if !used[cell] {
				used[cell] = true
				return cell
			}
			if len(used) >= TileSampleCellMax-TileSampleCellMin+1 {
				return -1
			}
		}
	}

	// Phase 1: up to k unique variants without replacement.
	order := rng.Perm(len(templates))
	uniqueCount := k
	if uniqueCount > len(templates) {
		uniqueCount = len(templates)
	}
	placed := 0
	for i := 0; i < uniqueCount && placed < TileSampleTarget; i++ {
		tmpl := templates[order[i]]
		cell := pickCell()
		if cell < 0 {
			break
		}
		board.Tiles[cell] = tmpl.Instance()
		placed++
	}

	// Phase 2: fill remaining slots by sampling with replacement.
	for placed < TileSampleTarget {
		cell := pickCell()
		if cell < 0 {
			break
		}
		tmpl := templates[rng.Intn(len(templates))]
		board.Tiles[cell] = tmpl.Instance()
		placed++
	}

	for i := range packs {
		p := packs[i]
		if _, occupied := board.Tiles[p.Cell]; occupied {
			continue
		}
		pk := p
		board.EnergyPacks[p.Cell] = &pk
	}

	return board
}
