package catalog

import (
	"math/rand"
	"testing"
)

func TestDefaultCatalogHasSixKitsOfFour(t *testing.T) {
	cat := Default()
	if len(AllKits) != 6 {
		t.Fatalf("expected 6 kits, got %d", len(AllKits))
	}
	seen := map[AbilityName]Kit{}
	for _, kit := range AllKits {
		abilities, ok := cat.KitAbilities(kit)
		if !ok {
			t.Fatalf("kit %s missing from catalog", kit)
		}
		for _, name := range abilities {
			if _, ok := cat.Ability(name); !ok {
				t.Errorf("kit %s references unknown ability %s", kit, name)
			}
			if other, dup := seen[name]; dup {
				t.Errorf("ability %s assigned to both %s and %s", name, other, kit)
			}
			seen[name] = kit
		}
	}
	if len(seen) != 24 {
		t.Fatalf("expected 24 distinct abilities across kits, got %d", len(seen))
	}
}

func TestEnergyPackPickUpHalvesAndCollapses(t *testing.T) {
	p := EnergyPack{Name: "x", Cell: 5, Value: 36}
	gained := p.PickUp()
	if gained != 36 {
		t.Fatalf("expected gained=36, got %d", gained)
	}
	if p.Value != 18 {
		t.Fatalf("expected halved value 18, got %d", p.Value)
	}
	gained = p.PickUp()
	if gained != 18 {
		t.Fatalf("expected gained=18, got %d", gained)
	}
	if p.Value != 0 {
		t.Fatalf("expected collapse to 0, got %d", p.Value)
	}
}

func TestEnergyPackNeverFlipsSign(t *testing.T) {
	p := EnergyPack{Name: "neg", Cell: 5, Value: -20}
	for i := 0; i < 10; i++ {
		before := p.Value
		p.PickUp()
		if p.Value > 0 {
			t.Fatalf("pack flipped sign: before=%d after=%d", before, p.Value)
		}
	}
}

func TestLoadEnergyPacksMissingFileFallsBack(t *testing.T) {
	packs, err := LoadEnergyPacks("/nonexistent/packenergia.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(packs) == 0 {
		t.Fatal("expected default fallback packs, got none")
	}
}

func TestNewBoardPlacesDistinctCellsInRange(t *testing.T) {
	cat := Default()
	rng := rand.New(rand.NewSource(42))
	board := cat.NewBoard(rng, 8, nil)
	if len(board.Tiles) != TileSampleTarget {
		t.Fatalf("expected %d tiles, got %d", TileSampleTarget, len(board.Tiles))
	}
	for cell := range board.Tiles {
		if cell < TileSampleCellMin || cell > TileSampleCellMax {
			t.Errorf("tile at cell %d out of range [%d,%d]", cell, TileSampleCellMin, TileSampleCellMax)
		}
	}
}

func TestBoardPlaceMineRejectsFinishAndOccupiedCells(t *testing.T) {
	cat := Default()
	rng := rand.New(rand.NewSource(1))
	board := cat.NewBoard(rng, 3, nil)

	if board.PlaceMine(FinishCell, "p1", 60) {
		t.Error("expected mine placement at finish to fail")
	}

	var occupied int
	for cell := range board.Tiles {
		occupied = cell
		break
	}
	if board.PlaceMine(occupied, "p1", 60) {
		t.Error("expected mine placement on an occupied special tile to fail")
	}
}
