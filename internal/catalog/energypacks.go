package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnergyPack is a cell-bound refill/drain value. Pack values are mutable:
// on pickup the value halves (integer division) and collapses to 0 once
// |value| < 10, at which point the pack is spent.
type EnergyPack struct {
	Name  string
	Cell  int
	Value int
}

// Collapsed reports whether the pack has been spent down to nothing.
func (p *EnergyPack) Collapsed() bool {
	return p.Value < 10 && p.Value > -10
}

// PickUp halves the pack's value (integer division), collapsing it to 0 if
// the result's magnitude is below 10, and returns the amount the picking
// player receives (the value before halving).
func (p *EnergyPack) PickUp() int {
	gained := p.Value
	p.Value = p.Value / 2
	if p.Value < 10 && p.Value > -10 {
		p.Value = 0
	}
	return gained
}

func defaultEnergyPacks() []EnergyPack {
	return []EnergyPack{
		{Name: "spark-a", Cell: 8, Value: 80},
		{Name: "spark-b", Cell: 19, Value: -60},
		{Name: "spark-c", Cell: 27, Value: 140},
		{Name: "spark-d", Cell: 36, Value: -40},
		{Name: "spark-e", Cell: 45, Value: 100},
		{Name: "spark-f", Cell: 54, Value: -70},
		{Name: "spark-g", Cell: 63, Value: 120},
		{Name: "spark-h", Cell: 70, Value: -50},
	}
}

// LoadEnergyPacks reads "name,cell,value" lines (one per line) from path. A
// missing file is not an error: it returns the default fallback list, per
// spec.md §6.
func LoadEnergyPacks(path string) ([]EnergyPack, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultEnergyPacks(), nil
		}
		return nil, fmt.Errorf("energy packs: open %s: %w", path, err)
	}
	defer f.Close()

	var packs []EnergyPack
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("energy packs: %s:%d: expected name,cell,value, got %q", path, lineNo, line)
		}
		cell, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("energy packs: %s:%d: invalid cell: %w", path, lineNo, err)
		}
		value, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("energy packs: %s:%d: invalid value: %w", path, lineNo, err)
		}
		packs = append(packs, EnergyPack{
			Name:  strings.TrimSpace(parts[0]),
			Cell:  cell,
			Value: value,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("energy packs: scan %s: %w", path, err)
	}
	if len(packs) == 0 {
		return defaultEnergyPacks(), nil
	}
	return packs, nil
}
