package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// contentFile is the on-disk shape of catalog.yaml. Any field left empty
// falls back to the embedded default for that section, so a partial
// override file is always safe to ship.
type contentFile struct {
	Abilities []Ability           `yaml:"abilities"`
	Perks     []Perk              `yaml:"perks"`
	Kits      map[Kit][4]AbilityName `yaml:"kits"`
	Tiles     []TileTemplate      `yaml:"tiles"`
}

// Catalog is the read-only, process-wide content store: ability metadata,
// perk metadata, kit-to-ability mapping, and the tile template pool. It is
// loaded once at boot and never mutated afterward, matching the teacher's
// config.Manager cache discipline (guarded here purely so concurrent
// readers during a hot reload never race, not because entries change).
type Catalog struct {
	mu            sync.RWMutex
	abilities     map[AbilityName]Ability
	perks         map[PerkID]Perk
	kits          map[Kit][4]AbilityName
	tileTemplates []TileTemplate
}

// Default returns a Catalog pre-populated with the embedded ability, perk,
// kit, and tile definitions, used whenever no content file is present.
func Default() *Catalog {
	return &Catalog{
		abilities:     defaultAbilities(),
		perks:         defaultPerks(),
		kits:          defaultKits(),
		tileTemplates: defaultTileTemplates(),
	}
}

// Load reads catalog.yaml from dir, overlaying any sections it defines onto
// the embedded defaults. A missing directory or file is not an error: Load
// silently returns the default catalog, per spec.md §6's "a missing file
// triggers a default fallback".
func Load(dir string) (*Catalog, error) {
	cat := Default()
	if dir == "" {
		return cat, nil
	}

	path := filepath.Join(dir, "catalog.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var cf contentFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	if len(cf.Abilities) > 0 {
		m := make(map[AbilityName]Ability, len(cf.Abilities))
		for _, a := range cf.Abilities {
			m[a.Name] = a
		}
		cat.abilities = m
	}
	if len(cf.Perks) > 0 {
		m := make(map[PerkID]Perk, len(cf.Perks))
		for _, p := range cf.Perks {
			m[p.ID] = p
		}
		cat.perks = m
	}
	if len(cf.Kits) > 0 {
		cat.kits = cf.Kits
	}
	if len(cf.Tiles) > 0 {
		cat.tileTemplates = cf.Tiles
	}

	return cat, nil
}

// Ability looks up an ability by name. The bool is false for an unknown
// name; every engine decision keyed by name consults this before dispatch.
func (c *Catalog) Ability(name AbilityName) (Ability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.abilities[name]
	return a, ok
}

// Perk looks up perk metadata by id.
func (c *Catalog) Perk(id PerkID) (Perk, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.perks[id]
	return p, ok
}

// KitAbilities returns the four ability names assigned to a kit, in slot
// order (slot index + 1 is the wire protocol's ability_idx).
func (c *Catalog) KitAbilities(kit Kit) ([4]AbilityName, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names, ok := c.kits[kit]
	return names, ok
}

// PerksByTier returns every perk id belonging to tier, in a stable order,
// for building a perk-pack offer.
func (c *Catalog) PerksByTier(tier PerkTier) []PerkID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var ids []PerkID
	for id, p := range c.perks {
		if p.Tier == tier {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
