// Package catalog holds the read-only content of a VoltRace match: ability
// and perk metadata, the six kits, the special-tile variant set, and the
// energy-pack loader. Nothing in this package mutates after Load returns;
// every match shares one *Catalog by pointer.
package catalog
