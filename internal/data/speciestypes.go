package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpeciesTypeEntry is one species' type pair, used by the scenario
// sampler's team-generation constraints (spec §4.3 "no more than 3
// weak to any one type..."), which need to know an unrevealed
// candidate's types to evaluate a weakness count. Species typing is
// external static game data (spec §1), so this is a bundled stand-in
// fixture, the same pattern as EffectivenessTable and GenerationTable.
type SpeciesTypeEntry struct {
	Species string   `yaml:"species"`
	Types   []string `yaml:"types"`
}

// SpeciesTypeTable is a read-only species→types lookup.
type SpeciesTypeTable struct {
	byName map[string][]string
}

// LoadSpeciesTypeTable loads the bundled fixture.
func LoadSpeciesTypeTable(path string) (*SpeciesTypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species type table %s: %w", path, err)
	}
	var entries []SpeciesTypeEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse species type table %s: %w", path, err)
	}
	t := &SpeciesTypeTable{byName: make(map[string][]string, len(entries))}
	for _, e := range entries {
		t.byName[e.Species] = e.Types
	}
	return t, nil
}

// Count returns the number of loaded species entries.
func (t *SpeciesTypeTable) Count() int { return len(t.byName) }

// TypesOf satisfies sampler.SpeciesTypeLookup. An unrecognized species
// returns nil (treated as typeless — neutral to every attacking type),
// the same graceful-degradation stance as GenerationTable.Get.
func (t *SpeciesTypeTable) TypesOf(species string) []string {
	return t.byName[species]
}
