package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EffectivenessEntry is one row of a type-effectiveness fixture: for a
// given attacking type and a given defending type, the multiplier the
// move deals.
type EffectivenessEntry struct {
	AttackType string  `yaml:"attack_type"`
	DefendType string  `yaml:"defend_type"`
	Multiplier float64 `yaml:"multiplier"`
}

// EffectivenessTable is a bundled, YAML-loaded stand-in for the real
// type chart, which spec §1 scopes out as an external collaborator
// ("Static game data ... type chart ... loaded once as read-only
// tables"). It implements rollout.TypeChart so tests and the demo CLI
// can run without a live external data provider wired in.
type EffectivenessTable struct {
	byPair map[[2]string]float64
}

// LoadEffectivenessTable loads a type-effectiveness fixture (mirrors
// the internal/data Load*Table pattern used across this package).
func LoadEffectivenessTable(path string) (*EffectivenessTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read effectiveness table %s: %w", path, err)
	}
	var entries []EffectivenessEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse effectiveness table %s: %w", path, err)
	}
	t := &EffectivenessTable{byPair: make(map[[2]string]float64, len(entries))}
	for _, e := range entries {
		t.byPair[[2]string{e.AttackType, e.DefendType}] = e.Multiplier
	}
	return t, nil
}

// Count returns the number of loaded (attack, defend) pairs.
func (t *EffectivenessTable) Count() int { return len(t.byPair) }

// single returns the effectiveness of attackType against one
// defendType, defaulting to neutral (1.0) for unknown pairs.
func (t *EffectivenessTable) single(attackType, defendType string) float64 {
	if v, ok := t.byPair[[2]string{attackType, defendType}]; ok {
		return v
	}
	return 1.0
}

// Multiplier implements rollout.TypeChart: the product of attackType's
// effectiveness against every element of defendTypes (dual-typing
// stacks multipliers).
func (t *EffectivenessTable) Multiplier(attackType string, defendTypes []string) float64 {
	mult := 1.0
	for _, d := range defendTypes {
		mult *= t.single(attackType, d)
	}
	return mult
}
