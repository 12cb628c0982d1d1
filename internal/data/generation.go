package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GenerationQuirk bundles the handful of per-generation constants the
// interpreter and inference engine need (spec §4.1 "Sleep counter
// (generation-dependent)", §4.2.1 paralysis speed multiplier, §9
// generation-3 consecutive-sleep-talk note).
type GenerationQuirk struct {
	Generation             string  `yaml:"generation"`
	SleepCounterCap        int     `yaml:"sleep_counter_cap"`
	ParalysisSpeedDivisor  float64 `yaml:"paralysis_speed_divisor"` // 4 in gen4-6, 2 otherwise
	HeavyDutyBootsEligible bool    `yaml:"heavy_duty_boots_eligible"` // gen8+ only (spec §4.2.3)
	TauntCountsAtEndOfTurn bool    `yaml:"taunt_counts_at_end_of_turn"`
}

// GenerationTable is a read-only lookup by generation tag ("gen1".."gen9").
type GenerationTable struct {
	byGen map[string]GenerationQuirk
}

// LoadGenerationTable loads the bundled per-generation quirk table.
func LoadGenerationTable(path string) (*GenerationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read generation table %s: %w", path, err)
	}
	var entries []GenerationQuirk
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse generation table %s: %w", path, err)
	}
	t := &GenerationTable{byGen: make(map[string]GenerationQuirk, len(entries))}
	for _, e := range entries {
		t.byGen[e.Generation] = e
	}
	return t, nil
}

// Count returns the number of loaded generation entries.
func (t *GenerationTable) Count() int { return len(t.byGen) }

// SleepCounterCap satisfies interpreter.GenerationLookup.
func (t *GenerationTable) SleepCounterCap(generation string) int {
	return t.Get(generation).SleepCounterCap
}

// Get returns the quirk set for gen, falling back to the latest
// generation's rules if gen is unrecognized (never a hard failure —
// an unknown generation tag should degrade gracefully, spec §7).
func (t *GenerationTable) Get(gen string) GenerationQuirk {
	if q, ok := t.byGen[gen]; ok {
		return q
	}
	return GenerationQuirk{
		Generation:             gen,
		SleepCounterCap:        3,
		ParalysisSpeedDivisor:  2,
		HeavyDutyBootsEligible: true,
		TauntCountsAtEndOfTurn: true,
	}
}
