package dataset

import "github.com/l1jgo/battlecore/internal/model"

// Registry owns one battle's active Provider plus the statistics
// backend, which runs alongside the primary backend rather than
// replacing it (spec §4.2.6 names two participating datasets: "a
// primary dataset ... which is guarded ... the statistics dataset may
// be fully emptied"). Each Battle owns its own Registry (spec §9
// "Avoid global singletons: own the dataset objects inside the Battle
// ... so concurrent battles in the same process cannot race on
// initialize").
type Registry struct {
	Primary    Provider
	Statistics *StatisticsProvider // nil if no stats backend configured
}

// NewRegistry selects the primary backend for bt/format, grounded on
// spec §6.3's three backends and the design note "select the active
// backend by format and battle-type at battle start".
func NewRegistry(bt model.BattleType, format, randomBattleDir, teamDatasetDir string, stats *StatisticsProvider) *Registry {
	var primary Provider
	switch bt {
	case model.BattleTypeRandom:
		primary = NewRandomBattleProvider(randomBattleDir)
	default: // BattleTypeBattleFactory, BattleTypeStandard
		primary = NewTeamDatasetProvider(teamDatasetDir)
	}
	return &Registry{Primary: primary, Statistics: stats}
}

// Initialize loads both backends for format, given the species
// already revealed (team preview or earlier switches).
func (r *Registry) Initialize(format string, revealedSpecies map[string]bool) error {
	if err := r.Primary.Initialize(format, revealedSpecies); err != nil {
		return err
	}
	if r.Statistics != nil {
		if err := r.Statistics.Initialize(format, revealedSpecies); err != nil {
			return err
		}
	}
	return nil
}

// AddNewPokemon registers a newly-discovered species with both backends.
func (r *Registry) AddNewPokemon(species string) {
	r.Primary.AddNewPokemon(species)
	if r.Statistics != nil {
		r.Statistics.AddNewPokemon(species)
	}
}
