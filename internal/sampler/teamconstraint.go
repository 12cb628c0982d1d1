// Package sampler implements the scenario sampler of spec §4.3: it
// deep-copies a battle, fills in each revealed opponent Pokemon with a
// weighted-random candidate set, and fills any unrevealed slots by
// drawing uniformly from the active dataset's species list under the
// Pokemon Showdown team-generation constraints, grounded on
// _examples/original_source/fp/search/random_battles.py.
package sampler

import "github.com/l1jgo/battlecore/internal/rollout"

// allTypes is the standard eighteen Pokemon types, needed to evaluate
// weakness counts against every possible attacking type (the original
// iterates POKEMON_TYPE_INDICES.keys() the same way).
var allTypes = []string{
	"normal", "fire", "water", "electric", "grass", "ice",
	"fighting", "poison", "ground", "flying", "psychic", "bug",
	"rock", "ghost", "dragon", "dark", "steel", "fairy",
}

// SpeciesTypeLookup resolves a species to its type pair, satisfied by
// data.SpeciesTypeTable.
type SpeciesTypeLookup interface {
	TypesOf(species string) []string
}

// TeamConstraint checks the three Pokemon Showdown random-team rules
// (spec §4.3 step 3): no more than 3 Pokemon weak to any one type, no
// more than 2 of any type, no more than 1 with a 4x weakness to any
// type. Built standalone so it is testable without the sampling loop.
type TeamConstraint struct {
	Types SpeciesTypeLookup
	Chart rollout.TypeChart
}

// NewTeamConstraint constructs a TeamConstraint.
func NewTeamConstraint(types SpeciesTypeLookup, chart rollout.TypeChart) *TeamConstraint {
	return &TeamConstraint{Types: types, Chart: chart}
}

// Violated reports whether adding candidate to team would break any of
// the three rules.
func (c *TeamConstraint) Violated(team []string, candidate string) bool {
	species := append(append([]string(nil), team...), candidate)
	return c.moreThan3WeakToATyping(species) ||
		c.moreThan2OfAnyType(species) ||
		c.moreThan1With4xWeakness(species)
}

func (c *TeamConstraint) moreThan3WeakToATyping(team []string) bool {
	counts := make(map[string]int)
	for _, species := range team {
		for _, t := range allTypes {
			if c.Chart.Multiplier(t, c.Types.TypesOf(species)) > 1.0 {
				counts[t]++
			}
		}
	}
	return anyExceeds(counts, 3)
}

func (c *TeamConstraint) moreThan2OfAnyType(team []string) bool {
	counts := make(map[string]int)
	for _, species := range team {
		for _, t := range c.Types.TypesOf(species) {
			counts[t]++
		}
	}
	return anyExceeds(counts, 2)
}

func (c *TeamConstraint) moreThan1With4xWeakness(team []string) bool {
	counts := make(map[string]int)
	for _, species := range team {
		for _, t := range allTypes {
			if c.Chart.Multiplier(t, c.Types.TypesOf(species)) >= 4.0 {
				counts[t]++
			}
		}
	}
	return anyExceeds(counts, 1)
}

func anyExceeds(counts map[string]int, limit int) bool {
	for _, n := range counts {
		if n > limit {
			return true
		}
	}
	return false
}
