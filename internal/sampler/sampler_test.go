package sampler

import (
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
)

// fakeProvider is a minimal dataset.Provider double for sampler tests.
type fakeProvider struct {
	sets    map[string][]dataset.CandidateSet
	species []string
}

func (f *fakeProvider) Initialize(format string, revealedSpecies map[string]bool) error { return nil }
func (f *fakeProvider) PredictSet(p *model.Pokemon) (dataset.CandidateSet, bool) {
	sets := f.sets[p.Species]
	if len(sets) == 0 {
		return dataset.CandidateSet{}, false
	}
	return sets[0], true
}
func (f *fakeProvider) AllRemainingSets(p *model.Pokemon) []dataset.CandidateSet {
	return f.sets[p.Species]
}
func (f *fakeProvider) AllPossibleMoves(p *model.Pokemon) []string { return nil }
func (f *fakeProvider) AddNewPokemon(species string)               {}
func (f *fakeProvider) AllSpecies() []string                        { return f.species }

func newTestBattle() *model.Battle {
	b := model.NewBattle("battle-1", "me", "them", "gen9", "gen9randombattle", model.BattleTypeRandom)
	chomp := model.NewPokemon("Garchomp", 361)
	b.Opponent.AddToTeam(chomp)
	b.Opponent.ActiveIndex = 0
	return b
}

func TestSampleAppliesHeavilyWeightedCandidateSet(t *testing.T) {
	provider := &fakeProvider{
		sets: map[string][]dataset.CandidateSet{
			"Garchomp": {
				{Ability: "Sand Veil", Count: 1},
				{Ability: "Rough Skin", Count: 1_000_000},
			},
		},
		species: []string{"Garchomp"},
	}
	registry := &dataset.Registry{Primary: provider}

	roughSkinCount := 0
	const trials = 50
	for seed := int64(0); seed < trials; seed++ {
		s := New(registry, nil, zap.NewNop(), seed)
		sampled := s.Sample(newTestBattle())
		if sampled.Opponent.Team[0].Ability == "Rough Skin" {
			roughSkinCount++
		}
	}
	if roughSkinCount < trials-2 {
		t.Fatalf("Rough Skin chosen %d/%d trials, want it picked almost every time given its overwhelming weight", roughSkinCount, trials)
	}
}

func TestSampleLeavesLiveBattleUntouched(t *testing.T) {
	provider := &fakeProvider{
		sets: map[string][]dataset.CandidateSet{
			"Garchomp": {{Ability: "Rough Skin", Count: 1}},
		},
		species: []string{"Garchomp"},
	}
	registry := &dataset.Registry{Primary: provider}
	s := New(registry, nil, zap.NewNop(), 1)

	battle := newTestBattle()
	s.Sample(battle)

	if battle.Opponent.Team[0].Ability != "" {
		t.Fatalf("Sample mutated the live battle's Pokemon, want the original left untouched")
	}
}

func TestSampleFillsUnrevealedSlotsToSix(t *testing.T) {
	provider := &fakeProvider{
		sets:    map[string][]dataset.CandidateSet{},
		species: []string{"Ferrothorn", "Heatran", "Toxapex", "Dragapult", "Corviknight", "Amoonguss", "Gliscor"},
	}
	registry := &dataset.Registry{Primary: provider}
	types := fakeSpeciesTypes{
		"Garchomp":    {"dragon", "ground"},
		"Ferrothorn":  {"grass", "steel"},
		"Heatran":     {"fire", "steel"},
		"Toxapex":     {"poison", "water"},
		"Dragapult":   {"dragon", "ghost"},
		"Corviknight": {"flying", "steel"},
		"Amoonguss":   {"grass", "poison"},
		"Gliscor":     {"ground", "flying"},
	}
	constraint := NewTeamConstraint(types, rollout.NewFakeTypeChart())
	s := New(registry, constraint, zap.NewNop(), 42)

	sampled := s.Sample(newTestBattle())

	if len(sampled.Opponent.Team) != 6 {
		t.Fatalf("Opponent team size = %d, want 6", len(sampled.Opponent.Team))
	}
	seen := make(map[string]bool)
	for _, p := range sampled.Opponent.Team {
		if seen[p.Species] {
			t.Fatalf("species %q sampled twice, want distinct unrevealed slots when the pool is large enough", p.Species)
		}
		seen[p.Species] = true
	}
}

func TestSampleWithoutConstraintStillFillsTeam(t *testing.T) {
	provider := &fakeProvider{
		sets:    map[string][]dataset.CandidateSet{},
		species: []string{"Ferrothorn"},
	}
	registry := &dataset.Registry{Primary: provider}
	s := New(registry, nil, zap.NewNop(), 7)

	sampled := s.Sample(newTestBattle())

	if len(sampled.Opponent.Team) != 6 {
		t.Fatalf("Opponent team size = %d, want 6 even with a nil constraint", len(sampled.Opponent.Team))
	}
}
