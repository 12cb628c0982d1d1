package dataset

import "github.com/l1jgo/battlecore/internal/model"

// Store holds the live, filterable candidate-set list for every
// species a backend has loaded. It is the thing the inference
// engine's damage-roll reverse validation (spec §4.2.6) actually
// mutates: Filter removes inconsistent candidates, honoring the
// "guarded" rule that a guarded store is never emptied by a pass.
type Store struct {
	guarded bool
	bySpecies map[string][]CandidateSet
}

// NewStore creates an empty store. Guarded stores (the random-battle,
// battle-factory, and team-dataset backends) refuse a Filter call that
// would remove every remaining candidate for a species; the
// statistics backend is not guarded and may be fully emptied.
func NewStore(guarded bool) *Store {
	return &Store{guarded: guarded, bySpecies: make(map[string][]CandidateSet)}
}

// Set replaces the candidate list for species.
func (s *Store) Set(species string, sets []CandidateSet) {
	s.bySpecies[species] = sets
}

// Add appends one candidate set for species.
func (s *Store) Add(species string, set CandidateSet) {
	s.bySpecies[species] = append(s.bySpecies[species], set)
}

// Get returns the current candidate list for species.
func (s *Store) Get(species string) []CandidateSet {
	return s.bySpecies[species]
}

// Best returns the highest-Count candidate for species, if any.
func (s *Store) Best(species string) (CandidateSet, bool) {
	sets := s.bySpecies[species]
	if len(sets) == 0 {
		return CandidateSet{}, false
	}
	best := sets[0]
	for _, c := range sets[1:] {
		if c.Count > best.Count {
			best = c
		}
	}
	return best, true
}

// AllSpecies returns every species name this store has a candidate
// list for, used by the sampler to fill unrevealed opponent slots
// (spec §4.3 "draw uniformly from the entire species dataset").
func (s *Store) AllSpecies() []string {
	out := make([]string, 0, len(s.bySpecies))
	for species := range s.bySpecies {
		out = append(out, species)
	}
	return out
}

// AllMoves collects the union of every candidate's move list for species.
func (s *Store) AllMoves(species string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range s.bySpecies[species] {
		for _, m := range c.Moves {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// Filter keeps only the candidates for species for which keep returns
// true. If the store is guarded and keep would remove every
// candidate, the pass is aborted and the store is left unchanged
// (spec §4.2.6 "If the primary would be emptied by a pass, abort the
// pass"; spec §7 "Inference would empty the primary candidate set").
func (s *Store) Filter(species string, keep func(CandidateSet) bool) (aborted bool) {
	current := s.bySpecies[species]
	if len(current) == 0 {
		return false
	}
	var kept []CandidateSet
	for _, c := range current {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 && s.guarded {
		return true
	}
	s.bySpecies[species] = kept
	return false
}

// statBlockFromEVString is a helper for backends parsing "31,252,0,0,0,225"-
// style EV strings into a model.StatBlock.
func statBlockFromEVString(hp, atk, def, spa, spd, spe int) model.StatBlock {
	return model.StatBlock{HP: hp, Atk: atk, Def: def, SpA: spa, SpD: spd, Spe: spe}
}
