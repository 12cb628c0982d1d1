// Package dataset implements the three set-dataset backends of spec
// §6.3 behind one Provider interface, grounded on
// _examples/original_source/data/pkmn_sets.py. Each battle owns its
// own Provider instances (spec §9 "avoid global singletons") so
// concurrent battles in the same process never race on Initialize.
package dataset

import "github.com/l1jgo/battlecore/internal/model"

// CandidateSet is one concrete guess for an opponent Pokemon's hidden
// attributes, weighted by Count (GLOSSARY "Candidate set").
type CandidateSet struct {
	Ability string
	Item    string
	Nature  string
	EVs     model.StatBlock
	Moves   []string
	Tera    string
	Count   int
}

// Provider is the shared shape of all three dataset backends (spec §6.3).
type Provider interface {
	// Initialize loads the backend's data for format, given the set of
	// species already known to be on the opponent's team (team preview
	// or prior reveals).
	Initialize(format string, revealedSpecies map[string]bool) error

	// PredictSet returns the single best-guess candidate for p, if any.
	PredictSet(p *model.Pokemon) (CandidateSet, bool)

	// AllRemainingSets returns every candidate still consistent with p
	// (post-filtering by the inference engine, spec §4.2.6).
	AllRemainingSets(p *model.Pokemon) []CandidateSet

	// AllPossibleMoves returns every move name any candidate set for
	// p's species carries, used by Zoroark move-based detection
	// (spec §4.2.5).
	AllPossibleMoves(p *model.Pokemon) []string

	// AddNewPokemon registers a species discovered mid-battle in a
	// generation without team preview (spec §6.3).
	AddNewPokemon(species string)

	// AllSpecies returns every species this backend currently holds
	// candidates for, used by the sampler to fill unrevealed opponent
	// slots by drawing from the dataset itself (spec §4.3).
	AllSpecies() []string
}
