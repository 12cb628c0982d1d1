package sampler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/model"
)

// maxTeamSize is the Pokemon Showdown team size every battle type
// samples up to (spec §4.3 step 3 "fill unrevealed opponent slots").
const maxTeamSize = 6

// maxRejections bounds how many times the constraint checker may
// reject a drawn candidate before the sampler gives up enforcing the
// constraints for that slot (spec §4.3 step 3 "Give up the constraints
// after 10 rejections").
const maxRejections = 10

// Sampler implements the per-worker sampling algorithm of spec §4.3:
// deep-copy, weighted-sample revealed opponent sets, fill unrevealed
// slots under the team-generation constraints.
type Sampler struct {
	Datasets   *dataset.Registry
	Constraint *TeamConstraint
	Log        *zap.Logger
	rnd        *rand.Rand
}

// New constructs a Sampler. seed makes sampling reproducible in tests;
// production callers should derive seed from a real entropy source
// (time, crypto/rand) once per search-driver invocation.
func New(datasets *dataset.Registry, constraint *TeamConstraint, log *zap.Logger, seed int64) *Sampler {
	return &Sampler{
		Datasets:   datasets,
		Constraint: constraint,
		Log:        log,
		rnd:        rand.New(rand.NewSource(seed)),
	}
}

// Sample produces one concrete scenario from battle: a deep copy with
// every opponent Pokemon populated with a sampled candidate set,
// including any team slots the battle has not yet revealed (spec §4.3
// steps 1-3). The caller hands the result to a Serializer and a
// rollout worker (step 4); Sampler itself never talks to the rollout
// engine.
func (s *Sampler) Sample(battle *model.Battle) *model.Battle {
	clone := battle.Clone()
	if clone == nil {
		return nil
	}

	for _, p := range clone.Opponent.Team {
		s.applyBestGuessSet(p)
	}

	if clone.BattleType == model.BattleTypeRandom || clone.BattleType == model.BattleTypeBattleFactory {
		s.fillUnrevealedSlots(clone)
	}

	return clone
}

// applyBestGuessSet weighted-samples one candidate set from p's
// remaining-sets list (weight = Count) and applies it (spec §4.3 step
// 2). A Pokemon with no remaining sets (never revealed a move, or the
// dataset holds nothing for its species) is left untouched.
func (s *Sampler) applyBestGuessSet(p *model.Pokemon) {
	sets := s.Datasets.Primary.AllRemainingSets(p)
	if len(sets) == 0 {
		return
	}
	chosen := s.weightedChoice(sets)
	applyCandidateSet(p, chosen)
}

// weightedChoice picks one CandidateSet with probability proportional
// to its Count, mirroring random.choices(weights=...) in the original.
func (s *Sampler) weightedChoice(sets []dataset.CandidateSet) dataset.CandidateSet {
	total := 0
	for _, c := range sets {
		if c.Count > 0 {
			total += c.Count
		} else {
			total++
		}
	}
	if total <= 0 {
		return sets[0]
	}
	target := s.rnd.Intn(total)
	running := 0
	for _, c := range sets {
		weight := c.Count
		if weight <= 0 {
			weight = 1
		}
		running += weight
		if target < running {
			return c
		}
	}
	return sets[len(sets)-1]
}

// applyCandidateSet writes a sampled candidate's fields onto p,
// leaving fields the candidate set does not describe untouched.
func applyCandidateSet(p *model.Pokemon, c dataset.CandidateSet) {
	if c.Ability != "" {
		p.Ability = c.Ability
	}
	if c.Item != "" {
		p.SetItem(c.Item, true)
	}
	if c.Nature != "" {
		p.Nature = c.Nature
	}
	p.EVs = c.EVs
	if c.Tera != "" {
		p.TeraType = c.Tera
	}
	for _, name := range c.Moves {
		if !p.HasMove(name) {
			p.AddMove(name, 0)
		}
	}
}

// fillUnrevealedSlots adds sampled opponent Pokemon until the
// opponent's team reaches maxTeamSize (spec §4.3 step 3), grounded on
// populate_randombattle_unrevealed_pkmn.
func (s *Sampler) fillUnrevealedSlots(clone *model.Battle) {
	species := s.Datasets.Primary.AllSpecies()
	if len(species) == 0 {
		return
	}
	for len(clone.Opponent.Team) < maxTeamSize {
		name := s.drawConstrainedSpecies(clone.Opponent.Team, species)
		p := model.NewPokemon(name, 100) // placeholder full HP until a candidate set or reconcile narrows it
		if s.Constraint != nil {
			p.Types = s.Constraint.Types.TypesOf(name)
		}
		sets := s.Datasets.Primary.AllRemainingSets(p)
		if len(sets) > 0 {
			applyCandidateSet(p, s.weightedChoice(sets))
		}
		clone.Opponent.AddToTeam(p)
	}
}

// drawConstrainedSpecies draws a species uniformly from pool. While
// pool still holds a species not already on the team, a draw that
// duplicates a team species is always rejected and redrawn; once every
// pool species is on the team, duplicates are accepted. A draw that
// only violates the team-generation constraint is rejected for up to
// maxRejections attempts, after which the constraint is no longer
// enforced for this slot (spec §4.3 step 3 "Give up the constraints
// after 10 rejections").
func (s *Sampler) drawConstrainedSpecies(existing []*model.Pokemon, pool []string) string {
	existingNames := make(map[string]bool, len(existing))
	teamSpecies := make([]string, 0, len(existing))
	for _, p := range existing {
		existingNames[p.Species] = true
		teamSpecies = append(teamSpecies, p.Species)
	}
	fresh := false
	for _, c := range pool {
		if !existingNames[c] {
			fresh = true
			break
		}
	}

	for attempt := 0; ; attempt++ {
		candidate := pool[s.rnd.Intn(len(pool))]
		if fresh && existingNames[candidate] {
			continue
		}
		if s.Constraint == nil || attempt >= maxRejections {
			return candidate
		}
		if !s.Constraint.Violated(teamSpecies, candidate) {
			return candidate
		}
	}
}
