package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/l1jgo/battlecore/internal/model"
)

// teamDatasetFile is the bundled "<format>.json" shape (spec §6.3
// "Team datasets"): top-level "pokemon" per-species sets, "moves"
// per-species moveset histograms, optional battle-factory tiers.
type teamDatasetFile struct {
	Pokemon            map[string]teamDatasetSpecies `json:"pokemon"`
	Moves              map[string]map[string]int     `json:"moves"`
	BattleFactoryTiers map[string]json.RawMessage     `json:"battleFactoryTiers,omitempty"`
}

type teamDatasetSpecies struct {
	Sets []teamDatasetSet `json:"sets"`
}

type teamDatasetSet struct {
	Ability string         `json:"ability"`
	Item    string         `json:"item"`
	Nature  string         `json:"nature"`
	EVs     map[string]int `json:"evs"`
	Moves   []string       `json:"moves"`
	Tera    string         `json:"tera"`
	Count   int            `json:"count"`
}

// TeamDatasetProvider loads a user-provided-team format's bundled
// dataset (spec §6.3 "Team datasets"), including an optional
// battle-factory tier table for battle-factory formats.
type TeamDatasetProvider struct {
	dir   string
	store *Store

	moveHistogram map[string]map[string]int
	factoryTiers  map[string]json.RawMessage
}

// NewTeamDatasetProvider returns a provider loading bundled JSON from dir.
func NewTeamDatasetProvider(dir string) *TeamDatasetProvider {
	return &TeamDatasetProvider{dir: dir, store: NewStore(true)}
}

func (p *TeamDatasetProvider) Initialize(format string, revealedSpecies map[string]bool) error {
	path := filepath.Join(p.dir, format+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load team dataset %s: %w", path, err)
	}
	var file teamDatasetFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse team dataset %s: %w", path, err)
	}
	for species, entry := range file.Pokemon {
		sets := make([]CandidateSet, 0, len(entry.Sets))
		for _, s := range entry.Sets {
			sets = append(sets, CandidateSet{
				Ability: s.Ability,
				Item:    s.Item,
				Nature:  s.Nature,
				EVs:     evMapToBlock(s.EVs),
				Moves:   append([]string(nil), s.Moves...),
				Tera:    s.Tera,
				Count:   s.Count,
			})
		}
		p.store.Set(species, sets)
	}
	p.moveHistogram = file.Moves
	p.factoryTiers = file.BattleFactoryTiers
	return nil
}

func evMapToBlock(m map[string]int) model.StatBlock {
	return statBlockFromEVString(m["hp"], m["atk"], m["def"], m["spa"], m["spd"], m["spe"])
}

func (p *TeamDatasetProvider) PredictSet(pm *model.Pokemon) (CandidateSet, bool) {
	return p.store.Best(pm.Species)
}

func (p *TeamDatasetProvider) AllRemainingSets(pm *model.Pokemon) []CandidateSet {
	return p.store.Get(pm.Species)
}

func (p *TeamDatasetProvider) AllPossibleMoves(pm *model.Pokemon) []string {
	moves := p.store.AllMoves(pm.Species)
	if len(moves) > 0 {
		return moves
	}
	// Fall back to the raw moveset histogram when no full sets were
	// bundled for this species (common for rarely-used Pokemon).
	hist := p.moveHistogram[pm.Species]
	out := make([]string, 0, len(hist))
	for move := range hist {
		out = append(out, move)
	}
	return out
}

func (p *TeamDatasetProvider) AddNewPokemon(species string) {
	if _, ok := p.store.bySpecies[species]; !ok {
		p.store.Set(species, nil)
	}
}

// Store exposes the underlying candidate store, same rationale as
// RandomBattleProvider.Store.
func (p *TeamDatasetProvider) Store() *Store { return p.store }

// AllSpecies satisfies Provider.
func (p *TeamDatasetProvider) AllSpecies() []string { return p.store.AllSpecies() }

// IsBattleFactory reports whether this format's bundle carried
// battle-factory tier data.
func (p *TeamDatasetProvider) IsBattleFactory() bool { return len(p.factoryTiers) > 0 }
