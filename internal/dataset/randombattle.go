package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// RandomBattleProvider loads the bundled per-generation random-battle
// JSON (spec §6.3 "Random-battle" backend): each entry's key is
// "<level>,<item>,<ability>,<mv1>,<mv2>,<mv3>,<mv4>[,<tera>]" mapping
// to an observed count.
type RandomBattleProvider struct {
	dir   string
	store *Store
}

// NewRandomBattleProvider returns a provider that loads its bundled
// JSON files from dir (one file per generation/format, e.g.
// "gen9randombattle.json").
func NewRandomBattleProvider(dir string) *RandomBattleProvider {
	return &RandomBattleProvider{dir: dir, store: NewStore(true)}
}

// randomBattleFile is the top-level shape: species -> {key: count}.
type randomBattleFile map[string]map[string]int

func (p *RandomBattleProvider) Initialize(format string, revealedSpecies map[string]bool) error {
	path := filepath.Join(p.dir, format+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load random battle sets %s: %w", path, err)
	}
	var file randomBattleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse random battle sets %s: %w", path, err)
	}
	for species, entries := range file {
		sets := make([]CandidateSet, 0, len(entries))
		for key, count := range entries {
			set, err := parseRandomBattleKey(key)
			if err != nil {
				continue // malformed entry: skip, never crash (spec §7)
			}
			set.Count = count
			sets = append(sets, set)
		}
		p.store.Set(species, sets)
	}
	return nil
}

// parseRandomBattleKey parses "<level>,<item>,<ability>,<mv1..4>[,<tera>]".
// The level is part of the key for dataset fidelity but is not carried
// in CandidateSet (spec's CandidateSet shape has no level field); it is
// discarded here after validation.
func parseRandomBattleKey(key string) (CandidateSet, error) {
	parts := strings.Split(key, ",")
	if len(parts) < 7 {
		return CandidateSet{}, fmt.Errorf("malformed random battle key %q", key)
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return CandidateSet{}, fmt.Errorf("malformed level in %q: %w", key, err)
	}
	set := CandidateSet{
		Item:    parts[1],
		Ability: parts[2],
		Moves:   append([]string(nil), parts[3:7]...),
	}
	if len(parts) >= 8 {
		set.Tera = parts[7]
	}
	return set, nil
}

func (p *RandomBattleProvider) PredictSet(pm *model.Pokemon) (CandidateSet, bool) {
	return p.store.Best(pm.Species)
}

func (p *RandomBattleProvider) AllRemainingSets(pm *model.Pokemon) []CandidateSet {
	return p.store.Get(pm.Species)
}

func (p *RandomBattleProvider) AllPossibleMoves(pm *model.Pokemon) []string {
	return p.store.AllMoves(pm.Species)
}

func (p *RandomBattleProvider) AddNewPokemon(species string) {
	if _, ok := p.store.bySpecies[species]; !ok {
		p.store.Set(species, nil)
	}
}

// Store exposes the underlying candidate store so the inference
// engine's damage-roll filtering (spec §4.2.6) can operate on it
// directly without widening the Provider interface.
func (p *RandomBattleProvider) Store() *Store { return p.store }

// AllSpecies satisfies Provider.
func (p *RandomBattleProvider) AllSpecies() []string { return p.store.AllSpecies() }
