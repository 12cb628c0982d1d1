package search

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
	"github.com/l1jgo/battlecore/internal/sampler"
)

type emptyProvider struct{}

func (emptyProvider) Initialize(format string, revealedSpecies map[string]bool) error { return nil }
func (emptyProvider) PredictSet(p *model.Pokemon) (dataset.CandidateSet, bool)         { return dataset.CandidateSet{}, false }
func (emptyProvider) AllRemainingSets(p *model.Pokemon) []dataset.CandidateSet         { return nil }
func (emptyProvider) AllPossibleMoves(p *model.Pokemon) []string                      { return nil }
func (emptyProvider) AddNewPokemon(species string)                                    {}
func (emptyProvider) AllSpecies() []string                                            { return nil }

func newTestDriver(eng rollout.Engine) *Driver {
	registry := &dataset.Registry{Primary: emptyProvider{}}
	smp := sampler.New(registry, nil, zap.NewNop(), 1)
	cfg := config.SearchConfig{TimeMs: 50, Parallelism: 4, GraceMs: 50, MinSamples: 2}
	return New(smp, rollout.FakeSerializer{}, eng, cfg, zap.NewNop(), 3)
}

func newTestBattleForSearch() *model.Battle {
	b := model.NewBattle("search-battle", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	chomp := model.NewPokemon("Garchomp", 361)
	chomp.AddMove("Earthquake", 16)
	chomp.AddMove("Dragon Claw", 24)
	chomp.AddMove("Swords Dance", 32)
	b.User.AddToTeam(chomp)
	b.User.ActiveIndex = 0

	opp := model.NewPokemon("Ferrothorn", 250)
	b.Opponent.AddToTeam(opp)
	b.Opponent.ActiveIndex = 0
	return b
}

func TestFindBestMovePicksTheDominantlyVisitedAction(t *testing.T) {
	eng := &rollout.FakeEngine{
		SearchResult: rollout.Result{
			TotalVisits: 100,
			SideOne: []rollout.ActionVisit{
				{MoveChoice: "Earthquake", Visits: 90, TotalScore: 60},
				{MoveChoice: "Dragon Claw", Visits: 10, TotalScore: 2},
			},
		},
	}
	d := newTestDriver(eng)

	action, eval, err := d.FindBestMove(context.Background(), newTestBattleForSearch())
	if err != nil {
		t.Fatalf("FindBestMove returned error: %v", err)
	}
	if action != "Earthquake" {
		t.Fatalf("action = %q, want Earthquake", action)
	}
	if eval == nil {
		t.Fatalf("expected a non-nil Evaluation when rollouts succeeded")
	}
	if eval.Moves["Earthquake"].Optimality != 1.0 {
		t.Fatalf("Earthquake optimality = %v, want 1.0", eval.Moves["Earthquake"].Optimality)
	}
}

func TestFindBestMoveFallsBackOnEngineError(t *testing.T) {
	eng := &rollout.FakeEngine{SearchErr: context.DeadlineExceeded}
	d := newTestDriver(eng)

	battle := newTestBattleForSearch()
	action, eval, err := d.FindBestMove(context.Background(), battle)
	if err != nil {
		t.Fatalf("FindBestMove returned error: %v", err)
	}
	if eval != nil {
		t.Fatalf("expected a nil Evaluation on fallback, got %+v", eval)
	}
	legal := battle.LegalActions(battle.User)
	found := false
	for _, a := range legal {
		if a == action {
			found = true
		}
	}
	if !found {
		t.Fatalf("fallback action %q is not among legal actions %v", action, legal)
	}
}
