package search

import (
	"math/rand"
	"testing"

	"github.com/l1jgo/battlecore/internal/rollout"
)

func TestAggregateWeightsVisitFractionsBySampleChance(t *testing.T) {
	results := []sampleResult{
		{
			chance: 0.5,
			result: rollout.Result{
				TotalVisits: 100,
				SideOne: []rollout.ActionVisit{
					{MoveChoice: "Earthquake", Visits: 80, TotalScore: 40},
					{MoveChoice: "Dragon Claw", Visits: 20, TotalScore: 5},
				},
			},
		},
		{
			chance: 0.5,
			result: rollout.Result{
				TotalVisits: 100,
				SideOne: []rollout.ActionVisit{
					{MoveChoice: "Earthquake", Visits: 60, TotalScore: 20},
					{MoveChoice: "Dragon Claw", Visits: 40, TotalScore: 10},
				},
			},
		},
	}

	stats := aggregate(results)
	eq := stats["Earthquake"].weightedVisitFraction
	dc := stats["Dragon Claw"].weightedVisitFraction

	wantEQ := 0.5*0.8 + 0.5*0.6
	wantDC := 0.5*0.2 + 0.5*0.4
	if diff := eq - wantEQ; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Earthquake weightedVisitFraction = %v, want %v", eq, wantEQ)
	}
	if diff := dc - wantDC; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("Dragon Claw weightedVisitFraction = %v, want %v", dc, wantDC)
	}
}

func TestSurvivorsDropsActionsBelowThreeQuartersOfMax(t *testing.T) {
	stats := map[string]*actionStat{
		"best":      {weightedVisitFraction: 1.0},
		"close":     {weightedVisitFraction: 0.8},
		"far":       {weightedVisitFraction: 0.5},
		"very-far":  {weightedVisitFraction: 0.1},
	}
	got := survivors(stats)
	want := []string{"best", "close"}
	if len(got) != len(want) {
		t.Fatalf("survivors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("survivors = %v, want %v", got, want)
		}
	}
}

func TestWeightedRandomChoiceOnlyEverPicksAmongSurvivors(t *testing.T) {
	stats := map[string]*actionStat{
		"a": {weightedVisitFraction: 1.0},
		"b": {weightedVisitFraction: 0.9},
	}
	names := []string{"a", "b"}
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		choice := weightedRandomChoice(rnd, stats, names)
		if choice != "a" && choice != "b" {
			t.Fatalf("weightedRandomChoice returned %q, want one of %v", choice, names)
		}
	}
}

func TestBuildEvaluationNormalizesOptimalityToOne(t *testing.T) {
	stats := map[string]*actionStat{
		"Earthquake": {weightedVisitFraction: 0.8, weightedWinRate: 0.6},
		"Dragon Claw": {weightedVisitFraction: 0.2, weightedWinRate: 0.3},
	}
	eval := buildEvaluation("Earthquake", stats, 2, 200)

	if eval.Moves["Earthquake"].Optimality != 1.0 {
		t.Fatalf("best move optimality = %v, want 1.0", eval.Moves["Earthquake"].Optimality)
	}
	if eval.Moves["Dragon Claw"].Optimality != 0.25 {
		t.Fatalf("second move optimality = %v, want 0.25", eval.Moves["Dragon Claw"].Optimality)
	}
	if eval.TotalVisits != 200 || eval.NumScenarios != 2 {
		t.Fatalf("Evaluation metadata = %+v, want TotalVisits=200 NumScenarios=2", eval)
	}
}
