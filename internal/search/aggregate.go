package search

import (
	"math/rand"
	"sort"

	"github.com/l1jgo/battlecore/internal/rollout"
)

// survivalFraction is the retention cutoff relative to the best
// action's weighted score (spec §4.3 Aggregation "Retain only actions
// with weighted_score >= 0.75 x max_weighted_score").
const survivalFraction = 0.75

// sampleResult is one rollout worker's outcome paired with the sample
// weight it contributes to the aggregate policy (spec §4.3
// "weighted by sample_chance = 1 / N_samples").
type sampleResult struct {
	result rollout.Result
	chance float64
}

// actionStat accumulates one action's weighted visit fraction and
// scenario-weighted win rate across every sample it appeared in.
type actionStat struct {
	weightedVisitFraction float64
	weightedWinRate       float64
}

// aggregate folds every sample's per-action visit/score tally into a
// single weighted policy (spec §4.3 Aggregation).
func aggregate(results []sampleResult) map[string]*actionStat {
	stats := make(map[string]*actionStat)
	for _, r := range results {
		if r.result.TotalVisits == 0 {
			continue
		}
		for _, av := range r.result.SideOne {
			st := stats[av.MoveChoice]
			if st == nil {
				st = &actionStat{}
				stats[av.MoveChoice] = st
			}
			visitFraction := float64(av.Visits) / float64(r.result.TotalVisits)
			st.weightedVisitFraction += r.chance * visitFraction
			if av.Visits > 0 {
				st.weightedWinRate += r.chance * (av.TotalScore / float64(av.Visits))
			}
		}
	}
	return stats
}

// survivors returns the action names whose weighted visit fraction is
// at least survivalFraction of the best action's, sorted by name for
// deterministic iteration (spec §4.3 "Retain only actions ...").
func survivors(stats map[string]*actionStat) []string {
	if len(stats) == 0 {
		return nil
	}
	max := 0.0
	for _, st := range stats {
		if st.weightedVisitFraction > max {
			max = st.weightedVisitFraction
		}
	}
	var names []string
	for name, st := range stats {
		if max == 0 || st.weightedVisitFraction >= survivalFraction*max {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// weightedRandomChoice draws one of names with probability
// proportional to its weighted visit fraction (spec §4.3 "Draw the
// final action by weighted random choice among the survivors").
func weightedRandomChoice(rnd *rand.Rand, stats map[string]*actionStat, names []string) string {
	if len(names) == 0 {
		return ""
	}
	total := 0.0
	for _, n := range names {
		total += stats[n].weightedVisitFraction
	}
	if total <= 0 {
		return names[rnd.Intn(len(names))]
	}
	target := rnd.Float64() * total
	running := 0.0
	for _, n := range names {
		running += stats[n].weightedVisitFraction
		if target < running {
			return n
		}
	}
	return names[len(names)-1]
}

// buildEvaluation normalizes stats into the optional evaluation view
// (spec §4.3 "Optional evaluation view"), grounded on evaluate.py's
// MoveEvaluation/BattleEvaluation normalization.
func buildEvaluation(bestMove string, stats map[string]*actionStat, numScenarios int, totalVisits uint64) *Evaluation {
	max := 0.0
	for _, st := range stats {
		if st.weightedVisitFraction > max {
			max = st.weightedVisitFraction
		}
	}
	moves := make(map[string]MoveEvaluation, len(stats))
	for name, st := range stats {
		optimality := 0.0
		if max > 0 {
			optimality = st.weightedVisitFraction / max
		}
		moves[name] = MoveEvaluation{
			Move:            name,
			Optimality:      optimality,
			VisitPercentage: st.weightedVisitFraction,
			WinRate:         st.weightedWinRate,
			RawScore:        st.weightedVisitFraction,
		}
	}
	return &Evaluation{
		BestMove:     bestMove,
		Moves:        moves,
		NumScenarios: numScenarios,
		TotalVisits:  totalVisits,
	}
}
