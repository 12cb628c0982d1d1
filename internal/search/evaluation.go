package search

// MoveEvaluation is one action's normalized standing in the final
// aggregated policy, grounded on
// _examples/original_source/fp/evaluate.py's MoveEvaluation dataclass
// (spec §4.3 "Optional evaluation view").
type MoveEvaluation struct {
	Move            string
	Optimality      float64 // 0..1, 1 = the highest-scored action
	VisitPercentage float64 // scenario-weighted average share of visits
	WinRate         float64 // scenario-weighted average total_score/visits
	RawScore        float64 // weighted_score before optimality normalization
}

// Evaluation is the full aggregated view of one decision, grounded on
// evaluate.py's BattleEvaluation.
type Evaluation struct {
	BestMove     string
	Moves        map[string]MoveEvaluation
	NumScenarios int
	TotalVisits  uint64
}

// TopMoves returns the n highest-optimality moves, most optimal first.
func (e *Evaluation) TopMoves(n int) []MoveEvaluation {
	out := make([]MoveEvaluation, 0, len(e.Moves))
	for _, m := range e.Moves {
		out = append(out, m)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Optimality > out[j-1].Optimality; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
