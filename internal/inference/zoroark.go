package inference

import (
	"strings"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/battleerr"
	"github.com/l1jgo/battlecore/internal/model"
)

// zoroarkFamily is the bundled list of species that can wear Illusion
// disguises. Move data (what a species can legally know) is external
// per spec §1, so the move-based detector below asks the dataset
// registry rather than owning its own move-legality table.
var zoroarkFamily = map[string]bool{
	"Zoroark": true, "Zorua": true, "Zoroark-Hisui": true, "Zorua-Hisui": true,
}

// checkZoroark implements spec §4.2.5's two independent detectors plus
// the atomic disguise-swap operation, and the separate replace-event
// rollback (the rollback itself happens in the interpreter's
// handleReplace — this pass only runs the two *detectors* that trigger
// a swap before any "replace" line ever arrives).
func (e *Engine) checkZoroark(b *model.Battle, events []event) {
	opp := b.Opponent.Active()
	if opp == nil || opp.DisguisedAs != "" || zoroarkFamily[opp.Species] {
		return
	}

	for _, ev := range events {
		switch ev.tag {
		case "move":
			if len(ev.fields) < 2 {
				continue
			}
			tag, _ := sideIdent(ev.fields[0])
			if tag != string(b.Opponent.Tag) {
				continue
			}
			if e.moveIsImpossibleForApparentSpecies(opp, ev.fields[1]) && e.zoroarkReserveCouldHaveMove(b.Opponent, ev.fields[1]) {
				if err := e.swapInZoroark(b.Opponent, opp); err != nil {
					e.Log.Warn("zoroark swap aborted", zap.Error(err))
				}
				return
			}
		case "-immune":
			if len(ev.fields) < 1 {
				continue
			}
			tag, _ := sideIdent(ev.fields[0])
			if tag != string(b.Opponent.Tag) {
				continue
			}
			if _, explained := ev.annotation("from"); explained {
				continue // an explicit ability annotation explains the immunity
			}
			if e.zoroarkReserveExists(b.Opponent) {
				if err := e.swapInZoroark(b.Opponent, opp); err != nil {
					e.Log.Warn("zoroark swap aborted", zap.Error(err))
				}
				return
			}
		}
	}
}

// moveIsImpossibleForApparentSpecies is intentionally conservative:
// without an owned movepool table (external per spec §1), it only
// flags moves already recorded as impossible via some other signal —
// in practice the dataset-driven AllPossibleMoves set for the species.
func (e *Engine) moveIsImpossibleForApparentSpecies(p *model.Pokemon, move string) bool {
	if e.Datasets == nil {
		return false
	}
	for _, known := range e.Datasets.Primary.AllPossibleMoves(p) {
		if strings.EqualFold(known, move) {
			return false
		}
	}
	return len(e.Datasets.Primary.AllPossibleMoves(p)) > 0
}

// zoroarkReserveCouldHaveMove reports whether a live Zoroark-family
// reserve member could know move: the dataset lists it among that
// member's possible moves, or the dataset lists no moves for it at all.
func (e *Engine) zoroarkReserveCouldHaveMove(side *model.Side, move string) bool {
	if e.Datasets == nil {
		return e.zoroarkReserveExists(side)
	}
	for _, p := range side.Reserve() {
		if !zoroarkFamily[p.Species] || p.Fainted {
			continue
		}
		moves := e.Datasets.Primary.AllPossibleMoves(p)
		if len(moves) == 0 {
			return true
		}
		for _, known := range moves {
			if strings.EqualFold(known, move) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) zoroarkReserveExists(side *model.Side) bool {
	for _, p := range side.Reserve() {
		if zoroarkFamily[p.Species] && !p.Fainted {
			return true
		}
	}
	return false
}

// swapInZoroark performs the atomic disguise-reveal operation of
// spec §4.2.5: the apparent Pokemon's in-battle state (everything
// accrued since switch-in) actually belongs to a Zoroark hiding in
// reserve, so it is transferred onto the Zoroark before the swap. A
// reserve with zero or more than one live Zoroark-family candidate
// can't be resolved to a single disguise source, so the swap is
// refused and surfaced as an ambiguous-inference error rather than
// guessed at.
func (e *Engine) swapInZoroark(side *model.Side, apparent *model.Pokemon) error {
	var zIdx = -1
	candidates := 0
	for i, p := range side.Team {
		if zoroarkFamily[p.Species] && !p.Fainted && p != apparent {
			candidates++
			if zIdx < 0 {
				zIdx = i
			}
		}
	}
	if candidates != 1 {
		return battleerr.Wrap(battleerr.KindSkipSwap, battleerr.ErrAmbiguousInference)
	}
	zoroark := side.Team[zIdx]

	for name := range apparent.MovesUsedSinceSwitchIn {
		zoroark.AddMove(name, 16)
		zoroark.MovesUsedSinceSwitchIn[name] = true
	}
	apparent.MovesUsedSinceSwitchIn = make(map[string]bool)

	zoroark.SetHPPercent(apparent.HPPercent())

	for stat, val := range apparent.Boosts {
		zoroark.SetBoost(stat, val)
	}
	apparent.ClearBoosts()
	zoroark.Status = apparent.Status
	apparent.Status = model.StatusNone
	for name, v := range apparent.Volatiles {
		zoroark.Volatiles[name] = v
	}
	apparent.ClearVolatiles()
	zoroark.Terastallized = apparent.Terastallized
	apparent.Terastallized = false

	zoroark.DisguisedAs = apparent.Species

	apparentIdx := side.ActiveIndex
	side.Team[apparentIdx], side.Team[zIdx] = side.Team[zIdx], side.Team[apparentIdx]
	side.ActiveIndex = apparentIdx
	return nil
}
