package interpreter

import (
	"strconv"

	"github.com/l1jgo/battlecore/internal/model"
)

// handleUpkeep ticks every duration-bearing countdown by one turn,
// clearing anything that expires (terrain, side conditions, volatile
// durations, pending Wish/Future Sight). Weather's countdown is owned
// by handleWeather instead, since the server resends "-weather" with
// "[upkeep]" every turn and a separate bare-tag tick here would double
// count it. Applied once per turn's end-of-turn line.
func handleUpkeep(ctx *Context, fields []string) error {
	b := ctx.Battle
	if b.Field != nil {
		b.Field.TurnsRemaining--
		if b.Field.TurnsRemaining <= 0 {
			b.Field = nil
		}
	}
	if b.TrickRoom {
		b.TrickRoomTurns--
		if b.TrickRoomTurns <= 0 {
			b.TrickRoom = false
		}
	}
	tickSideConditions(b.User)
	tickSideConditions(b.Opponent)
	tickVolatiles(b.User)
	tickVolatiles(b.Opponent)
	tickPendingEffects(b.User)
	tickPendingEffects(b.Opponent)
	return nil
}

// tickPendingEffects counts down a side's pending Wish heal and
// pending Future Sight / Doom Desire hit once per upkeep, grounded on
// battle_modifier.py's upkeep() decrementing both tuples for both
// sides every turn.
func tickPendingEffects(s *model.Side) {
	if s.Wish.TurnsRemaining > 0 {
		s.Wish.TurnsRemaining--
	}
	if s.FutureSight.TurnsRemaining > 0 {
		s.FutureSight.TurnsRemaining--
	}
}

func tickSideConditions(s *model.Side) {
	for cond, turns := range s.Conditions {
		turns--
		if turns <= 0 {
			delete(s.Conditions, cond)
		} else {
			s.Conditions[cond] = turns
		}
	}
}

func tickVolatiles(s *model.Side) {
	a := s.Active()
	if a == nil {
		return
	}
	for name, v := range a.Volatiles {
		if v.Duration <= 0 {
			continue // undurationed volatiles persist until an explicit -end
		}
		v.Duration--
		if v.Duration <= 0 {
			delete(a.Volatiles, name)
		}
	}
}

// handleTurn applies "|turn|5": advances the turn counter and clears
// the per-turn force-switch/wait flags that the previous request cycle set.
func handleTurn(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil
	}
	ctx.Battle.Turn = n
	ctx.Battle.ForceSwitch = false
	ctx.Battle.Wait = false
	return nil
}
