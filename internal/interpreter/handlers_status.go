package interpreter

import "github.com/l1jgo/battlecore/internal/model"

func handleStatus(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.Status = parseStatus(fields[1])
	if p.Status == model.StatusSleep {
		p.SleepTurns = 0
		if ctx.Generation != nil {
			p.RestTurns = ctx.Generation.SleepCounterCap(ctx.Battle.Generation)
		} else {
			p.RestTurns = 3
		}
	}
	return nil
}

func handleCureStatus(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.Status = 0
	p.RestTurns = 0
	p.SleepTurns = 0
	return nil
}

// handleCureTeam applies Heal Bell / Aromatherapy: every teammate's
// major status clears.
func handleCureTeam(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	side, _ := activePokemonFor(ctx, fields[0])
	if side == nil {
		return nil
	}
	for _, p := range side.Team {
		p.Status = 0
		p.RestTurns = 0
		p.SleepTurns = 0
	}
	return nil
}
