package interpreter

import (
	"strconv"

	"github.com/l1jgo/battlecore/internal/model"
)

func statFromTag(s string) (model.Stat, bool) {
	switch s {
	case "atk":
		return model.StatAtk, true
	case "def":
		return model.StatDef, true
	case "spa":
		return model.StatSpA, true
	case "spd":
		return model.StatSpD, true
	case "spe":
		return model.StatSpe, true
	case "accuracy":
		return model.StatAccuracy, true
	case "evasion":
		return model.StatEvasion, true
	default:
		return 0, false
	}
}

func activePokemonFor(ctx *Context, ident string) (*model.Side, *model.Pokemon) {
	tag, name := sidePokemon(ident)
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil, nil
	}
	return side, findActiveOrByNickname(side, name)
}

func handleBoost(ctx *Context, fields []string) error {
	return applyBoostDelta(ctx, fields, 1)
}

func handleUnboost(ctx *Context, fields []string) error {
	return applyBoostDelta(ctx, fields, -1)
}

// applyBoostDelta applies "|-boost|p1a: Garchomp|atk|1" / "|-unboost|...|spe|2".
func applyBoostDelta(ctx *Context, fields []string, sign int) error {
	if len(fields) < 3 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	stat, ok := statFromTag(fields[1])
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil
	}
	p.AddBoost(stat, sign*n)
	return nil
}

// handleSetBoost applies "|-setboost|p1a: Garchomp|atk|6" (Belly Drum).
func handleSetBoost(ctx *Context, fields []string) error {
	if len(fields) < 3 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	stat, ok := statFromTag(fields[1])
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil
	}
	p.SetBoost(stat, n)
	return nil
}

func handleClearBoost(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.ClearBoosts()
	return nil
}

func handleClearNegativeBoost(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.ClearNegativeBoosts()
	return nil
}

// handleClearAllBoost affects every active Pokemon on the field (Haze).
func handleClearAllBoost(ctx *Context, fields []string) error {
	if a := ctx.Battle.User.Active(); a != nil {
		a.ClearBoosts()
	}
	if a := ctx.Battle.Opponent.Active(); a != nil {
		a.ClearBoosts()
	}
	return nil
}
