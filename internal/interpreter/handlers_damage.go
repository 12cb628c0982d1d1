package interpreter

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// concreteChoiceItems are the items that lock a Pokemon into its last
// move once chosen.
var concreteChoiceItems = map[string]bool{
	"choiceband": true, "choicespecs": true, "choicescarf": true,
}

// handleHealOrDamage applies "|-heal|p2a: Ferrothorn|100/100" and
// "|-damage|p2a: Ferrothorn|54/100" identically: both carry an
// absolute resulting condition string, so there is nothing to add or
// subtract — the new condition simply replaces the old one (spec §4.1
// "-heal / -damage").
func handleHealOrDamage(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	p := findActiveOrByNickname(side, ident)
	if p == nil {
		return nil
	}
	applyCondition(p, fields[1])
	return nil
}

// handleSetHP applies "|-sethp|p1a: Slowbro|100/100|p2a: Ferrothorn|54/100",
// a pair of absolute HP sets (Pain Split).
func handleSetHP(ctx *Context, fields []string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		tag, ident := sidePokemon(fields[i])
		side := ctx.Battle.SideByTag(tag)
		if side == nil {
			continue
		}
		p := findActiveOrByNickname(side, ident)
		if p == nil {
			continue
		}
		applyCondition(p, fields[i+1])
	}
	return nil
}

// handleMove records the move as known and decrements PP, and updates
// the side's last-used-move bookkeeping that choice-lock and
// speed-range inference consult (spec §4.1 "move", §4.2.2).
func handleMove(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	moveName := fields[1]
	p := findActiveOrByNickname(side, ident)
	if p == nil {
		return nil
	}
	if !p.HasMove(moveName) {
		p.AddMove(moveName, maxPPFor(moveName))
	} else if m := p.MoveByName(moveName); m != nil {
		m.DecrementPP(1)
	}
	disproveChoiceLock(p, moveName)
	p.MovesUsedSinceSwitchIn[moveName] = true
	if strings.EqualFold(moveName, "Sleep Talk") && p.Status == model.StatusSleep {
		p.Gen3ConsecutiveSleepTalks++
	}
	if strings.EqualFold(moveName, "Wish") {
		if _, still := annotation(fields, "still"); !still {
			side.Wish = model.Wish{TurnsRemaining: 2, Amount: p.MaxHP / 2}
		}
	}
	side.LastUsedMove.PokemonName = p.Species
	side.LastUsedMove.MoveName = moveName
	side.LastUsedMove.Turn = ctx.Battle.Turn
	return nil
}

// disproveChoiceLock handles a Pokemon holding a concrete choice item
// that uses a second, distinct move since its last switch-in: it
// couldn't actually be holding that item, so the observation is
// retracted back to unknown and the item marked impossible rather than
// left to silently mislead later inference.
func disproveChoiceLock(p *model.Pokemon, moveName string) {
	if !concreteChoiceItems[p.Item] {
		return
	}
	for used := range p.MovesUsedSinceSwitchIn {
		if used != moveName {
			wasItem := p.Item
			p.CanHaveChoiceItem = false
			p.ResetItemToUnknown()
			p.MarkItemImpossible(wasItem)
			return
		}
	}
}

// maxPPFor is a crude base-PP estimate used only until a real move
// data table is wired in (spec §1 scopes move definitions out as
// external static data); 16 covers the common case and PP tracking is
// advisory here, never load-bearing for a decision.
func maxPPFor(moveName string) int {
	_ = moveName
	return 16
}

func handleCant(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	p := findActiveOrByNickname(side, ident)
	if p == nil {
		return nil
	}
	reason := fields[1]
	switch {
	case strings.HasPrefix(reason, "ability: "):
		// e.g. "cant|p2a: Slaking|ability: Truant" — not a disqualifying
		// event for speed-range inference (spec §4.2.1 edge cases).
	case reason == "slp", reason == "frz", reason == "par":
	case reason == "flinch":
	}
	if len(fields) >= 3 && !p.HasMove(fields[2]) {
		p.AddMove(fields[2], maxPPFor(fields[2]))
	}
	return nil
}

func handleMustRecharge(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	if p := findActiveOrByNickname(side, ident); p != nil {
		p.SetVolatile("mustrecharge", 1)
	}
	return nil
}

func handleSingleTurn(ctx *Context, fields []string) error {
	return setSimpleVolatile(ctx, fields, 1)
}

func handleSingleMove(ctx *Context, fields []string) error {
	return setSimpleVolatile(ctx, fields, 1)
}

// setSimpleVolatile installs a short-lived volatile named by the
// effect argument, e.g. "|-singleturn|p1a: Greninja|Protect".
func setSimpleVolatile(ctx *Context, fields []string, duration int) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	p := findActiveOrByNickname(side, ident)
	if p == nil {
		return nil
	}
	name := strings.ToLower(strings.TrimPrefix(fields[1], "move: "))
	p.SetVolatile(name, duration)
	return nil
}
