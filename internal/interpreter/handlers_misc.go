package interpreter

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// handleStart applies "|-start|p2a: Gengar|Taunt" and similar
// duration-bearing volatile starts, plus two effects that hitch a ride
// on "-start" instead of getting their own tag: "typechange" (Conversion,
// Soak) and Future Sight/Doom Desire's delayed-hit countdown — the
// latter grounded on battle_modifier.py's start_volatile_status, which
// notes futuresight arrives via -start rather than its own message.
// Other known durations are applied; unrecognized volatiles are still
// recorded with no countdown so HasVolatile checks remain meaningful
// (spec §7 graceful degradation).
func handleStart(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	side, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	name := strings.ToLower(strings.TrimPrefix(fields[1], "move: "))
	key := strings.ReplaceAll(name, " ", "")

	if key == "typechange" && len(fields) >= 3 {
		if p.OriginalTypes == nil {
			p.OriginalTypes = append([]string(nil), p.Types...)
		}
		p.Types = strings.Split(fields[2], "/")
		return nil
	}
	if key == "futuresight" || key == "doomdesire" {
		if side == nil {
			return nil
		}
		sourceName := p.Nickname
		if sourceName == "" {
			sourceName = p.Species
		}
		side.FutureSight = model.FutureSight{TurnsRemaining: 3, SourceName: sourceName}
		return nil
	}

	p.SetVolatile(name, volatileDefaultDuration(name))
	return nil
}

func volatileDefaultDuration(name string) int {
	switch name {
	case "taunt":
		return 3
	case "encore":
		return 3
	case "yawn":
		return 2
	case "slowstart":
		return 5
	case "confusion":
		return 4
	default:
		return 0
	}
}

func handleEnd(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	name := strings.ToLower(strings.TrimPrefix(fields[1], "move: "))
	p.RemoveVolatile(name)
	return nil
}

// handleActivate covers a grab-bag of one-off protocol notifications
// ("|-activate|p2a: Ferrothorn|move: Protect") that the inference
// engine's line scan keys on directly; the interpreter records nothing
// beyond what -start/-end/-item/-ability already capture.
func handleActivate(ctx *Context, fields []string) error {
	return nil
}

// handlePrepare marks a charging move in progress (Solar Beam,
// Sky Attack) via a volatile named after the move.
func handlePrepare(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	_, p := activePokemonFor(ctx, fields[0])
	if p == nil {
		return nil
	}
	p.SetVolatile("preparing:"+strings.ToLower(fields[1]), 1)
	return nil
}

// handleAnim is a pure cosmetic hint (forced animation for a disguised
// move) and mutates nothing.
func handleAnim(ctx *Context, fields []string) error {
	return nil
}

// handleFail records nothing on the Battle itself; a failed move is
// informative only for inference passes (e.g. a failed Taunt against
// an already-Taunted target), which read it straight off the line
// buffer.
func handleFail(ctx *Context, fields []string) error {
	return nil
}

func handleInactive(ctx *Context, fields []string) error {
	ctx.Battle.Wait = true
	return nil
}

func handleInactiveOff(ctx *Context, fields []string) error {
	ctx.Battle.Wait = false
	return nil
}

// handleNoinit covers room-join bookkeeping lines the interpreter has
// no state for.
func handleNoinit(ctx *Context, fields []string) error {
	return nil
}
