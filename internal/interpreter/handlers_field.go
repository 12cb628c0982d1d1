package interpreter

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// handleWeather applies "|-weather|RainDance" (a fresh start, possibly
// "|-weather|RainDance|[from] ability: Drizzle|[of] p2a: Politoed"),
// the server's once-per-turn "|-weather|RainDance|[upkeep]"
// reconfirmation of weather already in effect, and "|-weather|none"
// (spec §4.1), grounded on battle_modifier.py's weather(). The
// reconfirmation line must not reset the countdown — only the first,
// non-upkeep observation of a given weather starts a fresh count.
func handleWeather(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	name := fields[0]
	if name == "none" || name == "" {
		ctx.Battle.Weather = nil
		return nil
	}

	var source *model.Side
	if of, ok := annotation(fields, "of"); ok {
		tag, ident := sidePokemon(of)
		if s := ctx.Battle.SideByTag(tag); s != nil {
			source = s
			_ = ident
		}
	}

	w := ctx.Battle.Weather
	if _, upkeep := annotation(fields, "upkeep"); upkeep && w != nil && w.Name == name {
		if w.TurnsRemaining > 0 {
			w.TurnsRemaining--
			if w.TurnsRemaining == 0 {
				extendWeatherOnSurvival(ctx, w)
			}
		}
		return nil
	}

	turns := weatherDuration(ctx, fields, source, name)
	newWeather := &model.Weather{Name: name, TurnsRemaining: turns}
	if source != nil {
		newWeather.SourceTag = source.Tag
		if active := source.Active(); active != nil {
			newWeather.SourceName = active.Nickname
			if newWeather.SourceName == "" {
				newWeather.SourceName = active.Species
			}
		}
	}
	ctx.Battle.Weather = newWeather
	return nil
}

// weatherDuration computes a fresh weather countdown: indefinite for
// gen3-5 ability-sourced weather (those generations never naturally
// clear it), 8 turns when the setter's held item is the matching rock,
// else the default 5 (spec §4.1 item-extension rule).
func weatherDuration(ctx *Context, fields []string, source *model.Side, name string) int {
	if len(fields) > 1 && strings.HasPrefix(fields[1], "[from] ability:") {
		switch ctx.Battle.Generation {
		case "gen3", "gen4", "gen5":
			return weatherIndefiniteTurns
		}
	}
	if source != nil {
		if active := source.Active(); active != nil {
			if rock := rockItemFor(name); rock != "" && strings.EqualFold(active.Item, rock) {
				return 8
			}
		}
	}
	return 5
}

// weatherIndefiniteTurns marks ability-sourced weather in generations
// that never naturally expire it; handleWeather's upkeep path only
// counts down positive values, so it never counts this one down.
const weatherIndefiniteTurns = -1

// extendWeatherOnSurvival handles a countdown reaching zero without an
// explicit "-weather|none" ending it: the real duration was longer
// than assumed — grant three more turns and, if the setter is an
// opponent Pokemon with a still-unknown item, infer the matching rock
// item.
func extendWeatherOnSurvival(ctx *Context, w *model.Weather) {
	w.TurnsRemaining = 3
	if w.SourceTag != ctx.Battle.Opponent.Tag || w.SourceName == "" {
		return
	}
	p := findActiveOrByNickname(ctx.Battle.Opponent, w.SourceName)
	if p == nil || p.Item != model.ItemUnknown {
		return
	}
	if rock := rockItemFor(w.Name); rock != "" {
		p.SetItem(rock, true)
	}
}

// rockItemFor returns the held item that extends weather's duration to
// 8 turns, or "" if the weather has no matching rock.
func rockItemFor(weatherName string) string {
	switch strings.ToLower(weatherName) {
	case "raindance", "rain", "primordialsea":
		return "damprock"
	case "sunnyday", "sun", "desolateland":
		return "heatrock"
	case "sandstorm", "sand":
		return "smoothrock"
	case "hail", "snow", "snowscape":
		return "icyrock"
	default:
		return ""
	}
}

func handleFieldStart(ctx *Context, fields []string) error {
	if len(fields) < 1 {
		return nil
	}
	name := strings.TrimPrefix(fields[0], "move: ")
	ctx.Battle.Field = &model.Field{Name: name, TurnsRemaining: 5}
	return nil
}

func handleFieldEnd(ctx *Context, fields []string) error {
	ctx.Battle.Field = nil
	return nil
}

func handleSideStart(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, _ := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	cond := sideConditionFromEffect(fields[1])
	switch cond {
	case "":
		return applyNamedSideEffect(side, fields[1], true)
	default:
		side.Conditions[model.SideCondition(cond)] = model.DefaultSideConditionDuration[model.SideCondition(cond)]
	}
	return nil
}

func handleSideEnd(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, _ := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	cond := sideConditionFromEffect(fields[1])
	if cond == "" {
		return applyNamedSideEffect(side, fields[1], false)
	}
	delete(side.Conditions, model.SideCondition(cond))
	return nil
}

// sideConditionFromEffect maps a protocol effect name onto the
// duration-bearing SideCondition set, returning "" for conditions
// tracked as plain fields rather than a countdown map (stealth rock,
// spikes, etc., handled by applyNamedSideEffect).
func sideConditionFromEffect(effect string) string {
	switch strings.ToLower(effect) {
	case "reflect":
		return string(model.CondReflect)
	case "light screen", "lightscreen":
		return string(model.CondLightScreen)
	case "aurora veil", "auroraveil":
		return string(model.CondAuroraVeil)
	case "safeguard":
		return string(model.CondSafeguard)
	case "mist":
		return string(model.CondMist)
	case "tailwind":
		return string(model.CondTailwind)
	default:
		return ""
	}
}

func applyNamedSideEffect(side *model.Side, effect string, starting bool) error {
	switch strings.ToLower(effect) {
	case "stealth rock":
		side.StealthRock = starting
	case "spikes":
		if starting {
			if side.Spikes < 3 {
				side.Spikes++
			}
		} else {
			side.Spikes = 0
		}
	case "toxic spikes":
		if starting {
			if side.ToxicSpikes < 2 {
				side.ToxicSpikes++
			}
		} else {
			side.ToxicSpikes = 0
		}
	case "sticky web":
		side.StickyWeb = starting
	case "healing wish", "lunar dance":
		side.HealingWish = starting
	}
	return nil
}

// handleSwapSideConditions implements Court Change: the two sides'
// duration-bearing conditions and hazards trade places.
func handleSwapSideConditions(ctx *Context, fields []string) error {
	u, o := ctx.Battle.User, ctx.Battle.Opponent
	u.Conditions, o.Conditions = o.Conditions, u.Conditions
	u.StealthRock, o.StealthRock = o.StealthRock, u.StealthRock
	u.Spikes, o.Spikes = o.Spikes, u.Spikes
	u.ToxicSpikes, o.ToxicSpikes = o.ToxicSpikes, u.ToxicSpikes
	u.StickyWeb, o.StickyWeb = o.StickyWeb, u.StickyWeb
	return nil
}
