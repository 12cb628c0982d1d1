package interpreter

import (
	"strconv"
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// handleSwitch and handleDrag both bring a Pokemon active; the only
// difference is drag is involuntary (Whirlwind, Roar, a fainted
// Pokemon's forced replacement) and never carries Baton Pass/Shed Tail
// semantics (spec §4.1 "switch / drag").
func handleSwitch(ctx *Context, fields []string) error {
	return switchOrDrag(ctx, fields, false)
}

func handleDrag(ctx *Context, fields []string) error {
	return switchOrDrag(ctx, fields, true)
}

// switchOrDrag implements "|switch|p2a: Zoroark|Zoroark, L78, F|261/261".
// fields = [ident, details, condition].
func switchOrDrag(ctx *Context, fields []string, forced bool) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	species := parseDetailsSpecies(fields[1])
	species = applyZoroarkSwitchHook(ctx, side, ident, species)

	idx := side.FindBySpecies(species)
	if idx < 0 {
		maxHP := 100
		p := model.NewPokemon(species, maxHP)
		p.Nickname = ident
		idx = side.AddToTeam(p)
	}
	var passedBoosts map[model.Stat]int
	if old := side.Active(); !forced && old != nil && (old.HasVolatile("batonpass") || old.HasVolatile("shedtail")) {
		passedBoosts = make(map[model.Stat]int, len(old.Boosts))
		for stat, val := range old.Boosts {
			passedBoosts[stat] = val
		}
	}
	side.SwitchActiveTo(idx, ctx.Battle.Generation)
	if passedBoosts != nil {
		carryOverBoosts(passedBoosts, side.Active())
	}
	if len(fields) >= 3 {
		applyCondition(side.Active(), fields[2])
	}
	markSwitchInReveals(ctx, side, ctx.Battle.OtherSide(side))
	return nil
}

// abilitiesRevealedOnSwitchIn and itemsRevealedOnSwitchIn are the
// bundled lists of abilities/items that would have visibly announced
// themselves via a separate protocol line on switch-in if the
// incoming Pokemon actually had them, so their absence here rules them
// out (spec §4.1 switch/drag handler), grounded on
// battle_modifier.py's ABILITIES_REVEALED_ON_SWITCH_IN /
// ITEMS_REVEALED_ON_SWITCH_IN.
var abilitiesRevealedOnSwitchIn = []string{
	"intimidate", "pressure", "neutralizinggas", "sandstream", "drought", "drizzle", "snowwarning",
}

var itemsRevealedOnSwitchIn = []string{
	"boosterenergy", "airballoon",
}

// weatherAlreadyExplainsAbility reports whether the battle's current
// weather could itself have been caused by ability, so its absence on
// switch-in proves nothing either way.
func weatherAlreadyExplainsAbility(b *model.Battle, ability string) bool {
	if b.Weather == nil {
		return false
	}
	name := strings.ToLower(b.Weather.Name)
	switch ability {
	case "sandstream":
		return name == "sandstorm"
	case "drought":
		return name == "sunnyday" || name == "desolateland"
	case "drizzle":
		return name == "raindance" || name == "primordialsea"
	case "snowwarning":
		return name == "hail" || name == "snow"
	default:
		return false
	}
}

// markSwitchInReveals marks the bundled switch-in "would have
// announced itself" abilities/items impossible for the incoming
// Pokemon on side, unless the opposing active holds Neutralizing Gas
// (which suppresses ability-reveal entirely) or gen3 (where Pressure
// isn't revealed on switch-in) or the weather already explains the
// ability away.
func markSwitchInReveals(ctx *Context, side, other *model.Side) {
	p := side.Active()
	if p == nil {
		return
	}
	suppressedByGas := other != nil && other.Active() != nil && other.Active().Ability == "neutralizinggas"
	for _, ability := range abilitiesRevealedOnSwitchIn {
		if ctx.Battle.Generation == "gen3" && ability == "pressure" {
			continue
		}
		if weatherAlreadyExplainsAbility(ctx.Battle, ability) {
			continue
		}
		if suppressedByGas {
			continue
		}
		p.MarkAbilityImpossible(ability)
	}
	for _, item := range itemsRevealedOnSwitchIn {
		p.MarkItemImpossible(item)
	}
}

// applyZoroarkSwitchHook implements the pre-construction disguise
// override for side p2 only: if that side's team already holds an
// undisguised Zoroark whose nickname equals the switching ident, the
// switch-in is treated as that Zoroark wearing species as a disguise
// rather than species itself (spec §4.2.5 "Illusion"). The bot's own
// switch selections and the request snapshot are not consulted, and
// p1 switches are never overridden. Concrete illusion *detection*
// (moves/immunities disproving the disguise) lives in the inference
// engine; this hook only prevents constructing a throwaway team-slot
// for the fake species.
func applyZoroarkSwitchHook(ctx *Context, side *model.Side, ident, species string) string {
	if side.Tag != model.SideP2 {
		return species
	}
	for _, p := range side.Team {
		if p.Species == "Zoroark" && p.DisguisedAs == "" && p.Nickname == ident {
			return "Zoroark"
		}
	}
	return species
}

// carryOverBoosts implements Baton Pass / Shed Tail stat-stage
// transfer: boosts holds the outgoing Pokemon's stages, copied before
// SwitchActiveTo cleared them, and is applied to the incoming Pokemon
// (spec §4.1).
func carryOverBoosts(boosts map[model.Stat]int, next *model.Pokemon) {
	if next == nil {
		return
	}
	for stat, val := range boosts {
		next.SetBoost(stat, val)
	}
}

// parseDetailsSpecies extracts the species name from a details string
// like "Zoroark, L78, F" or "Ditto".
func parseDetailsSpecies(details string) string {
	if idx := strings.Index(details, ","); idx >= 0 {
		return strings.TrimSpace(details[:idx])
	}
	return strings.TrimSpace(details)
}

// applyCondition parses a "261/261" or "54/100" or "0 fnt" condition
// string onto p, using percent scaling until MaxHP is concretely known
// (spec §3.2 invariant 3).
func applyCondition(p *model.Pokemon, condition string) {
	if p == nil {
		return
	}
	condition = strings.TrimSpace(condition)
	if condition == "0 fnt" || condition == "0" {
		p.HP = 0
		p.Fainted = true
		return
	}
	fields := strings.Fields(condition)
	hpPart := fields[0]
	parts := strings.SplitN(hpPart, "/", 2)
	if len(parts) != 2 {
		return
	}
	cur, err1 := strconv.Atoi(parts[0])
	max, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return
	}
	if max == 100 && p.MaxHP != 100 {
		p.SetHPPercent(float64(cur))
		return
	}
	p.MaxHP = max
	p.HP = cur
	p.Fainted = cur <= 0
	if len(fields) > 1 {
		p.Status = parseStatus(fields[1])
	}
}

func parseStatus(s string) model.Status {
	switch s {
	case "brn":
		return model.StatusBurn
	case "frz":
		return model.StatusFreeze
	case "par":
		return model.StatusParalysis
	case "psn":
		return model.StatusPoison
	case "tox":
		return model.StatusBadlyPoisoned
	case "slp":
		return model.StatusSleep
	default:
		return model.StatusNone
	}
}

func handleFaint(ctx *Context, fields []string) error {
	if len(fields) < 1 {
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
	p.HP = 0
	p.Fainted = true
	return nil
}

func findActiveOrByNickname(side *model.Side, ident string) *model.Pokemon {
	if a := side.Active(); a != nil && (a.Nickname == ident || a.Species == ident) {
		return a
	}
	for _, p := range side.Team {
		if p.Nickname == ident || p.Species == ident {
			return p
		}
	}
	return nil
}

func handleDetailsChange(ctx *Context, fields []string) error {
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
	p.Species = parseDetailsSpecies(fields[1])
	return nil
}

// handleReplace is the Illusion-break notification: the server reveals
// the true identity of what was believed to be species. The interpreter
// rolls the disguised Pokemon's HP/status back to what it was at
// switch-in, since everything observed since then applied to the
// fake (spec §4.2.5 "rollback on replace").
func handleReplace(ctx *Context, fields []string) error {
	if len(fields) < 2 {
		return nil
	}
	tag, ident := sidePokemon(fields[0])
	side := ctx.Battle.SideByTag(tag)
	if side == nil {
		return nil
	}
	p := side.Active()
	if p == nil {
		return nil
	}
	trueSpecies := parseDetailsSpecies(fields[1])
	p.DisguisedAs = p.Species
	p.Species = trueSpecies
	p.Nickname = ident
	p.HP = p.AtSwitchIn.HP
	p.Status = p.AtSwitchIn.Status
	p.Fainted = p.HP == 0
	return nil
}
