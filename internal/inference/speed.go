package inference

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// priorityOf is a small bundled approximation of move priority
// brackets, used only to decide whether two moves this turn were of
// equal priority (spec §4.2.1 needs this, but move data itself is
// external per spec §1). Keys are compact move ids (lowercase letters
// and digits only); anything not listed is assumed priority 0.
var priorityOf = map[string]int{
	"extremespeed": 2, "feint": 2,
	"quickattack": 1, "aquajet": 1, "bulletpunch": 1, "iceshard": 1,
	"machpunch": 1, "shadowsneak": 1, "suckerpunch": 1, "vacuumwave": 1,
	"grassyglide": 1, "accelrock": 1,
	"protect": 4, "detect": 4, "banefulbunker": 4, "kingsshield": 4, "spikyshield": 4,
	"fakeout": 3, "helpinghand": 5,
	"whirlwind": -6, "roar": -6, "dragontail": -6, "circlethrow": -6,
	"trickroom": -7,
}

func priorityBracket(move string) int {
	var id strings.Builder
	for _, r := range strings.ToLower(move) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			id.WriteRune(r)
		}
	}
	return priorityOf[id.String()]
}

// checkSpeedBounds implements spec §4.2.1: after a turn with exactly
// one or two equal-priority move events and no disqualifying event,
// narrow the opponent's inferred speed_range.
func (e *Engine) checkSpeedBounds(b *model.Battle, events []event) {
	var moveTags []string
	var moveNames []string
	disqualified := false

	for _, ev := range events {
		switch ev.tag {
		case "switch", "drag", "cant":
			disqualified = true
		case "move":
			if len(ev.fields) < 2 {
				continue
			}
			tag, _ := sideIdent(ev.fields[0])
			moveTags = append(moveTags, tag)
			moveNames = append(moveNames, ev.fields[1])
		case "-activate":
			if _, ok := ev.annotation("move"); ok {
				// self-hit-in-confusion and similar forced actions
				disqualified = true
			}
		}
		if strings.Contains(ev.lastFieldOrEmpty(), "Custap Berry") ||
			strings.Contains(ev.lastFieldOrEmpty(), "Quick Claw") ||
			strings.Contains(ev.lastFieldOrEmpty(), "Quick Draw") {
			disqualified = true
		}
	}
	if disqualified || len(moveTags) == 0 || len(moveTags) > 2 {
		return
	}
	if len(moveTags) == 2 && priorityBracket(moveNames[0]) != priorityBracket(moveNames[1]) {
		return
	}

	opp := b.Opponent.Active()
	user := b.User.Active()
	if opp == nil || user == nil || opp.Fainted || user.Fainted {
		return
	}
	if mayHaveSpeedSkewingAbility(opp) {
		return
	}

	if len(moveTags) != 2 {
		// A single move this turn carries no ordering information.
		return
	}
	botFirst := moveTags[0] == string(b.User.Tag)
	if b.TrickRoom {
		botFirst = !botFirst
	}

	botSpeed := effectiveSpeed(b, user, b.User)
	oppMultiplier := boostMultiplier(opp.Boosts[model.StatSpe])
	threshold := int(float64(botSpeed) / oppMultiplier)

	if botFirst {
		// Bot acted first: the opponent's raw speed is at most threshold.
		opp.NarrowSpeedRange(0, threshold)
	} else {
		// Opponent acted first: its raw speed is at least threshold.
		opp.NarrowSpeedRange(threshold, 1<<30)
	}
}

// mayHaveSpeedSkewingAbility skips the check when the opponent's known
// or still-possible ability could multiply or reorder its speed in a
// way this pass does not model (spec §4.2.1 "skip when...").
func mayHaveSpeedSkewingAbility(p *model.Pokemon) bool {
	switch strings.ToLower(p.Ability) {
	case "chlorophyll", "swiftswim", "sandrush", "slushrush", "surgesurfer",
		"prankster", "grassyglide", "myceliummight", "quarkdrive", "protosynthesis":
		return true
	}
	if p.Ability == "" {
		for _, skewing := range []string{"chlorophyll", "swiftswim", "sandrush", "slushrush", "prankster"} {
			if !p.ImpossibleAbilities[skewing] {
				return true
			}
		}
	}
	return false
}

// effectiveSpeed applies boosts and the bot's own choice-scarf/
// tailwind corrections on its own (fully known) side.
func effectiveSpeed(b *model.Battle, p *model.Pokemon, side *model.Side) int {
	speed := float64(p.Computed.Spe)
	if speed == 0 {
		speed = float64(p.Base.Spe)
	}
	speed *= boostMultiplier(p.Boosts[model.StatSpe])
	if p.Status == model.StatusParalysis {
		switch b.Generation {
		case "gen4", "gen5", "gen6":
			speed /= 4
		default:
			speed /= 2
		}
	}
	if _, ok := side.Conditions[model.CondTailwind]; ok {
		speed *= 2
	}
	if p.Item == "choicescarf" {
		speed *= 1.5
	}
	return int(speed)
}

func boostMultiplier(stage int) float64 {
	if stage >= 0 {
		return (2.0 + float64(stage)) / 2.0
	}
	return 2.0 / (2.0 - float64(stage))
}

// lastFieldOrEmpty is a tiny convenience for the Custap/Quick-Claw/
// Quick-Draw textual scan: it returns the event's last field (the item
// or ability name on an -activate/-enditem line), or "" when the event
// has no fields.
func (ev event) lastFieldOrEmpty() string {
	if len(ev.fields) == 0 {
		return ""
	}
	return ev.fields[len(ev.fields)-1]
}
