package inference

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
)

// checkHeavyDutyBoots implements spec §4.2.3: on the opponent's
// switch-in, if a relevant hazard is on its side and nothing rules out
// hazard damage, the absence of the expected hazard event on the same
// turn reveals Heavy-Duty Boots.
func (e *Engine) checkHeavyDutyBoots(b *model.Battle, events []event) {
	if !e.generationEligibleForBoots(b) {
		return
	}
	side := b.Opponent
	if !hasRelevantHazard(side) {
		return
	}
	var switchedIn bool
	for _, ev := range events {
		if ev.tag == "switch" || ev.tag == "drag" {
			tag, _ := sideIdent(firstFieldOrEmpty(ev))
			if tag == string(side.Tag) {
				switchedIn = true
			}
		}
	}
	if !switchedIn {
		return
	}
	p := side.Active()
	if p == nil || p.Fainted {
		return
	}
	if !mayTakeHazardDamage(p, e.TypeChart, side) {
		return
	}

	hazardEventSeen := false
	for _, ev := range events {
		if ev.tag == "-damage" || ev.tag == "-status" || ev.tag == "-activate" {
			if _, ok := ev.annotation("from"); ok {
				if strings.Contains(strings.Join(ev.fields, " "), "Stealth Rock") ||
					strings.Contains(strings.Join(ev.fields, " "), "Spikes") ||
					strings.Contains(strings.Join(ev.fields, " "), "Sticky Web") ||
					strings.Contains(strings.Join(ev.fields, " "), "toxic spikes") {
					hazardEventSeen = true
				}
			}
		}
	}
	if hazardEventSeen {
		p.MarkItemImpossible("heavydutyboots")
	} else {
		p.SetItem("heavydutyboots", true)
	}
}

func (e *Engine) generationEligibleForBoots(b *model.Battle) bool {
	switch b.Generation {
	case "gen8", "gen9":
		return true
	default:
		return false
	}
}

func hasRelevantHazard(s *model.Side) bool {
	return s.StealthRock || s.Spikes > 0 || s.ToxicSpikes > 0 || s.StickyWeb
}

// mayTakeHazardDamage rules out Pokemon that can never be hurt by the
// hazards present regardless of boots: Magic Guard (possible or
// confirmed), Levitate (against grounded-only hazards), or a type
// immunity to the relevant hazard (stealth rock effectiveness via the
// injected type chart; spikes/sticky web only affect grounded Pokemon).
func mayTakeHazardDamage(p *model.Pokemon, chart rollout.TypeChart, side *model.Side) bool {
	if p.Ability == "magicguard" {
		return false
	}
	if !p.ImpossibleAbilities["magicguard"] && p.Ability == "" {
		return false // cannot rule out Magic Guard yet
	}
	grounded := p.Ability != "levitate"
	for _, t := range p.Types {
		if t == "flying" {
			grounded = false
		}
	}
	if !grounded && !side.StealthRock {
		return false
	}
	if side.StealthRock && chart != nil {
		mult := chart.Multiplier("rock", p.Types)
		if mult == 0 {
			return false
		}
	}
	return true
}

func firstFieldOrEmpty(ev event) string {
	if len(ev.fields) == 0 {
		return ""
	}
	return ev.fields[0]
}
