package inference

import (
	"strings"

	"github.com/l1jgo/battlecore/internal/model"
)

// checkHiddenPower implements spec §4.2.4: the event line following an
// opponent's Hidden Power reveals effectiveness against the bot's
// current types, which narrows hidden_power_possibilities to only the
// candidate types consistent with what was observed.
func (e *Engine) checkHiddenPower(b *model.Battle, events []event) {
	if e.TypeChart == nil {
		return
	}
	for i, ev := range events {
		if ev.tag != "move" || len(ev.fields) < 2 {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(ev.fields[1]), "hidden power") {
			continue
		}
		tag, _ := sideIdent(ev.fields[0])
		if tag != string(b.Opponent.Tag) {
			continue
		}
		opp := b.Opponent.Active()
		defender := b.User.Active()
		if opp == nil || defender == nil {
			return
		}
		if i+1 >= len(events) {
			return
		}
		next := events[i+1]
		keep := make(map[string]bool, len(model.HiddenPowerTypes))
		switch next.tag {
		case "-resisted":
			for _, t := range model.HiddenPowerTypes {
				if e.TypeChart.Multiplier(t, defender.Types) < 1.0 {
					keep[t] = true
				}
			}
		case "-supereffective":
			for _, t := range model.HiddenPowerTypes {
				if e.TypeChart.Multiplier(t, defender.Types) > 1.0 {
					keep[t] = true
				}
			}
		case "-damage":
			for _, t := range model.HiddenPowerTypes {
				if e.TypeChart.Multiplier(t, defender.Types) == 1.0 {
					keep[t] = true
				}
			}
		default:
			return
		}
		opp.NarrowHiddenPower(keep)
		return
	}
}
