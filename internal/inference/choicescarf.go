package inference

import "github.com/l1jgo/battlecore/internal/model"

// hypotheticalSpeedEVs returns the (EVs, nature) a choice-scarf check
// should hypothesize for the opponent, given the battle's team-
// generation regime (spec §4.2.2).
func hypotheticalSpeedEVs(b *model.Battle) (evSpe int, natureMultiplier float64) {
	switch {
	case b.TrickRoom:
		return 0, 0.9
	case b.BattleType == model.BattleTypeRandom:
		return 85, 1.0
	default:
		return 252, 1.1
	}
}

// checkChoiceScarf implements spec §4.2.2: if the opponent's move this
// turn acted first against the bot's equal-priority move and no
// disqualifying condition applies, test whether the hypothetical spread
// from hypotheticalSpeedEVs (the fastest spread for the battle's regime,
// the slowest one under Trick Room) would still lose to the bot — if so
// the opponent must hold Choice Scarf.
func (e *Engine) checkChoiceScarf(b *model.Battle, events []event) {
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
		}
	}
	if disqualified || len(moveTags) != 2 {
		return
	}
	if priorityBracket(moveNames[0]) != priorityBracket(moveNames[1]) {
		return
	}
	oppFirst := moveTags[0] == string(b.Opponent.Tag)
	if b.TrickRoom {
		oppFirst = !oppFirst
	}
	if !oppFirst {
		return
	}

	opp := b.Opponent.Active()
	user := b.User.Active()
	if opp == nil || user == nil || !opp.CanHaveChoiceItem {
		return
	}

	evSpe, natureMul := hypotheticalSpeedEVs(b)
	base := float64(opp.Base.Spe)
	if base == 0 {
		base = float64(opp.SpeedRange.Max)
	}
	hypoStat := ((2*base + 31 + float64(evSpe)/4) + 5) * natureMul
	hypoStat *= boostMultiplier(opp.Boosts[model.StatSpe])

	botSpeed := float64(effectiveSpeed(b, user, b.User))

	if hypoStat < botSpeed {
		opp.SetItem("choicescarf", true)
	}
}
