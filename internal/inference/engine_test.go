package inference

import (
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/data"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/rollout"
)

func newTestEngine(chart rollout.TypeChart) *Engine {
	return New(chart, nil, nil, nil, config.InferenceConfig{
		DamageRollLowerMult:      0.85 * 0.975,
		DamageRollUpperMult:      1.025,
		DamageRollSlack:          5,
		DamageRollCritMultiplier: 1.5,
	}, zap.NewNop())
}

func newTestBattle() *model.Battle {
	b := model.NewBattle("b1", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	user := model.NewPokemon("Garchomp", 100)
	user.Computed.Spe = 100
	b.User.AddToTeam(user)
	b.User.SwitchActiveTo(0, b.Generation)

	opp := model.NewPokemon("Ferrothorn", 100)
	opp.Base.Spe = 20
	opp.Ability = "ironbarbs"
	b.Opponent.AddToTeam(opp)
	b.Opponent.SwitchActiveTo(0, b.Generation)
	return b
}

func TestCheckSpeedBoundsNarrowsWhenBotActsFirst(t *testing.T) {
	e := newTestEngine(nil)
	b := newTestBattle()
	events := parseEvents([]string{
		"|move|p1a: Garchomp|Earthquake|p2a: Ferrothorn",
		"|move|p2a: Ferrothorn|Power Whip|p1a: Garchomp",
	})
	e.checkSpeedBounds(b, events)
	opp := b.Opponent.Active()
	if opp.SpeedRange.Max >= 1<<30 {
		t.Fatalf("expected speed range max to narrow, got %+v", opp.SpeedRange)
	}
}

func TestCheckSpeedBoundsSkipsOnDisqualifyingSwitch(t *testing.T) {
	e := newTestEngine(nil)
	b := newTestBattle()
	events := parseEvents([]string{
		"|switch|p2a: Ferrothorn|Ferrothorn, L100|100/100",
		"|move|p1a: Garchomp|Earthquake|p2a: Ferrothorn",
	})
	e.checkSpeedBounds(b, events)
	opp := b.Opponent.Active()
	if opp.SpeedRange.Max != 1<<30 {
		t.Fatalf("expected speed range untouched after a switch this turn, got %+v", opp.SpeedRange)
	}
}

func TestCheckHiddenPowerNarrowsPossibilities(t *testing.T) {
	chart := rollout.NewFakeTypeChart()
	chart.Set("fire", "steel", 2.0)
	chart.Set("water", "steel", 0.5)
	e := newTestEngine(chart)
	b := newTestBattle()
	b.User.Active().Types = []string{"steel"}

	events := parseEvents([]string{
		"|move|p2a: Ferrothorn|Hidden Power|p1a: Garchomp",
		"|-supereffective|p1a: Garchomp",
	})
	e.checkHiddenPower(b, events)
	opp := b.Opponent.Active()
	if !opp.HiddenPowerPossibilities["fire"] {
		t.Fatalf("expected fire retained as super-effective candidate")
	}
	if opp.HiddenPowerPossibilities["water"] {
		t.Fatalf("expected water eliminated (resisted, not super-effective)")
	}
}

func TestZoroarkSwapMovesStateOntoZoroark(t *testing.T) {
	e := newTestEngine(nil)
	b := newTestBattle()
	apparent := b.Opponent.Active()
	apparent.Species = "Togekiss"
	apparent.SetBoost(model.StatSpA, 2)
	apparent.MovesUsedSinceSwitchIn["Air Slash"] = true

	zoroark := model.NewPokemon("Zoroark", 100)
	b.Opponent.AddToTeam(zoroark)

	events := parseEvents([]string{
		"|-immune|p2a: Togekiss",
	})
	e.checkZoroark(b, events)

	active := b.Opponent.Active()
	if active.Species != "Zoroark" {
		t.Fatalf("expected zoroark to become active, got %s", active.Species)
	}
	if active.Boosts[model.StatSpA] != 2 {
		t.Fatalf("expected boosts transferred to zoroark, got %+v", active.Boosts)
	}
	if !active.MovesUsedSinceSwitchIn["Air Slash"] {
		t.Fatalf("expected moves-used transferred to zoroark")
	}
}

func TestLoadedEffectivenessTableSatisfiesTypeChart(t *testing.T) {
	var _ rollout.TypeChart = (*data.EffectivenessTable)(nil)
}
