package interpreter

import (
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/model"
)

func newTestBattle() *model.Battle {
	b := model.NewBattle("battle-1", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	b.User.AddToTeam(model.NewPokemon("Garchomp", 100))
	b.User.SwitchActiveTo(0, b.Generation)
	b.Opponent.AddToTeam(model.NewPokemon("Ferrothorn", 100))
	b.Opponent.SwitchActiveTo(0, b.Generation)
	return b
}

func TestUpdateBuffersUntilRequest(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	required, err := ip.Update(b, "|move|p1a: Garchomp|Earthquake|p2a: Ferrothorn")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if required {
		t.Fatalf("expected no action required before request")
	}
	if len(b.PendingLines) != 1 {
		t.Fatalf("expected line buffered, got %d", len(b.PendingLines))
	}

	required, err = ip.Update(b, "|-damage|p2a: Ferrothorn|54/100\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !required {
		t.Fatalf("expected action required on request")
	}
	if len(b.PendingLines) != 0 {
		t.Fatalf("expected buffer drained after process, got %d", len(b.PendingLines))
	}
	opp := b.Opponent.Active()
	if opp.HP != 54 {
		t.Fatalf("expected opponent hp 54, got %d", opp.HP)
	}
	if !b.User.Active().HasMove("Earthquake") {
		t.Fatalf("expected Earthquake recorded as a known move for the user's active Pokemon")
	}
}

func TestSwitchRunsSwitchOutBookkeeping(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()
	b.User.Active().SetBoost(model.StatAtk, 2)

	_, err := ip.Update(b, "|switch|p1a: Rotom-Wash|Rotom-Wash|100/100\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.User.Active().Species != "Rotom-Wash" {
		t.Fatalf("expected Rotom-Wash active, got %s", b.User.Active().Species)
	}
	garchomp := b.User.Team[0]
	if len(garchomp.Boosts) != 0 {
		t.Fatalf("expected boosts cleared on switch-out")
	}
}

func TestFaintSetsHPZero(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	_, err := ip.Update(b, "|faint|p2a: Ferrothorn\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	opp := b.Opponent.Active()
	if !opp.Fainted || opp.HP != 0 {
		t.Fatalf("expected fainted opponent with 0 hp, got fainted=%v hp=%d", opp.Fainted, opp.HP)
	}
}

func TestBoostAndClearAllBoost(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	_, err := ip.Update(b, "|-boost|p1a: Garchomp|atk|2\n|-boost|p1a: Garchomp|spe|1\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	active := b.User.Active()
	if active.Boosts[model.StatAtk] != 2 || active.Boosts[model.StatSpe] != 1 {
		t.Fatalf("unexpected boosts: %+v", active.Boosts)
	}

	_, err = ip.Update(b, "|-clearallboost|\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(active.Boosts) != 0 {
		t.Fatalf("expected all boosts cleared, got %+v", active.Boosts)
	}
}

// TestWeatherStartAndUpkeepExpiry exercises the real protocol shape:
// the server resends "-weather|X|[upkeep]" every turn to reconfirm
// weather still in effect, and a separate bare "|upkeep|" line follows.
// Repeated reconfirmations must count the duration down rather than
// resetting it each time.
func TestWeatherStartAndUpkeepExpiry(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	_, err := ip.Update(b, "|-weather|RainDance\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Weather == nil || b.Weather.Name != "RainDance" || b.Weather.TurnsRemaining != 5 {
		t.Fatalf("expected rain active with 5 turns remaining, got %+v", b.Weather)
	}

	for i := 0; i < 4; i++ {
		if _, err := ip.Update(b, "|-weather|RainDance|[upkeep]\n|upkeep|\n|request|{}"); err != nil {
			t.Fatalf("update: %v", err)
		}
		if b.Weather == nil {
			t.Fatalf("expected rain still active after %d reconfirmations", i+1)
		}
	}
	if b.Weather.TurnsRemaining != 1 {
		t.Fatalf("expected 1 turn remaining after 4 reconfirmations, got %+v", b.Weather)
	}

	// a weather that genuinely ends after its 5th turn is terminated by
	// an explicit "-weather|none" line, never by a 5th reconfirmation.
	if _, err := ip.Update(b, "|-weather|none\n|upkeep|\n|request|{}"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Weather != nil {
		t.Fatalf("expected weather to expire once the server sends none, still have %+v", b.Weather)
	}
}

// TestWeatherSurvivesPastExpectedDurationGrantsExtraTurns covers the
// case where the server never sends "-weather|none" when the tracked
// countdown reaches zero: the real duration was longer than assumed,
// so the countdown gets extended rather than the weather clearing.
func TestWeatherSurvivesPastExpectedDurationGrantsExtraTurns(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	if _, err := ip.Update(b, "|-weather|Sandstorm\n|request|{}"); err != nil {
		t.Fatalf("update: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := ip.Update(b, "|-weather|Sandstorm|[upkeep]\n|upkeep|\n|request|{}"); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if b.Weather == nil || b.Weather.TurnsRemaining != 3 {
		t.Fatalf("expected weather to survive with 3 extra turns granted, got %+v", b.Weather)
	}
}

// TestWeatherRockItemExtendsDuration covers the heatrock/damprock/
// smoothrock/icyrock inference: a setter holding the matching rock
// starts the countdown at 8 instead of 5.
func TestWeatherRockItemExtendsDuration(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()
	b.Opponent.Active().Item = "damprock"

	if _, err := ip.Update(b, "|-weather|RainDance|[of] p2a: Politoed\n|request|{}"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if b.Weather == nil || b.Weather.TurnsRemaining != 8 {
		t.Fatalf("expected damprock to grant 8 turns of rain, got %+v", b.Weather)
	}
}

func TestUnknownTagIsIgnored(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	required, err := ip.Update(b, "|somebrandnewtag|whatever\n|request|{}")
	if err != nil {
		t.Fatalf("expected no error for unknown tag, got %v", err)
	}
	if !required {
		t.Fatalf("expected action required")
	}
}

func TestReplaceRollsBackToSwitchInSnapshot(t *testing.T) {
	ip := New(zap.NewNop(), nil, nil)
	b := newTestBattle()

	zoroark := model.NewPokemon("Zoroark", 100)
	zoroark.Nickname = "p2a: Zoroark"
	idx := b.Opponent.AddToTeam(zoroark)
	b.Opponent.SwitchActiveTo(idx, b.Generation)
	b.Opponent.Active().AtSwitchIn = model.AtSwitchIn{HP: 100, Status: model.StatusNone}
	b.Opponent.Active().HP = 40 // damage applied to the disguise while it lasted

	_, err := ip.Update(b, "|replace|p2a: Zoroark|Zoroark, L78, F|100/100\n|request|{}")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	active := b.Opponent.Active()
	if active.Species != "Zoroark" {
		t.Fatalf("expected true species Zoroark, got %s", active.Species)
	}
	if active.HP != 100 {
		t.Fatalf("expected hp rolled back to switch-in snapshot 100, got %d", active.HP)
	}
}
