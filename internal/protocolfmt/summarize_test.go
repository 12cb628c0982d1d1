package protocolfmt

import (
	"strings"
	"testing"

	"github.com/l1jgo/battlecore/internal/model"
)

func newSummarizeBattle() *model.Battle {
	b := model.NewBattle("battle-9", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	b.Turn = 7

	chomp := model.NewPokemon("Garchomp", 300)
	chomp.HP = 225
	chomp.Types = []string{"ground", "dragon"}
	chomp.Ability = "Rough Skin"
	chomp.Item = "Life Orb"
	chomp.Status = model.StatusParalysis
	chomp.AddMove("Earthquake", 16)
	chomp.SetBoost(model.StatSpe, 1)
	b.User.AddToTeam(chomp)
	b.User.ActiveIndex = 0

	ferro := model.NewPokemon("Ferrothorn", 250)
	b.User.AddToTeam(ferro)

	opp := model.NewPokemon("Landorus-Therian", 297)
	opp.HP = 297
	opp.Types = []string{"ground", "flying"}
	b.Opponent.AddToTeam(opp)
	b.Opponent.ActiveIndex = 0

	b.Weather = &model.Weather{Name: "sand", TurnsRemaining: 3}

	return b
}

func TestSummarizeIncludesTurnBothActivesAndWeather(t *testing.T) {
	b := newSummarizeBattle()
	line := Summarize(b)

	for _, want := range []string{
		"turn 7",
		"Garchomp",
		"75%hp",
		"(par)",
		"[ground/dragon]",
		"ability=Rough Skin",
		"item=Life Orb",
		"spe:+1",
		"Earthquake",
		"Landorus-Therian",
		"sand(3)",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("Summarize() = %q, want it to contain %q", line, want)
		}
	}
}

func TestSummarizeListsAliveReservesOnly(t *testing.T) {
	b := newSummarizeBattle()
	line := Summarize(b)
	if !strings.Contains(line, "Ferrothorn 100%") {
		t.Fatalf("Summarize() = %q, want alive reserve Ferrothorn listed", line)
	}

	b.User.Team[1].HP = 0
	b.User.Team[1].Fainted = true
	line2 := Summarize(b)
	if strings.Contains(line2, "Ferrothorn") {
		t.Fatalf("Summarize() = %q, fainted reserve should not be listed", line2)
	}
}

func TestSummarizeOmitsUnknownOpponentItemAndAbility(t *testing.T) {
	b := newSummarizeBattle()
	line := Summarize(b)
	if strings.Contains(line, "item=unknown") {
		t.Fatalf("Summarize() = %q, unknown opponent item should be omitted", line)
	}
	opponent := line[strings.Index(line, " | opponent: "):]
	if strings.Contains(opponent, "ability=") {
		t.Fatalf("Summarize() = %q, unknown opponent ability should be omitted", line)
	}
}

func TestSummarizeHandlesNoActivePokemon(t *testing.T) {
	b := model.NewBattle("battle-empty", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	line := Summarize(b)
	if !strings.Contains(line, "no active pokemon") {
		t.Fatalf("Summarize() = %q, want a no-active-pokemon marker on both sides", line)
	}
}
