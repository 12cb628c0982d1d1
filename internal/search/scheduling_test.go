package search

import (
	"testing"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/model"
)

func baseConfig() config.SearchConfig {
	return config.SearchConfig{TimeMs: 100, Parallelism: 4, GraceMs: 50, MinSamples: 1}
}

func TestScheduleRandomBattleEarlyGameSamplesMoreAtHalfTime(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9randombattle", model.BattleTypeRandom)
	b.Opponent.AddToTeam(model.NewPokemon("Garchomp", 361))
	b.Opponent.ActiveIndex = 0

	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4 * 4, TimePerSampleMs: 50}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}

func TestScheduleRandomBattleUnderTimePressureHalvesMultiplier(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9randombattle", model.BattleTypeRandom)
	b.Opponent.AddToTeam(model.NewPokemon("Garchomp", 361))
	b.Opponent.ActiveIndex = 0
	b.TimeRemainingSeconds = 30

	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4 * 2, TimePerSampleMs: 50}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}

func TestScheduleRandomBattleMidGameUsesFullTimePerSample(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9randombattle", model.BattleTypeRandom)
	chomp := model.NewPokemon("Garchomp", 361)
	chomp.AddMove("Earthquake", 16)
	b.Opponent.AddToTeam(chomp)
	b.Opponent.ActiveIndex = 0

	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4 * 2, TimePerSampleMs: 100}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}

func TestScheduleBlitzFormatIgnoresMultipliers(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9randombattleblitz", model.BattleTypeRandom)
	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4, TimePerSampleMs: 100}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}

func TestScheduleStandardBattleTeamPreviewSamplesMore(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	b.TeamPreview = true
	b.Opponent.AddToTeam(model.NewPokemon("Garchomp", 361))
	b.Opponent.ActiveIndex = 0

	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4 * 2, TimePerSampleMs: 100}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}

func TestScheduleStandardBattleLateGameUsesBaseParallelism(t *testing.T) {
	b := model.NewBattle("t", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	chomp := model.NewPokemon("Garchomp", 361)
	chomp.AddMove("Earthquake", 16)
	chomp.AddMove("Dragon Claw", 24)
	chomp.AddMove("Swords Dance", 32)
	b.Opponent.AddToTeam(chomp)
	b.Opponent.ActiveIndex = 0

	got := Schedule(b, baseConfig())
	want := ScheduleParams{NumSamples: 4, TimePerSampleMs: 100}
	if got != want {
		t.Fatalf("Schedule = %+v, want %+v", got, want)
	}
}
