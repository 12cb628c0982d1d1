package model

import (
	"reflect"
	"sort"
	"testing"
)

func newLegalActionsBattle() *Battle {
	b := NewBattle("t1", "me", "them", "gen9", "gen9ou", BattleTypeStandard)
	chomp := NewPokemon("Garchomp", 361)
	chomp.AddMove("Earthquake", 16)
	chomp.AddMove("Dragon Claw", 24)
	b.User.AddToTeam(chomp)
	b.User.ActiveIndex = 0

	reserve := NewPokemon("Ferrothorn", 250)
	b.User.AddToTeam(reserve)
	return b
}

func sorted(xs []string) []string {
	out := append([]string(nil), xs...)
	sort.Strings(out)
	return out
}

func TestLegalActionsListsUsableMovesAndSwitches(t *testing.T) {
	b := newLegalActionsBattle()

	got := sorted(b.LegalActions(b.User))
	want := sorted([]string{"Earthquake", "Dragon Claw", "switch Ferrothorn"})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions = %v, want %v", got, want)
	}
}

func TestLegalActionsExcludesDisabledAndExhaustedMoves(t *testing.T) {
	b := newLegalActionsBattle()
	b.User.Active().Moves[0].Disabled = true
	b.User.Active().Moves[1].PP = 0

	got := sorted(b.LegalActions(b.User))
	want := []string{"switch Ferrothorn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions = %v, want %v", got, want)
	}
}

func TestLegalActionsForceSwitchOffersOnlySwitches(t *testing.T) {
	b := newLegalActionsBattle()
	b.ForceSwitch = true

	got := sorted(b.LegalActions(b.User))
	want := []string{"switch Ferrothorn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions = %v, want %v", got, want)
	}
}

func TestLegalActionsTrappedBlocksSwitchesEvenOnForceSwitch(t *testing.T) {
	b := newLegalActionsBattle()
	b.ForceSwitch = true
	b.User.Trapped = true

	got := b.LegalActions(b.User)
	want := []string{DoNothingAction}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions = %v, want %v (nothing selectable)", got, want)
	}
}

func TestLegalActionsFallsBackToDoNothing(t *testing.T) {
	b := NewBattle("t2", "me", "them", "gen9", "gen9ou", BattleTypeStandard)
	fainted := NewPokemon("Garchomp", 361)
	fainted.HP = 0
	fainted.Fainted = true
	b.User.AddToTeam(fainted)
	b.User.ActiveIndex = 0

	got := b.LegalActions(b.User)
	want := []string{DoNothingAction}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("LegalActions = %v, want %v", got, want)
	}
}
