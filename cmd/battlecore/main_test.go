package main

import (
	"strings"
	"testing"

	"github.com/l1jgo/battlecore/internal/model"
)

func validArgs() []string {
	return []string{
		"--websocket-uri", "wss://sim3.psim.us/showdown/websocket",
		"--ps-username", "bot",
		"--bot-mode", "challenge_user",
		"--pokemon-format", "gen9randombattle",
	}
}

func TestParseFlagsRequiresTheCoreFour(t *testing.T) {
	cases := []struct {
		name string
		drop string
	}{
		{"websocket uri", "--websocket-uri"},
		{"username", "--ps-username"},
		{"bot mode", "--bot-mode"},
		{"pokemon format", "--pokemon-format"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			args := validArgs()
			out := args[:0]
			for i := 0; i < len(args); i += 2 {
				if args[i] == c.drop {
					continue
				}
				out = append(out, args[i], args[i+1])
			}
			if _, err := parseFlags(out); err == nil {
				t.Fatalf("expected an error with %s missing", c.drop)
			}
		})
	}
}

func TestParseFlagsRejectsUnknownBotMode(t *testing.T) {
	args := append(validArgs(), "--bot-mode", "sleepwalk")
	if _, err := parseFlags(args); err == nil {
		t.Fatalf("expected an error for an unrecognized --bot-mode")
	}
}

func TestParseFlagsRejectsUnknownSaveReplay(t *testing.T) {
	args := append(validArgs(), "--save-replay", "sometimes")
	if _, err := parseFlags(args); err == nil {
		t.Fatalf("expected an error for an unrecognized --save-replay")
	}
}

func TestParseFlagsDefaultsStatsFormatToPokemonFormat(t *testing.T) {
	f, err := parseFlags(validArgs())
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if f.smogonStatsFormat != "gen9randombattle" {
		t.Fatalf("smogonStatsFormat = %q, want it to default to --pokemon-format", f.smogonStatsFormat)
	}
}

func TestParseFlagsKeepsExplicitStatsFormat(t *testing.T) {
	args := append(validArgs(), "--smogon-stats-format", "gen9ou")
	f, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags returned error: %v", err)
	}
	if f.smogonStatsFormat != "gen9ou" {
		t.Fatalf("smogonStatsFormat = %q, want the explicit value preserved", f.smogonStatsFormat)
	}
}

func TestBattleTypeForFormat(t *testing.T) {
	cases := map[string]model.BattleType{
		"gen9randombattle":      model.BattleTypeRandom,
		"gen9battlefactory":     model.BattleTypeBattleFactory,
		"gen9ou":                model.BattleTypeStandard,
		"gen9ubersbattlefactory": model.BattleTypeBattleFactory,
	}
	for format, want := range cases {
		if got := battleTypeForFormat(format); got != want {
			t.Fatalf("battleTypeForFormat(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestDemoBattleIsUsable(t *testing.T) {
	b := demoBattle("gen9randombattle", model.BattleTypeRandom)
	if b.User.Active() == nil || b.User.Active().Species != "Garchomp" {
		t.Fatalf("demoBattle did not set up an active user Pokemon as expected")
	}
	if b.Opponent.Active() == nil {
		t.Fatalf("demoBattle did not set up an active opponent Pokemon")
	}
	if !strings.Contains(b.Tag, "demo-battle") {
		t.Fatalf("demoBattle tag = %q, want it to look like a demo battle", b.Tag)
	}
}
