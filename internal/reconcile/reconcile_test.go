package reconcile

import (
	"testing"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/model"
)

func TestReconcileAppliesConditionAndStats(t *testing.T) {
	b := model.NewBattle("b1", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	raw := `{
		"active": [{"moves": [{"move": "Earthquake", "id": "earthquake", "pp": 10, "maxpp": 16, "disabled": false}]}],
		"side": {
			"name": "me",
			"id": "p1",
			"pokemon": [
				{"ident": "p1: Garchomp", "details": "Garchomp, L100, M", "condition": "240/260", "active": true,
				 "stats": {"atk": 310, "def": 200, "spa": 180, "spd": 210, "spe": 220},
				 "moves": ["earthquake", "stoneedge"], "ability": "roughskin", "item": "choiceband"}
			]
		},
		"rqid": 4,
		"forceSwitch": [false],
		"wait": false
	}`

	r := New(zap.NewNop())
	if err := r.Reconcile(b, raw); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	active := b.User.Active()
	if active == nil {
		t.Fatalf("expected an active pokemon after reconcile")
	}
	if active.Species != "Garchomp" {
		t.Fatalf("expected species Garchomp, got %s", active.Species)
	}
	if active.HP != 240 || active.MaxHP != 260 {
		t.Fatalf("expected hp 240/260, got %d/%d", active.HP, active.MaxHP)
	}
	if active.Ability != "roughskin" {
		t.Fatalf("expected ability roughskin, got %s", active.Ability)
	}
	if active.Item != "choiceband" {
		t.Fatalf("expected item choiceband, got %s", active.Item)
	}
	if m := active.MoveByName("Earthquake"); m == nil || m.PP != 10 || m.MaxPP != 16 {
		t.Fatalf("expected Earthquake pp 10/16, got %+v", m)
	}
	if b.ForceSwitch {
		t.Fatalf("expected force switch false")
	}
}

func TestReconcileSetsForceSwitch(t *testing.T) {
	b := model.NewBattle("b1", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	raw := `{"side": {"pokemon": []}, "forceSwitch": [true]}`

	r := New(zap.NewNop())
	if err := r.Reconcile(b, raw); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !b.ForceSwitch {
		t.Fatalf("expected force switch true")
	}
}

func TestReconcileHandlesFaintedCondition(t *testing.T) {
	b := model.NewBattle("b1", "me", "them", "gen9", "gen9ou", model.BattleTypeStandard)
	p := model.NewPokemon("Garchomp", 260)
	p.Nickname = "p1: Garchomp"
	b.User.AddToTeam(p)
	b.User.SwitchActiveTo(0, b.Generation)

	raw := `{"side": {"pokemon": [{"ident": "p1: Garchomp", "details": "Garchomp, L100, M", "condition": "0 fnt", "active": true}]}}`
	r := New(zap.NewNop())
	if err := r.Reconcile(b, raw); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !p.Fainted || p.HP != 0 {
		t.Fatalf("expected fainted with hp 0, got fainted=%v hp=%d", p.Fainted, p.HP)
	}
}
