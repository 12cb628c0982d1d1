// Package reconcile implements the request-snapshot reconciler of
// spec §4.4: the single writer for the bot-side Pokemon's exact field
// values (HP, PP, stats, ability, item, tera-type), driven by the
// periodic authoritative "request" JSON document, grounded on
// _examples/original_source/fp/battle_modifier.py's request-handling
// path and showdown/engine/objects.py's State/Side shape.
package reconcile

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/battlecore/internal/model"
)

// Request is the subset of the server's "request" JSON document this
// module reads (spec §6.1 "request tag's second field").
type Request struct {
	Active      []requestActive `json:"active"`
	Side        requestSide     `json:"side"`
	RQID        int             `json:"rqid"`
	ForceSwitch []bool          `json:"forceSwitch"`
	Wait        bool            `json:"wait"`
	TeamPreview bool            `json:"teamPreview"`
}

type requestActive struct {
	Moves []requestMove `json:"moves"`
}

type requestMove struct {
	Move     string `json:"move"`
	ID       string `json:"id"`
	PP       int    `json:"pp"`
	MaxPP    int    `json:"maxpp"`
	Disabled bool   `json:"disabled"`
}

type requestSide struct {
	Name    string          `json:"name"`
	ID      string          `json:"id"`
	Pokemon []requestPokemon `json:"pokemon"`
}

type requestPokemon struct {
	Ident         string            `json:"ident"`
	Details       string            `json:"details"`
	Condition     string            `json:"condition"`
	Active        bool              `json:"active"`
	Stats         map[string]int    `json:"stats"`
	Moves         []string          `json:"moves"`
	BaseAbility   string            `json:"baseAbility"`
	Ability       string            `json:"ability"`
	Item          string            `json:"item"`
	TeraType      string            `json:"teraType"`
	Terastallized string            `json:"terastallized"`
}

// Reconciler is the single writer for the bot's own side's concrete
// values, constructed once per battle (spec §5 "the battle is not
// shared across tasks").
type Reconciler struct {
	log *zap.Logger
}

// New constructs a Reconciler.
func New(log *zap.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Reconcile parses raw (the "request" tag's JSON payload) and applies
// it to battle.User, setting ForceSwitch/Wait as a side effect
// (spec §4.4).
func (r *Reconciler) Reconcile(battle *model.Battle, raw string) error {
	if raw == "" {
		return nil
	}
	var req Request
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return fmt.Errorf("parse request payload: %w", err)
	}

	battle.Wait = req.Wait
	battle.ForceSwitch = anyTrue(req.ForceSwitch)
	battle.TeamPreview = req.TeamPreview
	battle.RQID = req.RQID
	if battle.ForceSwitch {
		r.log.Debug("request requires a forced switch", zap.Int("rqid", req.RQID))
	}

	for _, rp := range req.Side.Pokemon {
		applyRequestPokemon(battle.User, rp)
	}
	if len(req.Active) > 0 {
		applyActiveMoves(battle.User.Active(), req.Active[0].Moves)
	}
	return nil
}

func anyTrue(vals []bool) bool {
	for _, v := range vals {
		if v {
			return true
		}
	}
	return false
}

// applyRequestPokemon reconciles one team-member entry, creating the
// Pokemon if this is the first time the reconciler has seen it
// (first request of the battle, or a newly-revealed teammate after
// an earlier forme change).
func applyRequestPokemon(side *model.Side, rp requestPokemon) {
	species := parseSpeciesFromDetails(rp.Details)
	idx := findByIdent(side, rp.Ident, species)
	var p *model.Pokemon
	if idx < 0 {
		p = model.NewPokemon(species, 1)
		p.Nickname = rp.Ident
		idx = side.AddToTeam(p)
	} else {
		p = side.Team[idx]
	}

	p.Species = species
	applyRequestCondition(p, rp.Condition)
	if len(rp.Stats) > 0 {
		p.Computed = model.StatBlock{
			HP:  p.MaxHP,
			Atk: rp.Stats["atk"],
			Def: rp.Stats["def"],
			SpA: rp.Stats["spa"],
			SpD: rp.Stats["spd"],
			Spe: rp.Stats["spe"],
		}
	}
	for _, name := range rp.Moves {
		if !p.HasMove(name) {
			p.AddMove(name, 0)
		}
	}
	if rp.Ability != "" {
		p.Ability = rp.Ability
	}
	if rp.BaseAbility != "" && p.OriginalAbility == "" {
		p.OriginalAbility = rp.BaseAbility
	}
	if rp.Item != "" {
		p.SetItem(rp.Item, false)
	}
	if rp.TeraType != "" {
		p.TeraType = rp.TeraType
	}
	p.Terastallized = rp.Terastallized != ""

	if rp.Active && side.ActiveIndex != idx {
		side.ActiveIndex = idx
	}
}

func findByIdent(side *model.Side, ident, species string) int {
	for i, p := range side.Team {
		if p.Nickname == ident {
			return i
		}
	}
	return side.FindBySpecies(species)
}

func parseSpeciesFromDetails(details string) string {
	for i, c := range details {
		if c == ',' {
			return details[:i]
		}
	}
	return details
}

// applyRequestCondition sets exact HP/status/MaxHP from the
// authoritative "123/260" or "123/260 brn" string, the one place
// MaxHP for the bot's own side is learned exactly (spec §3.2
// invariant 3 is about opponents; the bot's own side is never
// percent-scaled since the reconciler always has the real numbers).
func applyRequestCondition(p *model.Pokemon, condition string) {
	if condition == "0 fnt" || condition == "0" {
		p.HP = 0
		p.MaxHP = max(p.MaxHP, 1)
		p.Fainted = true
		return
	}
	var cur, maxHP int
	var status string
	n, _ := fmt.Sscanf(condition, "%d/%d %s", &cur, &maxHP, &status)
	if n < 2 {
		n, _ = fmt.Sscanf(condition, "%d/%d", &cur, &maxHP)
		if n < 2 {
			return
		}
	}
	p.HP = cur
	p.MaxHP = maxHP
	p.Fainted = cur <= 0
	if status != "" {
		p.Status = parseStatusTag(status)
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func parseStatusTag(s string) model.Status {
	switch s {
	case "brn":
		return model.StatusBurn
	case "frz":
		return model.StatusFreeze
	case "par":
		return model.StatusParalysis
	case "psn":
		return model.StatusPoison
	case "tox":
		return model.StatusBadlyPoisoned
	case "slp":
		return model.StatusSleep
	default:
		return model.StatusNone
	}
}

// applyActiveMoves reconciles the bot's own move PP/disabled flags
// from the "active" block, the only fully-authoritative source of
// the bot's own PP (spec §4.4).
func applyActiveMoves(active *model.Pokemon, moves []requestMove) {
	if active == nil {
		return
	}
	for _, rm := range moves {
		if !active.HasMove(rm.Move) {
			active.AddMove(rm.Move, rm.MaxPP)
		}
		m := active.MoveByName(rm.Move)
		if m == nil {
			continue
		}
		m.PP = rm.PP
		m.MaxPP = rm.MaxPP
		m.Disabled = rm.Disabled
	}
}
