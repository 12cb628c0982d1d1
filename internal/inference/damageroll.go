package inference

import (
	"strconv"
	"strings"

	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/model"
)

// unreliableDamageMoves lists moves whose observed damage carries no
// information about the attacker's set (variable power, counter-style,
// or multi-hit-without-a-fixed-roll), excluded from validation
// (spec §4.2.6).
var unreliableDamageMoves = map[string]bool{
	"pursuit": true, "struggle": true, "counter": true, "mirrorcoat": true,
	"metalburst": true, "foulplay": true, "meteorbeam": true, "electroshot": true,
	"ficklebeam": true, "lashout": true, "ragefist": true, "shellsidearm": true,
	"futuresight": true,
}

var nonStandardActors = map[string]bool{
	"Ditto": true, "Shedinja": true, "Terapagos-Terastal": true,
	"Meloetta-Pirouette": true,
}

// filterDamageRolls implements spec §4.2.6: for every damaging move
// this turn, ask the damage-roll service for one set of rolls on the
// live battle state and drop the species' candidates when the observed
// damage is inconsistent with them. The rolls are not recomputed per
// candidate set, so a species' candidates are kept or dropped together. Both
// directions run: "damage_dealt" validates the opponent's offensive
// candidates against damage the bot took, and "damage_received"
// validates the opponent's defensive candidates against damage the
// bot's own move dealt, mirroring
// battle_modifier.py's update_dataset_possibilities being called for
// both directions around every move.
func (e *Engine) filterDamageRolls(b *model.Battle, events []event) error {
	for i, ev := range events {
		if ev.tag != "move" || len(ev.fields) < 2 {
			continue
		}
		tag, _ := sideIdent(ev.fields[0])
		moveName := strings.ToLower(ev.fields[1])
		if unreliableDamageMoves[moveName] {
			continue
		}
		observed, crit, fainted, ok := observedDamage(events, i)
		if !ok {
			continue
		}
		state, err := e.Serializer.Serialize(b)
		if err != nil {
			return err
		}

		switch tag {
		case string(b.Opponent.Tag):
			if err := e.filterDamageDealt(b, state, moveName, observed, crit, fainted); err != nil {
				return err
			}
		case string(b.User.Tag):
			if err := e.filterDamageReceived(b, state, moveName, observed, crit, fainted); err != nil {
				return err
			}
		}
	}
	return nil
}

// filterDamageDealt validates the opponent's offensive candidate sets
// against damage the opponent's move dealt to the bot.
func (e *Engine) filterDamageDealt(b *model.Battle, state, moveName string, observed float64, crit, fainted bool) error {
	attacker := b.Opponent.Active()
	defender := b.User.Active()
	if attacker == nil || defender == nil || nonStandardActors[attacker.Species] {
		return nil
	}
	rolls, err := e.Damage.GetDamageRolls(state, moveName, "", true)
	if err != nil {
		return nil // unable to validate: keep every candidate rather than guess
	}
	return e.filterOneSpecies(attacker.Species, rolls.RollsA[:], observed, crit, fainted)
}

// filterDamageReceived validates the opponent's defensive candidate
// sets against damage the bot's own move dealt to the opponent — the
// vice-versa pass that filterDamageDealt alone never exercised.
func (e *Engine) filterDamageReceived(b *model.Battle, state, moveName string, observed float64, crit, fainted bool) error {
	attacker := b.User.Active()
	defender := b.Opponent.Active()
	if attacker == nil || defender == nil || nonStandardActors[defender.Species] {
		return nil
	}
	rolls, err := e.Damage.GetDamageRolls(state, moveName, "", true)
	if err != nil {
		return nil
	}
	return e.filterOneSpecies(defender.Species, rolls.RollsA[:], observed, crit, fainted)
}

// observedDamage scans forward from a move event for the matching
// -damage line and reports the amount (as a percent of the
// defender's MaxHP, approximated from the reported HP), whether
// it was a critical hit, and whether it fainted the defender.
func observedDamage(events []event, moveIdx int) (amount float64, crit bool, fainted bool, ok bool) {
	for j := moveIdx + 1; j < len(events) && j < moveIdx+4; j++ {
		ev := events[j]
		switch ev.tag {
		case "-crit":
			crit = true
		case "-damage":
			if len(ev.fields) < 2 {
				return 0, false, false, false
			}
			hp := strings.Fields(ev.fields[1])
			if len(hp) == 0 {
				return 0, false, false, false
			}
			if hp[0] == "0" {
				fainted = true
			}
			parts := strings.SplitN(hp[0], "/", 2)
			if len(parts) != 2 {
				return 0, false, false, false
			}
			cur, err1 := strconv.Atoi(parts[0])
			max, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil || max == 0 {
				return 0, false, false, false
			}
			dealt := 100.0 - (100.0 * float64(cur) / float64(max))
			return dealt, crit, fainted, true
		case "move", "switch", "drag":
			return 0, false, false, false
		}
	}
	return 0, false, false, false
}

// filterOneSpecies applies the inconsistency test to the remaining
// candidate sets for species: one pair of bounds, derived from rollSet,
// is compared with observed (expressed as a percent of the target's max
// HP, matching the roll scale the bundled rollout.Engine uses), and
// every candidate is removed when observed falls outside them. The
// bounds do not differ between candidate sets. On a
// critical hit the bound is computed against the crit roll's baseline
// rather than the non-crit max (spec §4.2.6 step 3): this model's
// DamageRolls carries no separate crit-roll array, so the non-crit max
// is scaled by the configured crit multiplier instead.
func (e *Engine) filterOneSpecies(species string, rollSet []uint32, observed float64, crit, fainted bool) error {
	store, guarded := e.storeFor(species)
	if store == nil {
		return nil
	}
	candidates := store.Get(species)
	if len(candidates) == 0 {
		return nil
	}
	maxRoll := maxOf(rollSet)
	if maxRoll == 0 {
		return nil
	}
	bound := float64(maxRoll)
	if crit {
		bound *= e.Cfg.DamageRollCritMultiplier
	}
	lower := bound*e.Cfg.DamageRollLowerMult - e.Cfg.DamageRollSlack
	upper := bound*e.Cfg.DamageRollUpperMult + e.Cfg.DamageRollSlack
	keep := func(_ dataset.CandidateSet) bool {
		if fainted {
			return observed <= upper // truncated damage: only the upper bound is meaningful
		}
		return observed >= lower && observed <= upper
	}
	aborted := store.Filter(species, keep)
	if aborted && guarded {
		e.Log.Debug("damage-roll pass aborted: would empty guarded primary dataset")
	}
	return nil
}

func (e *Engine) storeFor(species string) (*dataset.Store, bool) {
	if e.Datasets == nil {
		return nil, false
	}
	switch p := e.Datasets.Primary.(type) {
	case *dataset.RandomBattleProvider:
		return p.Store(), true
	case *dataset.TeamDatasetProvider:
		return p.Store(), true
	}
	if e.Datasets.Statistics != nil {
		return e.Datasets.Statistics.Store(), false
	}
	return nil, false
}

func maxOf(vals []uint32) uint32 {
	var m uint32
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}
