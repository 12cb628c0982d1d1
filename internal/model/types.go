// Package model implements the entity model of spec §3: Move,
// Pokemon, Side, and Battle, with the invariants of spec §3.2 enforced
// by construction where practical and documented where they are the
// caller's responsibility (interpreter handlers, §4.1).
package model

// Stat identifies one of the six core stats plus the two battle-only
// accuracy/evasion boost tracks.
type Stat int

const (
	StatHP Stat = iota
	StatAtk
	StatDef
	StatSpA
	StatSpD
	StatSpe
	StatAccuracy
	StatEvasion
)

// Status is a major status condition. Zero value is "no status".
type Status int

const (
	StatusNone Status = iota
	StatusBurn
	StatusFreeze
	StatusParalysis
	StatusPoison
	StatusBadlyPoisoned
	StatusSleep
)

// String renders a Stat as its conventional lowercase abbreviation.
func (s Stat) String() string {
	switch s {
	case StatHP:
		return "hp"
	case StatAtk:
		return "atk"
	case StatDef:
		return "def"
	case StatSpA:
		return "spa"
	case StatSpD:
		return "spd"
	case StatSpe:
		return "spe"
	case StatAccuracy:
		return "accuracy"
	case StatEvasion:
		return "evasion"
	default:
		return "unknown"
	}
}

// String renders a Status as its conventional three-letter tag, the
// same vocabulary the request-snapshot condition string uses.
func (s Status) String() string {
	switch s {
	case StatusBurn:
		return "brn"
	case StatusFreeze:
		return "frz"
	case StatusParalysis:
		return "par"
	case StatusPoison:
		return "psn"
	case StatusBadlyPoisoned:
		return "tox"
	case StatusSleep:
		return "slp"
	default:
		return ""
	}
}

// ItemUnknown is the sentinel meaning "not yet inferred" for an
// opponent Pokemon's item (spec §3.2 invariant 4).
const ItemUnknown = "unknown"

// BattleType discriminates the three team-generation regimes (GLOSSARY).
type BattleType int

const (
	BattleTypeRandom BattleType = iota
	BattleTypeBattleFactory
	BattleTypeStandard
)

// SideTag is the protocol identifier for a side ("p1"/"p2").
type SideTag string

const (
	SideP1 SideTag = "p1"
	SideP2 SideTag = "p2"
)

// HiddenPowerTypes enumerates the 16 possible Hidden Power types.
var HiddenPowerTypes = []string{
	"fighting", "flying", "poison", "ground", "rock", "bug", "ghost",
	"steel", "fire", "water", "grass", "electric", "psychic", "ice",
	"dragon", "dark",
}

// clampBoost clamps a boost stage to the legal [-6, 6] range (spec §3.2 invariant 5).
func clampBoost(v int) int {
	if v > 6 {
		return 6
	}
	if v < -6 {
		return -6
	}
	return v
}
