package model

// StatBlock is a 6-tuple of HP/Atk/Def/SpA/SpD/Spe values, used for
// base stats, EVs, IVs, and computed stats alike (spec §3.1).
type StatBlock struct {
	HP, Atk, Def, SpA, SpD, Spe int
}

// SpeedRange is the inferred [min, max] interval of physically
// possible base speeds for an opponent Pokemon (spec §3.2 invariant 7,
// GLOSSARY "Speed range"). Pre-item, pre-ability.
type SpeedRange struct {
	Min, Max int
}

// Volatile is a battlefield-only effect that clears on switch-out,
// some of which carry a duration counter (encore, taunt, slow-start,
// yawn, locked-move; spec §4.1 "Volatile statuses with duration").
type Volatile struct {
	Name     string
	Duration int // 0 when the volatile has no countdown
}

// AtSwitchIn snapshots HP/status at the moment a Pokemon became
// active, used to roll back a Zoroark disguise (spec §4.2.5).
type AtSwitchIn struct {
	HP     int
	Status Status
}

// Pokemon is one team member, bot-owned or opponent-owned (spec §3.1).
type Pokemon struct {
	Species  string
	Nickname string
	Level    int

	HP    int
	MaxHP int

	Base    StatBlock
	Computed StatBlock
	EVs     StatBlock
	IVs     StatBlock
	Nature  string

	Ability         string // "" = unset
	OriginalAbility string

	Item        string // model.ItemUnknown sentinel for opponents pre-inference
	ItemInferred bool
	RemovedItem string

	Status     Status
	RestTurns  int // generation-5 sleep rule countdown
	SleepTurns int // natural-sleep counter

	// Gen3ConsecutiveSleepTalks counts Sleep Talk uses since this
	// Pokemon fell asleep, consumed by generation-3's switch-out rest-
	// turn adjustment (spec §4.1 switch/drag handler).
	Gen3ConsecutiveSleepTalks int

	Types      []string // ordered pair-or-singleton
	OriginalTypes []string // snapshot before a "-start|typechange" override, for switch-out revert
	TeraType   string
	Terastallized bool

	// PreTransformComputed/PreTransformTypes snapshot this Pokemon's own
	// stats/types the moment -transform copies a target's onto it, so
	// switch-out can undo the copy (spec §4.1 switch/drag handler). Nil
	// PreTransformTypes means this Pokemon is not currently transformed.
	PreTransformComputed StatBlock
	PreTransformTypes    []string

	Boosts map[Stat]int

	Moves []Move

	Volatiles map[string]*Volatile

	ImpossibleItems    map[string]bool
	ImpossibleAbilities map[string]bool

	HiddenPowerPossibilities map[string]bool // subset of HiddenPowerTypes

	CanHaveChoiceItem bool
	CanMega           bool
	CanUltraBurst     bool
	CanDynamax        bool
	CanTerastallize   bool
	IsMega            bool
	Fainted           bool
	KnockedOff        bool

	// Zoroark disguise bookkeeping (spec §4.2.5).
	DisguisedAs           string // non-empty while this Pokemon (a Zoroark) wears a disguise
	MovesUsedSinceSwitchIn map[string]bool
	AtSwitchIn            AtSwitchIn

	SpeedRange SpeedRange
}

// NewPokemon constructs a Pokemon with all set/map fields initialized,
// so callers never need a nil check before a first write (spec §3.2
// invariants 8/9 require the sets to exist from creation).
func NewPokemon(species string, maxHP int) *Pokemon {
	p := &Pokemon{
		Species:                species,
		HP:                     maxHP,
		MaxHP:                  maxHP,
		Boosts:                 make(map[Stat]int, 8),
		Volatiles:              make(map[string]*Volatile),
		ImpossibleItems:        make(map[string]bool),
		ImpossibleAbilities:    make(map[string]bool),
		HiddenPowerPossibilities: allHiddenPowerTypes(),
		Item:                   ItemUnknown,
		CanHaveChoiceItem:      true,
		MovesUsedSinceSwitchIn: make(map[string]bool),
		SpeedRange:             SpeedRange{Min: 0, Max: 1 << 30},
	}
	return p
}

func allHiddenPowerTypes() map[string]bool {
	m := make(map[string]bool, len(HiddenPowerTypes))
	for _, t := range HiddenPowerTypes {
		m[t] = true
	}
	return m
}

// SetBoost clamps and sets a single stat's boost stage (spec §3.2 invariant 5).
func (p *Pokemon) SetBoost(stat Stat, value int) {
	p.Boosts[stat] = clampBoost(value)
}

// AddBoost adds delta to a stat's boost stage, clamped to [-6, 6].
func (p *Pokemon) AddBoost(stat Stat, delta int) {
	p.SetBoost(stat, p.Boosts[stat]+delta)
}

// ClearBoosts resets every boost to zero (switch-out, -clearallboost).
func (p *Pokemon) ClearBoosts() {
	for k := range p.Boosts {
		delete(p.Boosts, k)
	}
}

// ClearNegativeBoosts removes only boosts below zero (-clearnegativeboost).
func (p *Pokemon) ClearNegativeBoosts() {
	for k, v := range p.Boosts {
		if v < 0 {
			delete(p.Boosts, k)
		}
	}
}

// SetItem records a concrete item observation. Once set to a concrete
// value it must never silently revert to ItemUnknown (spec §3.2
// invariant 4) except via the explicit Zoroark rollback path, which
// calls ResetItemToUnknown directly instead of this method.
func (p *Pokemon) SetItem(item string, inferred bool) {
	p.Item = item
	p.ItemInferred = inferred
	delete(p.ImpossibleItems, item)
}

// ResetItemToUnknown is the one sanctioned way to revert Item to the
// unknown sentinel (choice-lock disproof, Zoroark disguise rollback).
func (p *Pokemon) ResetItemToUnknown() {
	p.Item = ItemUnknown
	p.ItemInferred = false
}

// MarkItemImpossible adds to the monotone-growing impossible-items set
// (spec §3.2 invariant 9), refusing to add the current concrete item.
func (p *Pokemon) MarkItemImpossible(item string) {
	if p.Item == item && p.Item != ItemUnknown {
		return
	}
	p.ImpossibleItems[item] = true
}

// MarkAbilityImpossible adds to the monotone-growing impossible-abilities set.
func (p *Pokemon) MarkAbilityImpossible(ability string) {
	if p.Ability == ability && p.Ability != "" {
		return
	}
	p.ImpossibleAbilities[ability] = true
}

// NarrowHiddenPower intersects the current possibility set with keep,
// enforcing the monotone-shrinking invariant (spec §3.2 invariant 8).
func (p *Pokemon) NarrowHiddenPower(keep map[string]bool) {
	for t := range p.HiddenPowerPossibilities {
		if !keep[t] {
			delete(p.HiddenPowerPossibilities, t)
		}
	}
}

// NarrowSpeedRange intersects the current speed range with [min, max].
func (p *Pokemon) NarrowSpeedRange(min, max int) {
	if min > p.SpeedRange.Min {
		p.SpeedRange.Min = min
	}
	if max < p.SpeedRange.Max {
		p.SpeedRange.Max = max
	}
}

// SetVolatile installs or refreshes a volatile status with a duration.
func (p *Pokemon) SetVolatile(name string, duration int) {
	p.Volatiles[name] = &Volatile{Name: name, Duration: duration}
}

// HasVolatile reports whether a volatile is currently active.
func (p *Pokemon) HasVolatile(name string) bool {
	_, ok := p.Volatiles[name]
	return ok
}

// RemoveVolatile clears a volatile status, if present.
func (p *Pokemon) RemoveVolatile(name string) {
	delete(p.Volatiles, name)
}

// ClearVolatiles removes every volatile status (switch-out).
func (p *Pokemon) ClearVolatiles() {
	for k := range p.Volatiles {
		delete(p.Volatiles, k)
	}
}

// ApplyDamage reduces HP by amount, clamping to zero and setting
// Fainted per spec §3.2 invariant 2 ("fainted iff hp == 0").
func (p *Pokemon) ApplyDamage(amount int) {
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		p.Fainted = true
	}
}

// ApplyHeal increases HP by amount, clamping to MaxHP, and clears
// Fainted if HP becomes positive again (e.g. Revival Blessing).
func (p *Pokemon) ApplyHeal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP > 0 {
		p.Fainted = false
	}
}

// SetHPPercent sets HP as a percentage of MaxHP, used for opponent
// Pokemon whose MaxHP is normalized to 100 until a concrete value is
// revealed (spec §3.2 invariant 3).
func (p *Pokemon) SetHPPercent(percent float64) {
	p.HP = int(float64(p.MaxHP) * percent / 100.0)
	if p.HP <= 0 {
		p.HP = 0
		p.Fainted = true
	}
}

// HPPercent returns HP as a percentage of MaxHP.
func (p *Pokemon) HPPercent() float64 {
	if p.MaxHP == 0 {
		return 0
	}
	return float64(p.HP) / float64(p.MaxHP) * 100.0
}

// ResetSwitchOutState runs every bookkeeping step a switch-out must
// perform on the outgoing Pokemon before the replacement becomes
// active (spec §4.1 switch/drag handler), grounded on
// battle_modifier.py's switch_or_drag: undoing a type-change (unless
// Terastallized), undoing -transform, reverting an ability override,
// the generation-5/-3 sleep-rule adjustments, a Regenerator heal, the
// Cramorant Gulping/Gorging morph reset, and the common boost/volatile/
// moves-used clearing.
func (p *Pokemon) ResetSwitchOutState(generation string) {
	if !p.Terastallized && p.OriginalTypes != nil {
		p.Types = p.OriginalTypes
		p.OriginalTypes = nil
	}
	if p.PreTransformTypes != nil {
		p.Computed = p.PreTransformComputed
		p.Types = p.PreTransformTypes
		p.PreTransformTypes = nil
		p.Ability = p.OriginalAbility
		p.OriginalAbility = ""
		p.Moves = nil
	}
	if p.OriginalAbility != "" && p.Ability != p.OriginalAbility {
		p.Ability = p.OriginalAbility
		p.OriginalAbility = ""
	}

	if generation == "gen5" && p.Status == StatusSleep {
		if p.RestTurns != 0 {
			p.RestTurns = 3
		} else {
			p.SleepTurns = 0
		}
	}
	if generation == "gen3" && p.Status == StatusSleep {
		if p.RestTurns != 0 {
			p.RestTurns += p.Gen3ConsecutiveSleepTalks
		} else if p.SleepTurns != 0 {
			p.SleepTurns -= p.Gen3ConsecutiveSleepTalks
		}
	}
	p.Gen3ConsecutiveSleepTalks = 0

	p.ClearBoosts()
	p.ClearVolatiles()
	for k := range p.MovesUsedSinceSwitchIn {
		delete(p.MovesUsedSinceSwitchIn, k)
	}

	if p.HP > 0 && !p.Fainted && p.Ability == "regenerator" {
		p.ApplyHeal(p.MaxHP / 3)
	}

	if p.Species == "Cramorant-Gulping" || p.Species == "Cramorant-Gorging" {
		p.Species = "Cramorant"
	}
}

// RecordSwitchIn snapshots HP/status for later Zoroark-rollback use
// and clears the moves-used-since-switch-in set for the new occupant.
func (p *Pokemon) RecordSwitchIn() {
	p.AtSwitchIn = AtSwitchIn{HP: p.HP, Status: p.Status}
	for k := range p.MovesUsedSinceSwitchIn {
		delete(p.MovesUsedSinceSwitchIn, k)
	}
}

// KnownMoveNames returns the identifiers of every move this Pokemon
// has revealed (or was given via request snapshot/team preview).
func (p *Pokemon) KnownMoveNames() []string {
	names := make([]string, len(p.Moves))
	for i, m := range p.Moves {
		names[i] = m.Name
	}
	return names
}

// HasMove reports whether name is among the known moves.
func (p *Pokemon) HasMove(name string) bool {
	for _, m := range p.Moves {
		if m.Name == name {
			return true
		}
	}
	return false
}

// AddMove appends a newly-observed move, up to the 4-slot limit.
func (p *Pokemon) AddMove(name string, maxPP int) {
	if p.HasMove(name) || len(p.Moves) >= 4 {
		return
	}
	p.Moves = append(p.Moves, Move{Name: name, PP: maxPP, MaxPP: maxPP})
}

// MoveByName returns a pointer to the named move slot, or nil.
func (p *Pokemon) MoveByName(name string) *Move {
	for i := range p.Moves {
		if p.Moves[i].Name == name {
			return &p.Moves[i]
		}
	}
	return nil
}
