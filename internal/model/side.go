package model

// SideCondition names the countdown-bearing field conditions tracked
// per side (spec §3.1, default durations in §4.1).
type SideCondition string

const (
	CondReflect     SideCondition = "reflect"
	CondLightScreen SideCondition = "lightscreen"
	CondAuroraVeil  SideCondition = "auroraveil"
	CondSafeguard   SideCondition = "safeguard"
	CondMist        SideCondition = "mist"
	CondTailwind    SideCondition = "tailwind"
)

// DefaultSideConditionDuration is the default countdown length, in
// turns, for each duration-bearing side condition (spec §4.1).
var DefaultSideConditionDuration = map[SideCondition]int{
	CondReflect:     5,
	CondLightScreen: 5,
	CondAuroraVeil:  5,
	CondSafeguard:   5,
	CondMist:        5,
	CondTailwind:    4,
}

// LastUsedMove records what a side's active Pokemon did most recently,
// used by choice-lock detection and speed-range inference.
type LastUsedMove struct {
	PokemonName string
	MoveName    string
	Turn        int
}

// Wish tracks a pending Wish heal.
type Wish struct {
	TurnsRemaining int
	Amount         int
}

// FutureSight tracks a pending Future Sight / Doom Desire hit.
type FutureSight struct {
	TurnsRemaining int
	SourceName     string
}

// Side is one player's half of the battle (spec §3.1 "Side / Battler").
type Side struct {
	AccountName string
	Tag         SideTag

	Team        []*Pokemon
	ActiveIndex int // -1 when no Pokemon is active (spec §3.2 invariant 1)

	StealthRock  bool
	Spikes       int // 0..3
	ToxicSpikes  int // 0..2
	StickyWeb    bool
	Conditions   map[SideCondition]int // turns remaining
	HealingWish  bool
	ProtectCount int
	ToxicCount   int

	LastUsedMove LastUsedMove

	BatonPassing bool
	ShedTailing  bool

	Wish        Wish
	FutureSight FutureSight

	Trapped bool
}

// NewSide constructs an empty Side for the given account/tag.
func NewSide(account string, tag SideTag) *Side {
	return &Side{
		AccountName: account,
		Tag:         tag,
		ActiveIndex: -1,
		Conditions:  make(map[SideCondition]int),
	}
}

// Active returns the currently active Pokemon, or nil between a faint
// and its replacement switch (spec §3.2 invariant 1).
func (s *Side) Active() *Pokemon {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Team) {
		return nil
	}
	return s.Team[s.ActiveIndex]
}

// Reserve returns every team member other than the active one (spec
// §3.2 invariant 6: the reserve never contains the active Pokemon).
func (s *Side) Reserve() []*Pokemon {
	out := make([]*Pokemon, 0, len(s.Team))
	for i, p := range s.Team {
		if i != s.ActiveIndex {
			out = append(out, p)
		}
	}
	return out
}

// FindBySpecies returns the team index of a Pokemon by species name,
// or -1 if not present. Used by switch/drag resolution (spec §4.1).
func (s *Side) FindBySpecies(species string) int {
	for i, p := range s.Team {
		if p.Species == species {
			return i
		}
	}
	return -1
}

// AddToTeam appends a newly-revealed Pokemon and returns its index.
func (s *Side) AddToTeam(p *Pokemon) int {
	s.Team = append(s.Team, p)
	return len(s.Team) - 1
}

// SwitchActiveTo makes the team member at idx the active one, running
// switch-out bookkeeping on the previous active member first (spec
// §4.1 switch/drag handler). generation selects the gen3/gen5
// sleep-rule variant ResetSwitchOutState applies. It does not itself
// apply Baton Pass/Shed Tail carry-over, and the returned
// previously-active Pokemon has already had its boosts and volatiles
// cleared, so callers copy whatever they carry over before calling it.
func (s *Side) SwitchActiveTo(idx int, generation string) (previouslyActive *Pokemon) {
	previouslyActive = s.Active()
	if previouslyActive != nil {
		previouslyActive.ResetSwitchOutState(generation)
		s.ToxicCount = 0
	}
	s.ActiveIndex = idx
	next := s.Active()
	if next != nil {
		next.RecordSwitchIn()
	}
	s.Trapped = false
	return previouslyActive
}

// AliveReserve returns reserve members with HP > 0 — the legal switch
// targets once a forced switch is pending.
func (s *Side) AliveReserve() []*Pokemon {
	var out []*Pokemon
	for _, p := range s.Reserve() {
		if !p.Fainted && p.HP > 0 {
			out = append(out, p)
		}
	}
	return out
}
