// Package rollout narrows spec §6 "external collaborators" to the Go
// interfaces this module actually calls: the MCTS rollout engine, the
// damage calculator, and the type chart (spec §1 lists all three as
// out of scope, owned by other libraries). Production wiring supplies
// a real implementation; tests and the demo CLI use the Fake* types
// below.
package rollout

import (
	"sync"

	"github.com/l1jgo/battlecore/internal/model"
)

// Result is the MCTS engine's response for one sample (spec §6.4).
type Result struct {
	TotalVisits uint64
	SideOne     []ActionVisit
}

// ActionVisit is one top-level action's visit/score tally.
type ActionVisit struct {
	MoveChoice string
	Visits     uint64
	TotalScore float64
}

// DamageRolls is the sixteen possible damage rolls the damage
// calculator returns for each direction (spec §6.4).
type DamageRolls struct {
	RollsA [16]uint32
	RollsB [16]uint32
}

// Engine is the external rollout library's two entry points (spec §6.4).
type Engine interface {
	// MonteCarloTreeSearch runs one rollout to durationMs on a
	// canonical serialization of state.
	MonteCarloTreeSearch(state string, durationMs int) (Result, error)
	// GetDamageRolls asks for (min,max) rolls of moveA/moveB between
	// the two actors, sideAFirst indicating turn order.
	GetDamageRolls(state, moveA, moveB string, sideAFirst bool) (DamageRolls, error)
}

// Serializer turns a live Battle into the canonical, stable state
// string the rollout library expects (spec §6.4 "state string").
// Severing this reference is what makes sampled battles safe to hand
// to worker processes (spec §9 "Deep-copy for search sampling").
type Serializer interface {
	Serialize(b *model.Battle) (string, error)
}

// TypeChart is the external type-effectiveness table (spec §1 "Static
// game data ... type chart ... loaded once as read-only tables").
// The inference engine's Hidden Power resolution (spec §4.2.4) depends
// on this narrow interface rather than owning type data itself.
type TypeChart interface {
	// Multiplier returns the combined effectiveness of attackType
	// against every element of defendTypes.
	Multiplier(attackType string, defendTypes []string) float64
}

// FakeEngine is a test double for Engine: MCTS results and damage
// rolls are supplied by the test rather than computed, so inference
// and search tests never depend on a real rollout library being
// reachable.
type FakeEngine struct {
	SearchResult Result
	SearchErr    error
	Rolls        DamageRolls
	RollsErr     error

	// Calls records every MonteCarloTreeSearch state string, in order,
	// so a test can assert on what the search driver actually sampled.
	Calls []string
	mu    sync.Mutex
}

func (f *FakeEngine) MonteCarloTreeSearch(state string, durationMs int) (Result, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, state)
	f.mu.Unlock()
	if f.SearchErr != nil {
		return Result{}, f.SearchErr
	}
	return f.SearchResult, nil
}

func (f *FakeEngine) GetDamageRolls(state, moveA, moveB string, sideAFirst bool) (DamageRolls, error) {
	if f.RollsErr != nil {
		return DamageRolls{}, f.RollsErr
	}
	return f.Rolls, nil
}

// FakeSerializer renders a Battle as a trivial fixed string, enough
// for tests that only need a stable, non-empty state token.
type FakeSerializer struct{}

func (FakeSerializer) Serialize(b *model.Battle) (string, error) {
	if b == nil {
		return "", nil
	}
	return b.Tag, nil
}

// FakeTypeChart is a tiny in-memory type chart for tests, keyed by
// "attackType/defendType" with a default multiplier of 1.0.
type FakeTypeChart struct {
	Table map[string]float64
}

func NewFakeTypeChart() *FakeTypeChart {
	return &FakeTypeChart{Table: make(map[string]float64)}
}

func (c *FakeTypeChart) Set(attackType, defendType string, multiplier float64) {
	c.Table[attackType+"/"+defendType] = multiplier
}

func (c *FakeTypeChart) Multiplier(attackType string, defendTypes []string) float64 {
	product := 1.0
	for _, d := range defendTypes {
		if m, ok := c.Table[attackType+"/"+d]; ok {
			product *= m
		} else {
			product *= 1.0
		}
	}
	return product
}
