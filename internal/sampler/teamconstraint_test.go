package sampler

import (
	"testing"

	"github.com/l1jgo/battlecore/internal/rollout"
)

type fakeSpeciesTypes map[string][]string

func (f fakeSpeciesTypes) TypesOf(species string) []string { return f[species] }

// TestTeamConstraintMoreThan3WeakToATyping isolates the first rule by
// giving every test species a single distinct synthetic type, so
// none of them ever share a literal type with each other (which would
// also trip the second rule).
func TestTeamConstraintMoreThan3WeakToATyping(t *testing.T) {
	types := fakeSpeciesTypes{
		"P1": {"ta"},
		"P2": {"tb"},
		"P3": {"tc"},
		"P4": {"td"},
	}
	chart := rollout.NewFakeTypeChart()
	chart.Set("ice", "ta", 2.0)
	chart.Set("ice", "tb", 2.0)
	chart.Set("ice", "tc", 2.0)
	chart.Set("ice", "td", 2.0)

	c := NewTeamConstraint(types, chart)

	if c.Violated([]string{"P1", "P2"}, "P3") {
		t.Fatalf("3 species weak to one type should not violate the limit of 3")
	}
	if !c.Violated([]string{"P1", "P2", "P3"}, "P4") {
		t.Fatalf("4 species weak to one type should violate the limit of 3")
	}
}

// TestTeamConstraintMoreThan2OfAnyType isolates the second rule: no
// type/weakness multiplier is configured, so only literal type
// membership can trigger a violation.
func TestTeamConstraintMoreThan2OfAnyType(t *testing.T) {
	types := fakeSpeciesTypes{
		"Skarmory":    {"steel", "flying"},
		"Corviknight": {"flying", "steel"},
		"Gliscor":     {"ground", "flying"},
	}
	chart := rollout.NewFakeTypeChart()
	c := NewTeamConstraint(types, chart)

	if c.Violated([]string{"Skarmory"}, "Corviknight") {
		t.Fatalf("two flying-types should not violate the limit of 2")
	}
	if !c.Violated([]string{"Skarmory", "Corviknight"}, "Gliscor") {
		t.Fatalf("three flying-types should violate the limit of 2")
	}
}

// TestTeamConstraintMoreThan1With4xWeakness isolates the third rule
// using synthetic types so the other two rules cannot fire.
func TestTeamConstraintMoreThan1With4xWeakness(t *testing.T) {
	types := fakeSpeciesTypes{
		"Q1": {"ta"},
		"Q2": {"tb"},
	}
	chart := rollout.NewFakeTypeChart()
	chart.Set("ice", "ta", 4.0)
	chart.Set("ice", "tb", 4.0)

	c := NewTeamConstraint(types, chart)

	if !c.Violated([]string{"Q1"}, "Q2") {
		t.Fatalf("a second 4x-weak-to-ice species should violate the limit of 1")
	}
	if c.Violated(nil, "Q1") {
		t.Fatalf("a single 4x-weak-to-ice species should not violate the limit of 1")
	}
}
