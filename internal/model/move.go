package model

// Move is a single known move slot on a Pokemon (spec §3.1).
// Equality is by Name, per spec.
type Move struct {
	Name     string
	PP       int
	MaxPP    int
	Disabled bool
	CanZ     bool // this move has a corresponding Z-move crystal (spec §6.2)
}

// Equal reports whether two moves refer to the same move identifier.
func (m Move) Equal(other Move) bool { return m.Name == other.Name }

// DecrementPP reduces PP by n, never going below zero.
func (m *Move) DecrementPP(n int) {
	m.PP -= n
	if m.PP < 0 {
		m.PP = 0
	}
}
