// Package totrain decides which adversary trains on the next step.
package totrain

import "github.com/neurlang/gantrainer/ledger"
import "github.com/neurlang/gantrainer/role"

// Policy chooses the role trained next from the statistics so far.
// Implementations must be deterministic given the ledger contents.
type Policy interface {
	Next(s ledger.View) role.Role
}

// Func adapts an ordinary function to a Policy.
type Func func(s ledger.View) role.Role

// Next calls f(s).
func (f Func) Next(s ledger.View) role.Role {
	return f(s)
}

// Ratio trains the discriminator Discriminator times for every Generator
// generator steps. It picks the role whose count per unit of weight is
// smaller; on a tie, including the initial all-zero state, the
// discriminator trains. Non-positive weights count as 1.
type Ratio struct {
	Discriminator int
	Generator     int
}

// Next implements Policy.
func (p Ratio) Next(s ledger.View) role.Role {
	wd, wg := weight(p.Discriminator), weight(p.Generator)
	d := s.EpochsTrained(role.Discriminator)
	g := s.EpochsTrained(role.Generator)
	// d/wd <= g/wg without dividing
	if d*wg <= g*wd {
		return role.Discriminator
	}
	return role.Generator
}

func weight(w int) int {
	if w <= 0 {
		return 1
	}
	return w
}

// TwoFiveRule trains the discriminator five times for every two generator steps.
func TwoFiveRule() Ratio {
	return Ratio{Discriminator: 5, Generator: 2}
}

// Alternate trains the roles in turn, discriminator first.
func Alternate() Ratio {
	return Ratio{Discriminator: 1, Generator: 1}
}

// Only always trains the same role.
type Only role.Role

// Next implements Policy.
func (o Only) Next(ledger.View) role.Role {
	return role.Role(o)
}
