// Package role names the two adversarial parties of a GAN.
package role

import "strconv"

// Role identifies which adversary is being referenced.
type Role uint8

const (
	Generator Role = iota
	Discriminator
)

// Count is the number of roles.
const Count = 2

// All lists the roles in a stable order.
var All = [Count]Role{Generator, Discriminator}

// String returns the short tag of the role, "G" or "D".
func (r Role) String() string {
	switch r {
	case Generator:
		return "G"
	case Discriminator:
		return "D"
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

// Name returns the long name of the role.
func (r Role) Name() string {
	switch r {
	case Generator:
		return "generator"
	case Discriminator:
		return "discriminator"
	}
	return r.String()
}

// Valid reports whether r is one of the two roles.
func (r Role) Valid() bool {
	return r < Count
}

// Other returns the adversary of r.
func (r Role) Other() Role {
	if r == Generator {
		return Discriminator
	}
	return Generator
}

// Parse converts a "G"/"D" tag (or a long name) to a Role.
func Parse(s string) (Role, bool) {
	switch s {
	case "G", "g", "generator":
		return Generator, true
	case "D", "d", "discriminator", "critic":
		return Discriminator, true
	}
	return 0, false
}

// Pair holds one value per role, indexed by Role.
type Pair[T any] [Count]T

// NewPair builds a pair from the generator and discriminator values.
func NewPair[T any](generator, discriminator T) Pair[T] {
	return Pair[T]{generator, discriminator}
}
