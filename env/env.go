// Package env holds the worlds a player moves in. An environment runs once after every simulated tick and
// may move the player further, for collision response or to wrap the player around the edges of a map.
package env

import (
	"fmt"

	"github.com/oomph-ac/strafebot/movement"
)

// Environment is the world around the player.
type Environment interface {
	// Name returns the name of the environment as used in configuration.
	Name() string
	// Interact applies collisions and wraparound to the player.
	Interact(state *movement.State)
}

const (
	NameRunway    = "runway"
	NameFreestyle = "freestyle"
	NameNone      = "none"
)

// None is an infinite, empty floor.
type None struct{}

func (None) Name() string { return NameNone }

func (None) Interact(*movement.State) {}

// ByName returns the named environment. seed is used by environments with generated obstacles.
func ByName(name string, seed uint64) (Environment, error) {
	switch name {
	case NameRunway, "":
		return NewRunway(), nil
	case NameFreestyle:
		return NewFreestyle(seed), nil
	case NameNone:
		return None{}, nil
	}
	return nil, fmt.Errorf("unknown environment %q", name)
}
