package autopilot

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/strafebot/input"
)

// KeyProfile decides which movement keys the bot holds while strafing. It is either PlayerKeys or
// FixedKeys.
type KeyProfile interface {
	// Keys returns the movement keys for a turn in the given direction.
	Keys(clockwise bool, player input.KeyState) input.KeyState
	keyProfile()
}

// PlayerKeys passes the player's own keys through, so only the view and the jump are automated.
type PlayerKeys struct{}

func (PlayerKeys) Keys(_ bool, player input.KeyState) input.KeyState {
	return player
}

func (PlayerKeys) keyProfile() {}

// FixedKeys holds a fixed key combination for each turn direction.
type FixedKeys struct {
	CW  input.KeyState
	CCW input.KeyState
}

func (k FixedKeys) Keys(clockwise bool, _ input.KeyState) input.KeyState {
	if clockwise {
		return k.CW
	}
	return k.CCW
}

func (FixedKeys) keyProfile() {}

var (
	keysW  = input.KeyState{Forward: true}
	keysA  = input.KeyState{Left: true}
	keysS  = input.KeyState{Back: true}
	keysD  = input.KeyState{Right: true}
	keysWA = keysW.Or(keysA)
	keysWD = keysW.Or(keysD)
	keysSA = keysS.Or(keysA)
	keysSD = keysS.Or(keysD)
)

var (
	// Standard is full-beat forward strafing.
	Standard = FixedKeys{CW: keysWD, CCW: keysWA}
	// Reverse is full-beat backward strafing.
	Reverse = FixedKeys{CW: keysSA, CCW: keysSD}
	// HalfBeatLeft side strafes on counter-clockwise turns.
	HalfBeatLeft = FixedKeys{CW: keysWD, CCW: keysA}
	// HalfBeatRight side strafes on clockwise turns.
	HalfBeatRight = FixedKeys{CW: keysD, CCW: keysWA}
)

const (
	ProfileStandard      = "standard"
	ProfileReverse       = "reverse"
	ProfileHalfBeatLeft  = "half-beat-left"
	ProfileHalfBeatRight = "half-beat-right"
	ProfilePlayer        = "player"
)

// KeyProfiles returns the named key profiles in display order.
func KeyProfiles() *orderedmap.OrderedMap[string, KeyProfile] {
	m := orderedmap.NewOrderedMap[string, KeyProfile]()
	m.Set(ProfileStandard, Standard)
	m.Set(ProfileReverse, Reverse)
	m.Set(ProfileHalfBeatLeft, HalfBeatLeft)
	m.Set(ProfileHalfBeatRight, HalfBeatRight)
	m.Set(ProfilePlayer, PlayerKeys{})
	return m
}

// KeyProfileByName looks up a key profile registered in KeyProfiles.
func KeyProfileByName(name string) (KeyProfile, bool) {
	return KeyProfiles().Get(name)
}
