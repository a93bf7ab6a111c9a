package input

import "strings"

// KeyCode identifies one of the logical keys of a KeyState.
type KeyCode uint8

const (
	KeyForward KeyCode = iota
	KeyLeft
	KeyBack
	KeyRight
	KeyJump
	KeyAction
)

// KeyState holds the held state of every logical key for a single tick.
type KeyState struct {
	Forward bool
	Left    bool
	Back    bool
	Right   bool
	Jump    bool
	// Action is the tutorial "continue" key.
	Action bool
}

// And returns the keys held in both states.
func (k KeyState) And(o KeyState) KeyState {
	return KeyState{
		Forward: k.Forward && o.Forward,
		Left:    k.Left && o.Left,
		Back:    k.Back && o.Back,
		Right:   k.Right && o.Right,
		Jump:    k.Jump && o.Jump,
		Action:  k.Action && o.Action,
	}
}

// Or returns the keys held in either state.
func (k KeyState) Or(o KeyState) KeyState {
	return KeyState{
		Forward: k.Forward || o.Forward,
		Left:    k.Left || o.Left,
		Back:    k.Back || o.Back,
		Right:   k.Right || o.Right,
		Jump:    k.Jump || o.Jump,
		Action:  k.Action || o.Action,
	}
}

// Not inverts every key.
func (k KeyState) Not() KeyState {
	return KeyState{
		Forward: !k.Forward,
		Left:    !k.Left,
		Back:    !k.Back,
		Right:   !k.Right,
		Jump:    !k.Jump,
		Action:  !k.Action,
	}
}

// Pressed returns the keys held now that were not held in previous.
func (k KeyState) Pressed(previous KeyState) KeyState {
	return k.And(previous.Not())
}

// Released returns the keys held in previous that are no longer held.
func (k KeyState) Released(previous KeyState) KeyState {
	return k.Not().And(previous)
}

// IsSideStrafe returns true if left or right is held without forward or back.
func (k KeyState) IsSideStrafe() bool {
	return (k.Left || k.Right) && !(k.Forward || k.Back)
}

// Movement returns only the directional keys.
func (k KeyState) Movement() KeyState {
	return KeyState{Forward: k.Forward, Left: k.Left, Back: k.Back, Right: k.Right}
}

// Get returns whether the key is held.
func (k KeyState) Get(code KeyCode) bool {
	switch code {
	case KeyForward:
		return k.Forward
	case KeyLeft:
		return k.Left
	case KeyBack:
		return k.Back
	case KeyRight:
		return k.Right
	case KeyJump:
		return k.Jump
	case KeyAction:
		return k.Action
	}
	return false
}

// Set updates the held state of a single key.
func (k *KeyState) Set(code KeyCode, pressed bool) {
	switch code {
	case KeyForward:
		k.Forward = pressed
	case KeyLeft:
		k.Left = pressed
	case KeyBack:
		k.Back = pressed
	case KeyRight:
		k.Right = pressed
	case KeyJump:
		k.Jump = pressed
	case KeyAction:
		k.Action = pressed
	}
}

// Any returns true if at least one key is held.
func (k KeyState) Any() bool {
	return k != KeyState{}
}

// String renders the held keys with their default bindings, e.g. "WA_".
func (k KeyState) String() string {
	var b strings.Builder
	for _, c := range []struct {
		held bool
		r    byte
	}{{k.Forward, 'W'}, {k.Left, 'A'}, {k.Back, 'S'}, {k.Right, 'D'}, {k.Jump, '_'}, {k.Action, 'F'}} {
		if c.held {
			b.WriteByte(c.r)
		}
	}
	return b.String()
}
