package autopilot

import "fmt"

// State is the state of a Bot. It is one of Setup, Takeoff or Flight.
type State interface {
	// Name returns a short, human-readable name of the state.
	Name() string
	botState()
}

// Setup moves the player to the staging position and waits for it to settle.
type Setup struct {
	// Elapsed is the time in seconds the player has been settled at the staging position.
	Elapsed float32
}

// Takeoff holds forward and circle jumps into the first strafe.
type Takeoff struct {
	// Turned is the view angle in radians turned since the takeoff started.
	Turned float32
}

// Flight is the steady strafe jumping loop.
type Flight struct {
	// Jumped is set once the jump of the current cycle has been made, and cleared when airborne.
	Jumped bool
	// Clockwise is the turn direction of the current cycle.
	Clockwise bool
}

func (Setup) Name() string   { return "setup" }
func (Takeoff) Name() string { return "takeoff" }
func (Flight) Name() string  { return "flight" }

func (Setup) botState()   {}
func (Takeoff) botState() {}
func (Flight) botState()  {}

func (s Setup) String() string {
	return fmt.Sprintf("Setup(elapsed=%.2fs)", s.Elapsed)
}

func (s Takeoff) String() string {
	return fmt.Sprintf("Takeoff(turned=%.1f°)", s.Turned/degree)
}

func (s Flight) String() string {
	return fmt.Sprintf("Flight(jumped=%t, clockwise=%t)", s.Jumped, s.Clockwise)
}
