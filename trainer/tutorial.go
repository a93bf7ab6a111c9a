package trainer

const (
	// TimedStageDuration is how long the timed stages are shown before they can be continued.
	TimedStageDuration = float32(5)
	// TargetSpeed is the ground speed the practice stages must reach.
	TargetSpeed = float32(1000)
)

// Stage is a step of the tutorial.
type Stage uint8

const (
	StageIntro Stage = iota
	StageObserve
	StageHopping
	StageMoving
	StageTurning
)

func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageObserve:
		return "observe"
	case StageHopping:
		return "hopping"
	case StageMoving:
		return "moving"
	case StageTurning:
		return "turning"
	}
	return "unknown"
}

// timed reports whether the stage completes after TimedStageDuration rather than at TargetSpeed.
func (s Stage) timed() bool {
	return s == StageIntro || s == StageObserve
}

// next returns the stage after s, or false if s is the last stage.
func (s Stage) next() (Stage, bool) {
	if s >= StageTurning {
		return s, false
	}
	return s + 1, true
}

// Autopilot returns whether the stage runs the autopilot and which of its outputs it applies. The player
// is in control of whatever the stage is about.
func (s Stage) Autopilot() (bool, Overrides) {
	switch s {
	case StageObserve:
		return true, Overrides{Hop: true, Move: true, Turn: true}
	case StageHopping:
		return true, Overrides{Hop: false, Move: true, Turn: true}
	case StageMoving:
		return true, Overrides{Hop: true, Move: false, Turn: true}
	case StageTurning:
		return true, Overrides{Hop: true, Move: true, Turn: false}
	}
	return false, Overrides{}
}

// Prompt returns the instructions shown for the stage.
func (s Stage) Prompt() string {
	switch s {
	case StageIntro:
		return "Strafe jumping accelerates you past the usual speed limit by keeping your wish direction just outside the angle in which acceleration is cut off."
	case StageObserve:
		return "Watch the bot: a quick turn before the first jump, a jump on every landing, and alternating forward-left and forward-right keys while turning into the acceleration window."
	case StageHopping:
		return "Jump every time you land. Reach 1000 UPS to continue."
	case StageMoving:
		return "Hold forward and the strafe key for the direction you are turning. Reach 1000 UPS to continue."
	case StageTurning:
		return "Turn the view to keep accelerating. Reach 1000 UPS to complete the tutorial."
	}
	return ""
}

// Tutorial tracks progress through the tutorial stages.
type Tutorial struct {
	stage Stage
	// progress is the elapsed time of a timed stage or the top ground speed of a speed stage.
	progress float32
	ready    bool
	finished bool
}

// NewTutorial returns a tutorial at the first stage.
func NewTutorial() *Tutorial {
	return &Tutorial{}
}

// Stage returns the current stage.
func (t *Tutorial) Stage() Stage {
	return t.stage
}

// Ready returns whether the current stage is complete and waiting for the player to continue.
func (t *Tutorial) Ready() bool {
	return t.ready
}

// Finished returns whether the last stage has been continued past.
func (t *Tutorial) Finished() bool {
	return t.finished
}

// Progress returns the elapsed time in seconds or the top ground speed of the current stage.
func (t *Tutorial) Progress() float32 {
	return t.progress
}

// TutorialUpdate describes what changed in a tutorial update.
type TutorialUpdate struct {
	// BecameReady is set on the update that completed the stage.
	BecameReady bool
	// Advanced is set when the player continued to the next stage, or finished the tutorial.
	Advanced bool
}

// Update advances the current stage by dt seconds. A stage only advances on an action press in a later
// update than the one that completed it.
func (t *Tutorial) Update(dt, groundSpeed float32, actionPressed bool) TutorialUpdate {
	if t.finished {
		return TutorialUpdate{}
	}
	if t.ready {
		if !actionPressed {
			return TutorialUpdate{}
		}
		next, ok := t.stage.next()
		if !ok {
			t.finished = true
		} else {
			*t = Tutorial{stage: next}
		}
		return TutorialUpdate{Advanced: true}
	}

	if t.stage.timed() {
		t.progress += dt
		t.ready = t.progress > TimedStageDuration
	} else {
		t.progress = max(t.progress, groundSpeed)
		t.ready = t.progress > TargetSpeed
	}
	return TutorialUpdate{BecameReady: t.ready}
}
