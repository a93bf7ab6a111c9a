package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/oomph-ac/strafebot/game"
	"github.com/oomph-ac/strafebot/input"
	"github.com/oomph-ac/strafebot/trainer"
	"github.com/sirupsen/logrus"
)

const (
	frameInterval = 16 * time.Millisecond
	// keyHold is how long a key counts as held after its last press. Terminals only report key repeats,
	// never releases.
	keyHold = 150 * time.Millisecond
	// turnStep is the view rotation of one arrow key event.
	turnStep = 5 * game.Degree
	// speedBarScale is the speed shown by a full speed bar.
	speedBarScale = float32(2000)
)

var keyBindings = map[rune]input.KeyCode{
	'w': input.KeyForward,
	'a': input.KeyLeft,
	's': input.KeyBack,
	'd': input.KeyRight,
	' ': input.KeyJump,
	'e': input.KeyAction,
}

// hud runs the trainer interactively in the terminal.
type hud struct {
	screen  tcell.Screen
	trainer *trainer.Trainer
	log     *logrus.Logger
	cue     *jumpCue
	logFile *os.File

	held       [input.KeyAction + 1]time.Time
	yaw, pitch float32
	grounded   bool
	last       time.Time
	result     trainer.FrameResult
}

func newHUD(cfg trainer.Config, log *logrus.Logger, tutorial bool) (*hud, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	h := &hud{screen: screen, log: log, grounded: true}
	// Log lines would be drawn over by the screen.
	if f, err := os.OpenFile("strafebot.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		h.logFile = f
		log.SetOutput(f)
	}
	cfg.Log = log
	h.trainer = trainer.New(cfg)
	if tutorial {
		h.trainer.StartTutorial()
	}

	if h.cue, err = newJumpCue(); err != nil {
		log.Warnf("audio unavailable: %v", err)
	}
	return h, nil
}

func (h *hud) run() {
	defer h.close()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(h.screen.PollEvent, events, done)

	h.last = time.Now()
	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			h.frame(now)
			h.draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (h *hud) close() {
	h.cue.close()
	h.screen.Fini()
	if h.logFile != nil {
		h.log.SetOutput(os.Stderr)
		_ = h.logFile.Close()
	}
}

func (h *hud) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			h.yaw += turnStep
		case tcell.KeyRight:
			h.yaw -= turnStep
		// Pitch is 0 looking straight up.
		case tcell.KeyUp:
			h.pitch -= turnStep
		case tcell.KeyDown:
			h.pitch += turnStep
		case tcell.KeyEnter:
			h.held[input.KeyAction] = time.Now()
		case tcell.KeyRune:
			r := ev.Rune()
			if code, ok := keyBindings[r]; ok {
				h.held[code] = time.Now()
				break
			}
			switch r {
			case 'q':
				return false
			case 'p':
				if h.trainer.Autopilot() != nil {
					h.trainer.DisableAutopilot()
				} else {
					h.trainer.EnableAutopilot(nil)
				}
			case 't':
				if h.trainer.Tutorial() != nil {
					h.trainer.StopTutorial()
				} else {
					h.trainer.StartTutorial()
				}
			case 'r':
				h.trainer.Reset()
			}
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// keys returns the keys pressed recently enough to count as held.
func (h *hud) keys(now time.Time) input.KeyState {
	var keys input.KeyState
	for code, at := range h.held {
		keys.Set(input.KeyCode(code), now.Sub(at) < keyHold)
	}
	return keys
}

func (h *hud) frame(now time.Time) {
	dt := float32(now.Sub(h.last).Seconds())
	h.last = now

	h.result = h.trainer.Frame(dt, trainer.FrameInput{Keys: h.keys(now), Yaw: h.yaw, Pitch: h.pitch})
	h.yaw, h.pitch = 0, 0

	grounded := h.result.State.IsGrounded()
	if h.grounded && !grounded {
		h.cue.play(h.result.SpeedUPS)
	}
	h.grounded = grounded
}

func (h *hud) draw() {
	h.screen.Clear()
	res := h.result
	style := tcell.StyleDefault

	bot := "off"
	if res.BotState != nil {
		bot = res.BotState.Name()
	}
	lines := []string{
		fmt.Sprintf("speed %7.1f ups  %6.1f mph  %6.1f kph", res.SpeedUPS, res.SpeedMPH, res.SpeedKPH),
		fmt.Sprintf("warp  %5.2f   %5.1f fps   %d ticks", res.Warp, res.Framerate, res.Ticks),
		fmt.Sprintf("pos   %8.1f %8.1f %6.1f", res.State.Pos.X(), res.State.Pos.Y(), res.State.Pos.Z()),
		fmt.Sprintf("view  yaw %6.1f  pitch %5.1f", game.NormalizeSigned(res.State.Yaw)/game.Degree, res.State.Pitch/game.Degree),
		fmt.Sprintf("keys  %-12s bot %-12s %s", res.Keys, res.BotKeys, bot),
	}
	for i, line := range lines {
		h.text(0, i, line, style)
	}
	h.speedBar(0, len(lines)+1, res.SpeedUPS)

	row := len(lines) + 3
	if res.InTutorial {
		h.text(0, row, fmt.Sprintf("tutorial: %s", res.Stage), style.Bold(true))
		row = h.wrap(0, row+1, res.Stage.Prompt(), style)
		if t := h.trainer.Tutorial(); t != nil && t.Ready() {
			h.text(0, row, "press E to continue", style.Foreground(tcell.ColorGreen))
			row++
		}
		row++
	}
	h.text(0, row, "wasd move  space jump  arrows turn  p autopilot  t tutorial  r reset  q quit", style.Dim(true))
	h.screen.Show()
}

func (h *hud) speedBar(x, y int, speed float32) {
	width, _ := h.screen.Size()
	width -= x + 2
	if width <= 0 {
		return
	}
	filled := int(math32.Min(speed/speedBarScale, 1) * float32(width))
	color := tcell.ColorYellow
	if speed > speedBarScale/2 {
		color = tcell.ColorGreen
	}
	h.text(x, y, "["+strings.Repeat("#", filled)+strings.Repeat(" ", width-filled)+"]", tcell.StyleDefault.Foreground(color))
}

func (h *hud) text(x, y int, s string, style tcell.Style) {
	width, _ := h.screen.Size()
	for _, r := range s {
		if x >= width {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// wrap draws s word wrapped to the screen width and returns the row after it.
func (h *hud) wrap(x, y int, s string, style tcell.Style) int {
	width, _ := h.screen.Size()
	width -= x
	line := ""
	for _, word := range strings.Fields(s) {
		if line != "" && len(line)+1+len(word) > width {
			h.text(x, y, line, style)
			y++
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += word
	}
	if line != "" {
		h.text(x, y, line, style)
		y++
	}
	return y
}
