package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestArrowKeysRotateView(t *testing.T) {
	h := &hud{}
	h.handleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if h.pitch >= 0 {
		t.Fatalf("expected up to pitch the view up (towards 0), got %v", h.pitch)
	}
	h.pitch = 0
	h.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if h.pitch <= 0 {
		t.Fatalf("expected down to pitch the view down, got %v", h.pitch)
	}
	h.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if h.yaw != turnStep {
		t.Fatalf("expected left to turn counter-clockwise by %v, got %v", turnStep, h.yaw)
	}
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone) }
	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(exited)
	}()

	<-events
	close(done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatalf("expected pumpEvents to return after done is closed with a full queue")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	events := make(chan tcell.Event)
	pumpEvents(func() tcell.Event { return nil }, events, make(chan struct{}))
}
