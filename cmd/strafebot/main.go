package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/strafebot/movement"
	"github.com/oomph-ac/strafebot/settings"
	"github.com/oomph-ac/strafebot/trainer"
	"github.com/oomph-ac/strafebot/worker"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "strafebot.toml", "path to the settings file, created with defaults if missing")
	seconds := flag.Float64("seconds", 10, "simulated seconds of a headless run")
	bench := flag.Bool("bench", false, "run the autopilot on every movement preset and compare the results")
	hud := flag.Bool("hud", false, "run the interactive terminal trainer")
	tutorial := flag.Bool("tutorial", false, "start the interactive trainer in the tutorial")
	flag.Parse()

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(*configPath); err != nil {
			panic(err)
		}
	}
	s, err := settings.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: false, TimestampFormat: "2006-01-02 15:04:05", FullTimestamp: true}
	if log.Level, err = logrus.ParseLevel(s.Log.Level); err != nil {
		log.Level = logrus.InfoLevel
		log.Warnf("unknown log level %q, using info", s.Log.Level)
	}

	if s.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Sentry.DSN}); err != nil {
			log.Errorf("sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}
	if s.Debug.StatsViewAddr != "" {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Debug.StatsViewAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	cfg, warnings, err := trainer.ConfigFromSettings(s, log)
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("invalid settings in %s: %v", *configPath, err)
	}

	switch {
	case *bench:
		if err := runBench(cfg, float32(*seconds), log); err != nil {
			log.Errorf("benchmark failed: %v", err)
		}
	case *hud || *tutorial:
		h, err := newHUD(cfg, log, *tutorial)
		if err != nil {
			log.Fatalf("unable to start terminal: %v", err)
		}
		h.run()
	default:
		t := trainer.New(cfg)
		summary := runHeadless(t, cfg.TickDuration, float32(*seconds))
		logSummary(log.WithField("preset", s.Movement.Preset), summary)
	}
}

// runHeadless simulates the trainer for the given number of seconds with no player input.
func runHeadless(t *trainer.Trainer, dt, seconds float32) trainer.Summary {
	for elapsed := float32(0); elapsed < seconds; elapsed += dt {
		t.Frame(dt, trainer.FrameInput{})
	}
	return t.Recorder().Summary()
}

// runBench flies the autopilot on every movement preset at once.
func runBench(cfg trainer.Config, seconds float32, log *logrus.Logger) error {
	presets := movement.Presets()
	summaries := make([]trainer.Summary, presets.Len())
	names := make([]string, 0, presets.Len())

	pool := worker.NewPool(0)
	i := 0
	for el := presets.Front(); el != nil; el = el.Next() {
		name, profile := el.Key, el.Value
		names = append(names, name)
		c := cfg
		c.Profile = profile
		c.Autopilot = true
		c.Overrides = trainer.Overrides{Hop: true, Move: true, Turn: true}
		c.Environment = nil
		c.Log = log.WithField("preset", name)

		idx := i
		pool.Go(func() error {
			summaries[idx] = runHeadless(trainer.New(c), c.TickDuration, seconds)
			if summaries[idx].TopSpeed <= profile.Ground.MaxSpeed {
				return fmt.Errorf("%s: never exceeded the ground speed limit", name)
			}
			return nil
		})
		i++
	}
	err := pool.Wait()
	for i, name := range names {
		logSummary(log.WithField("preset", name), summaries[i])
	}
	return err
}

func logSummary(log *logrus.Entry, s trainer.Summary) {
	log.WithFields(logrus.Fields{
		"ticks":  s.Ticks,
		"top":    fmt.Sprintf("%.1f", s.TopSpeed),
		"mean":   fmt.Sprintf("%.1f", s.MeanSpeed),
		"stddev": fmt.Sprintf("%.1f", s.SpeedStdDev),
		"digest": fmt.Sprintf("%016x", s.Digest),
	}).Info("run finished")
}
