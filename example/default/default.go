package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/camera"
	"github.com/oomph-ac/locomotion/controller"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/simulation"
	"github.com/oomph-ac/locomotion/utils"
	"github.com/oomph-ac/locomotion/world"
	"github.com/oomph-ac/locomotion/worker"
	"github.com/sirupsen/logrus"
)

const (
	frameRate = 60
	// killHeight is the height below which the character is put back on the spawn.
	killHeight = -10
)

var spawn = mgl32.Vec3{0, 0.5, 0}

// The following program walks a character through a small course of boxes, following it with an orbit
// camera, and verifies that the run replays deterministically.
func main() {
	path := "locomotion.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	s, err := settings.Load(path)
	if err != nil {
		logger.Fatalf("unable to load settings: %v", err)
	}
	r, err := s.Resolve()
	if err != nil {
		logger.Fatalf("invalid settings: %v", err)
	}
	logger.SetLevel(r.Level)
	logger.Infof("layers: %s", r.Layers)

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			logger.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	realtime := os.Getenv("PPROF_ENABLED") != ""
	if realtime {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	script := course()
	loop, err := newLoop(r, logger)
	if err != nil {
		logger.Fatalf("unable to build the course: %v", err)
	}
	run(loop, script, realtime, logger)

	sum := simulation.Summarize(loop.History())
	logger.Infof("run summary: %s", utils.KeyValsToString(
		"ticks", sum.Ticks,
		"air", sum.AirTicks,
		"snaps", sum.Snaps,
		"jumps", sum.Jumps,
		"mean_speed", sum.MeanSpeed,
		"median_speed", sum.MedianSpeed,
		"speed_dev", sum.SpeedDeviation,
		"outliers", sum.SpeedOutliers,
	))

	pool := worker.New(0)
	defer pool.Close()
	build := func() *simulation.Loop {
		l, err := newLoop(r, nil)
		if err != nil {
			panic(err)
		}
		return l
	}
	if err := simulation.VerifyDeterminism(pool, build, script, 4); err != nil {
		logger.Errorf("replay check failed: %v", err)
		return
	}
	logger.Info("replay check passed")
}

// newLoop builds the course and a started loop for a character spawned at its start.
func newLoop(r settings.Resolved, logger *logrus.Logger) (*simulation.Loop, error) {
	w := world.New(r.Layers)
	for _, c := range []struct {
		name  string
		box   cube.BBox
		layer string
	}{
		{"floor", cube.Box(-50, -1, -50, 50, 0, 50), world.LayerGround},
		{"step", cube.Box(-3, 0, 8, 3, 0.3, 14), world.LayerGround},
		{"platform", cube.Box(-3, 0, 14, 3, 1.5, 20), world.LayerGround},
		{"wall", cube.Box(-10, 0, -6, 10, 6, -5), world.LayerObstacle},
	} {
		if err := w.AddBox(c.name, c.box, c.layer); err != nil {
			return nil, err
		}
	}

	if logger != nil {
		for _, c := range w.Colliders() {
			logger.Debugf("collider %s on layer %d: %v - %v", c.Name, c.Layer, c.Box.Min(), c.Box.Max())
		}
	}

	body := world.NewBody(w, spawn, mgl32.Vec3{0.5, 0.5, 0.5}, world.AllLayers, r.Controller.GravityY)

	var opts controller.Options
	if logger != nil && logger.IsLevelEnabled(logrus.TraceLevel) {
		opts.Debugf = logger.Tracef
	}
	ctrl := controller.New(r.Controller, body, w, body, opts)
	cam := camera.New(r.Camera, r.Lens, w, spawn)

	l := simulation.New(simulation.Config{
		FixedStep:        r.Loop.FixedStep,
		MaxStepsPerFrame: r.Loop.MaxStepsPerFrame,
		HistorySize:      max(r.Loop.HistorySize, 1024),
	}, ctrl, cam, body, logger)
	l.Start()
	return l, nil
}

// course returns a scripted run: walk up the step onto the platform, jump twice, then turn around and back
// away towards the wall so that it obstructs the camera.
func course() []simulation.ScriptFrame {
	var script []simulation.ScriptFrame
	add := func(seconds float32, in simulation.FrameInput) {
		for range int(seconds * frameRate) {
			script = append(script, simulation.ScriptFrame{Delta: 1.0 / frameRate, Input: in})
		}
	}
	forward := mgl32.Vec2{0, 1}

	add(2, simulation.FrameInput{Move: forward})
	add(1.0/frameRate, simulation.FrameInput{Move: forward, Jump: true})
	add(0.6, simulation.FrameInput{Move: forward})
	add(1.0/frameRate, simulation.FrameInput{Move: forward, Jump: true})
	add(1, simulation.FrameInput{Move: forward})
	add(2, simulation.FrameInput{Look: mgl32.Vec2{1, 0}})
	add(4, simulation.FrameInput{Move: forward})
	return script
}

func run(loop *simulation.Loop, script []simulation.ScriptFrame, realtime bool, logger *logrus.Logger) {
	defer func() {
		if err := recover(); err != nil {
			logger.Errorf("simulation panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("tick", fmt.Sprint(loop.Tick()))
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()
	defer loop.Stop()

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Second / frameRate)
		defer ticker.Stop()
	}
	for i, f := range script {
		if ticker != nil {
			<-ticker.C
		}
		res := loop.Advance(f.Delta, f.Input)
		if res.Position.Y() < killHeight {
			loop.Respawn(spawn)
		}
		if i%frameRate == 0 {
			logger.WithFields(logrus.Fields{
				"tick":       loop.Tick(),
				"obstructed": res.Camera.Obstructed,
			}).Infof("position %v camera %v", res.Position, res.Camera.Position)
		}
	}
}
