package desktop

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"handracer/internal/audio"
	"handracer/internal/camera"
	"handracer/internal/game"
	"handracer/internal/render"
)

// NoCamera as Options.Camera skips opening a capture device.
const NoCamera = -1

// Options configure a desktop session.
type Options struct {
	Camera int // device index, NoCamera to run without one
	Mute   bool
	Game   game.Config
}

// Run opens the window and plays until the player quits or ctx is done.
// Only window, GL and renderer failures are returned; a missing camera or
// audio device degrades the game instead.
func Run(ctx context.Context, opts Options, logger *log.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if logger == nil {
		logger = log.Default()
	}

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	logger.Debug("gl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	g := game.New(opts.Game, nil)
	cfg := g.Config()
	logEvents(g.Bus, logger)

	tracker := openCamera(opts.Camera, cfg.Lanes, logger)
	var src game.HandSource
	if tracker != nil {
		src = tracker
		defer tracker.Close()
	}
	gesture := game.NewGestureInput(src, cfg.CameraStride)

	var snd *audio.System
	if !opts.Mute {
		snd, err = audio.New(logger)
		if err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
			snd = nil
		}
		defer snd.Close()
	}
	snd.Subscribe(g.Bus)

	input := NewInput()
	pacer := game.NewPacer(nil, cfg.TargetFPS)
	frame := game.NewFrame()
	lastStatus := gesture.Status()
	var lastErr error

	logger.Info("game started", "seed", cfg.Seed, "lanes", cfg.Lanes, "stride", cfg.CameraStride)
	for {
		glfw.PollEvents()
		if input.QuitRequested(window) || ctx.Err() != nil {
			break
		}

		hand := g.Poll(gesture)
		if st := g.State.Camera; st != lastStatus {
			logger.Warn("camera lost, steering disabled", "err", gesture.Err())
			lastStatus = st
		}
		// Only the first failure of a streak is logged.
		if err := gesture.Err(); err != nil && lastErr == nil {
			logger.Debug("hand sample failed", "err", err)
		}
		lastErr = gesture.Err()

		g.Step(hand)
		if g.State.Mode == game.ModePlaying {
			snd.SetEngineSpeed(g.State.Speed())
		} else {
			snd.SetEngineSpeed(0)
		}

		var preview *game.Preview
		if tracker != nil {
			preview = tracker.Preview()
		}
		game.BuildFrame(frame, g.State, preview)

		fbW, fbH := window.GetFramebufferSize()
		rend.Draw(frame, fbW, fbH)
		window.SwapBuffers()

		if err := pacer.Wait(ctx); err != nil {
			break
		}
	}

	logger.Info("game closed", "score", g.State.Score, "runs", g.State.Runs+1, "fps", fmt.Sprintf("%.1f", pacer.FPS()))
	return nil
}

// openCamera returns nil when the camera is disabled or cannot be opened.
func openCamera(device, lanes int, logger *log.Logger) *camera.Tracker {
	if device == NoCamera {
		logger.Info("camera disabled")
		return nil
	}
	tracker, err := camera.Open(device, lanes, camera.DefaultConfig(), logger)
	if err != nil {
		logger.Warn("camera unavailable, playing without steering", "device", device, "err", err)
		return nil
	}
	return tracker
}

// logEvents reports game events. Lane changes are frequent and go to debug.
func logEvents(bus *game.EventBus, logger *log.Logger) {
	bus.SubscribeAll(func(e game.Event) {
		switch e.Type {
		case game.EventLaneChange:
			logger.Debug("lane change", "lane", e.Lane)
		case game.EventPass:
			logger.Debug("enemy passed", "score", e.Score)
		case game.EventCrash:
			logger.Info("crash", "lane", e.Lane, "lives", e.Lives, "score", e.Score)
		case game.EventGameOver:
			logger.Info("game over", "score", e.Score)
		case game.EventRestart:
			logger.Info("restart", "previous_score", e.Score)
		}
	})
}
