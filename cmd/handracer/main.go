package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"handracer/internal/desktop"
	"handracer/internal/game"
)

var version = "dev"

type CLI struct {
	Camera   int              `default:"0" env:"HANDRACER_CAMERA" help:"Camera device index (-1 to play without a camera)"`
	Seed     uint64           `default:"0" env:"HANDRACER_SEED" help:"RNG seed (0 for random)"`
	Stride   int              `default:"2" help:"Sample the camera every N frames"`
	Mute     bool             `help:"Disable sound"`
	LogLevel string           `default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	Version  kong.VersionFlag `help:"Print version and exit"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handracer"),
		kong.Description("Steer a car between three lanes by moving your hand in front of the webcam."),
		kong.Vars{"version": version},
	)

	level, err := log.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "handracer",
		Level:           level,
	})

	seed := cli.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	cfg := game.DefaultConfig()
	cfg.Seed = seed
	cfg.CameraStride = cli.Stride

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = desktop.Run(sigCtx, desktop.Options{
		Camera: cli.Camera,
		Mute:   cli.Mute,
		Game:   cfg,
	}, logger)
	ctx.FatalIfErrorf(err)
}
