// Package main is the entry point for the Midgard Motion sandbox.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/config"
	"github.com/Faultbox/midgard-motion/internal/engine/input/sdlinput"
	"github.com/Faultbox/midgard-motion/internal/engine/window"
	"github.com/Faultbox/midgard-motion/internal/game"
	"github.com/Faultbox/midgard-motion/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.DumpPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize logger
	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.Console = cfg.Logging.Console
	opts.File = cfg.Logging.LogFile
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Midgard Motion Sandbox ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("sandbox error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("sandbox closed normally")
}

func run(ctx context.Context, cfg *config.Config) error {
	var opts game.Options

	if cfg.Input.Backend == "sdl" {
		win, err := window.New(window.Config{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			Fullscreen: cfg.Window.Fullscreen,
		})
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		defer win.Close()

		src, err := sdlinput.New(game.Bindings(cfg.Input.Bindings), cfg.Input.LookGain)
		if err != nil {
			return fmt.Errorf("failed to create input: %w", err)
		}
		opts.Source = src
		opts.Cursor = sdlinput.Cursor{}
		opts.Paced = true
	}

	g, err := game.New(cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to create sandbox: %w", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("frame loop: %w", err)
	}

	last := g.Last()
	logger.Info("final state",
		zap.Int("frames", g.Frames()),
		zap.Float32("x", last.Position.X),
		zap.Float32("y", last.Position.Y),
		zap.Float32("z", last.Position.Z),
		zap.Bool("grounded", last.Character.IsGrounded),
		zap.Float32("cameraZ", last.Camera.Position.Z),
	)
	return nil
}
