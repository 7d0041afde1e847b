package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gravitas-games/hexgrid/internal/config"
	"github.com/gravitas-games/hexgrid/internal/editor"
	"github.com/gravitas-games/hexgrid/internal/workspace"
	"github.com/gravitas-games/hexgrid/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default $HEXGRID_CONFIG)")
	loadPath := flag.String("load", "", "map file to open on start")
	script := flag.String("exec", "", "commands to run, separated by ';', instead of reading stdin")
	flag.Parse()

	logger.Init()

	// Load configuration
	if *configPath == "" {
		*configPath = os.Getenv("HEXGRID_CONFIG")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	if *configPath != "" {
		logger.Log.Debugf("Configuration loaded from %s", *configPath)
	}

	ws := workspace.Open(cfg.Workspace)
	session := editor.NewSession(cfg, ws)

	if *loadPath != "" {
		if err := session.Load(*loadPath); err != nil {
			logger.Log.Fatalf("Failed to load map: %v", err)
		}
	}

	if *script != "" {
		if err := session.Script(*script, os.Stdout); err != nil {
			logger.Log.Fatalf("Command failed: %v", err)
		}
		return
	}

	// Stop on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompt := ""
	if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		prompt = "hexgrid> "
	}

	if err := session.Run(ctx, os.Stdin, os.Stdout, prompt); err != nil && ctx.Err() == nil {
		logger.Log.Fatalf("Input error: %v", err)
	}
	if session.Dirty() {
		logger.Log.Warn("Unsaved changes discarded")
	}
}
