// Package main is the entry point for the stickuid desktop app.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/daemon"
	"github.com/jmylchreest/stickui/internal/logging"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	configPath := flag.String("config", "", "Path to config file (default: ~/.config/stickui/config.toml)")
	notesFile := flag.String("notes-file", "", "Path to notes file (default: ~/.local/share/stickui/sticky_notes.json)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Println("stickuid version", version)
		os.Exit(0)
	}

	logger, _ := logging.Setup(os.Stderr, "info", false)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	if err := logging.SetLevel(level); err != nil {
		logger.Warn("invalid log level, using info", "error", err)
	}

	notesPath := *notesFile
	if notesPath == "" {
		notesPath = cfg.NotesPath()
	}

	logger.Info("starting stickuid", "version", version)

	app := daemon.New(daemon.Options{
		Config:     cfg,
		ConfigPath: *configPath,
		NotesPath:  notesPath,
		Logger:     logger,
	})

	// GTK parses its own flags; ours are already consumed.
	status := app.Run(append([]string{os.Args[0]}, flag.Args()...))
	if status != 0 {
		os.Exit(status)
	}
	logger.Info("stickuid stopped")
}
