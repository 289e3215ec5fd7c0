// Package main provides the CLI entrypoint for stickui.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/logging"
	"github.com/jmylchreest/stickui/internal/note"
	"github.com/jmylchreest/stickui/internal/store"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		notesFile  string
		configPath string
	}
	logger *slog.Logger

	// registry holds the notes loaded from the notes file
	registry *store.Registry
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stickui",
	Short: "Sticky notes for Linux desktops",
	Long: `stickui manages the sticky notes shown by stickuid.

It reads and writes the same notes file as the desktop app, so notes can be
listed, created, edited, removed and rendered from scripts.

Running stickui without a subcommand launches the interactive TUI.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			setupLogger("")
			return fmt.Errorf("failed to load config: %w", err)
		}
		setupLogger(cfg.Log.Level)

		registry = store.NewRegistry(store.Options{
			Cascade:     cfg.Spawn.Cascade,
			Placeholder: cfg.Notes.Placeholder,
			Logger:      logger,
		})

		loaded, err := registry.Load(notesPath())
		if err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}
		logger.Debug("loaded notes", "path", notesPath(), "count", len(loaded))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if registry != nil {
			return registry.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.notesFile, "notes-file", "",
		"Path to notes file (default: ~/.local/share/stickui/sticky_notes.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/stickui/config.toml)")
}

// setupLogger configures the global slog logger on stderr so stdout stays
// clean for output. The CLI is quiet (warn) unless asked otherwise.
func setupLogger(configured string) {
	level := "warn"
	switch {
	case globalOpts.verbose:
		level = "debug"
	case configured != "" && configured != config.DefaultLogLevel:
		level = configured
	}

	var err error
	logger, err = logging.Setup(os.Stderr, level, isTerminal(os.Stderr))
	if err != nil {
		logger.Warn("invalid log level, using info", "error", err)
	}
}

// isTerminal reports whether f is a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// notesPath returns the notes file in use.
func notesPath() string {
	if globalOpts.notesFile != "" {
		return globalOpts.notesFile
	}
	return cfg.NotesPath()
}

// spawnOrigin returns the configured spawn point for new notes.
func spawnOrigin() note.Point {
	return note.Point{X: cfg.Spawn.X, Y: cfg.Spawn.Y}
}

// saveNotes writes the registry back to the notes file.
func saveNotes() error {
	if err := registry.Save(notesPath()); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}
	logger.Debug("saved notes", "path", notesPath(), "count", registry.Count())
	return nil
}

// errNoNotes is returned by commands that need at least one note.
var errNoNotes = errors.New("no notes")
