package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/tui"
)

var tuiOpts struct {
	clipboard string
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI browser",
	Long: `Launch the interactive terminal user interface for browsing notes.

The TUI provides:
  - Scrollable list of notes
  - Search and filter expressions
  - Detail view with the full note text
  - Copy to clipboard support
  - Refresh when the notes file changes on disk

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       View note details
  n           New note
  d           Delete note
  s           Save notes
  c           Copy note text to clipboard
  C           Copy all notes as JSON
  alt+c       Copy all notes as YAML
  /           Search notes
  r           Reload from file
  ?           Show help
  q           Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.clipboard, "clipboard", "",
		"Clipboard command (default: wl-copy, xclip or xsel)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.RunOptions{
		Config:    cfg,
		Registry:  registry,
		NotesPath: notesPath(),
		Clipboard: tuiOpts.clipboard,
		Logger:    logger,
	})
}
