package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/core"
	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/note"
)

var addOpts struct {
	x, y  int
	stdin bool
}

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Create a note",
	Long: `Create a note and save it to the notes file.

The note text comes from the arguments, or from standard input with --stdin.
Without either, the note starts with the configured placeholder text. New
notes cascade from the configured spawn point unless --x and --y are given.

The new note's id is printed on success.

Examples:
  stickui add "buy milk"
  stickui add --x 1200 --y 40 "ring Sam"
  date | stickui add --stdin`,
	RunE: runAdd,
}

var setOpts struct {
	text  string
	x, y  int
	stdin bool
}

var setCmd = &cobra.Command{
	Use:   "set <ref>",
	Short: "Edit a note's text or position",
	Long: `Edit a note in place and save the notes file.

The reference is a note id ("100004" or "#100004"), a 1-based index ("@2")
or a dmenu line.

Examples:
  stickui set 100004 --text "buy oat milk"
  stickui set @1 --x 40 --y 40
  echo "new text" | stickui set 100004 --stdin`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

var rmOpts struct {
	all bool
}

var rmCmd = &cobra.Command{
	Use:     "rm <ref>...",
	Aliases: []string{"delete", "close"},
	Short:   "Remove notes",
	Long: `Remove notes from the notes file.

Removing a note is the same as closing its window in stickuid.

Examples:
  stickui rm 100004
  stickui rm @1 @2
  stickui rm --all`,
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(addCmd, setCmd, rmCmd)

	addCmd.Flags().IntVar(&addOpts.x, "x", 0, "Left edge of the note in pixels")
	addCmd.Flags().IntVar(&addOpts.y, "y", 0, "Top edge of the note in pixels")
	addCmd.Flags().BoolVar(&addOpts.stdin, "stdin", false, "Read the note text from standard input")

	setCmd.Flags().StringVar(&setOpts.text, "text", "", "New note text")
	setCmd.Flags().IntVar(&setOpts.x, "x", 0, "New left edge in pixels")
	setCmd.Flags().IntVar(&setOpts.y, "y", 0, "New top edge in pixels")
	setCmd.Flags().BoolVar(&setOpts.stdin, "stdin", false, "Read the new text from standard input")
	setCmd.MarkFlagsMutuallyExclusive("text", "stdin")

	rmCmd.Flags().BoolVar(&rmOpts.all, "all", false, "Remove every note")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text, hasText, err := noteText(args, addOpts.stdin, os.Stdin)
	if err != nil {
		return err
	}

	n, err := registry.Create(spawnOrigin())
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	if hasText {
		n.SetText(text)
	}
	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		pos := n.Position()
		if cmd.Flags().Changed("x") {
			pos.X = addOpts.x
		}
		if cmd.Flags().Changed("y") {
			pos.Y = addOpts.y
		}
		n.MoveTo(pos)
	}

	if err := saveNotes(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), n.ID())
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	n, err := resolveNote(args[0])
	if err != nil {
		return err
	}

	changed := false
	switch {
	case setOpts.stdin:
		text, _, err := noteText(nil, true, os.Stdin)
		if err != nil {
			return err
		}
		n.SetText(text)
		changed = true
	case cmd.Flags().Changed("text"):
		n.SetText(setOpts.text)
		changed = true
	}

	if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
		pos := n.Position()
		if cmd.Flags().Changed("x") {
			pos.X = setOpts.x
		}
		if cmd.Flags().Changed("y") {
			pos.Y = setOpts.y
		}
		n.MoveTo(pos)
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; use --text, --stdin, --x or --y")
	}
	return saveNotes()
}

func runRm(cmd *cobra.Command, args []string) error {
	var targets []*note.Note
	switch {
	case rmOpts.all:
		targets = registry.Notes()
	case len(args) == 0:
		return fmt.Errorf("no notes given; pass references or --all")
	default:
		for _, ref := range args {
			n, err := resolveNote(ref)
			if err != nil {
				return err
			}
			targets = append(targets, n)
		}
	}

	for _, n := range targets {
		n.Close()
		logger.Debug("removed note", "id", n.ID())
	}
	if err := saveNotes(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d note(s)\n", len(targets))
	return nil
}

// resolveNote finds the live note a reference points at. Positions are
// taken from the same snapshot as the records so "@N" stays exact when ids repeat.
func resolveNote(ref string) (*note.Note, error) {
	notes := registry.Notes()
	records := make([]model.Note, len(notes))
	for i, n := range notes {
		records[i] = n.Record()
	}
	i, err := core.ResolveIndex(records, parseSelection(ref))
	if err != nil {
		return nil, err
	}
	return notes[i], nil
}

// noteText returns the text for a note from args or, with fromStdin, r.
// hasText is false when neither supplied anything.
func noteText(args []string, fromStdin bool, r io.Reader) (text string, hasText bool, err error) {
	if fromStdin {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), true, nil
	}
	if len(args) == 0 {
		return "", false, nil
	}
	return strings.Join(args, " "), true, nil
}
