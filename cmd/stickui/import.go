package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/adapter/input"
)

var importOpts struct {
	dryRun bool
}

var importCmd = &cobra.Command{
	Use:   "import <source>",
	Short: "Import notes from a file or stdin",
	Long: `Import notes into the notes file.

The source is another notes file, or "-" to read standard input. Notes files
keep their text and positions; plain text on stdin becomes one note per
paragraph. Imported notes always get fresh ids.

Examples:
  stickui import ~/backup/sticky_notes.json
  cat todo.txt | stickui import -`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importOpts.dryRun, "dry-run", false,
		"Report what would be imported without saving")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	adapter, err := input.NewAdapter(args[0])
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}

	records, err := adapter.Import(ctx)
	if err != nil {
		return fmt.Errorf("failed to import notes: %w", err)
	}
	logger.Debug("read notes", "source", adapter.Name(), "count", len(records))

	if importOpts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Would import %d note(s) from %s\n", len(records), adapter.Name())
		return nil
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import")
		return nil
	}

	imported, err := registry.Import(records, spawnOrigin())
	if err != nil {
		return fmt.Errorf("failed to import notes: %w", err)
	}
	if err := saveNotes(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d note(s)\n", len(imported))
	return nil
}
