package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/config"
	"github.com/jmylchreest/stickui/internal/model"
	"github.com/jmylchreest/stickui/internal/theme"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the notes file and configuration in use",
	RunE:  runInfo,
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List note palettes and CSS themes",
	Long: `List the note palettes and the CSS themes available to stickuid.

Palettes colour the note body. CSS themes style the widgets and can be
overridden by files in ~/.config/stickui/themes/.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(infoCmd, themesCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	path := notesPath()

	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	fmt.Fprintf(w, "Config:      %s\n", configPath)
	fmt.Fprintf(w, "Notes file:  %s\n", path)

	stat, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(w, "             (not created yet)")
	case err != nil:
		return fmt.Errorf("failed to stat notes file: %w", err)
	default:
		fmt.Fprintf(w, "Size:        %s\n", humanize.Bytes(uint64(stat.Size())))
		fmt.Fprintf(w, "Modified:    %s\n", humanize.Time(stat.ModTime()))
	}

	printNoteSummary(w, registry.Records())
	fmt.Fprintf(w, "Theme:       %s\n", cfg.Theme.Name)
	fmt.Fprintf(w, "Decoration:  %s\n", cfg.Decoration.Mode)
	return nil
}

// printNoteSummary writes the note count and id range.
func printNoteSummary(w io.Writer, notes []model.Note) {
	fmt.Fprintf(w, "Notes:       %s\n", humanize.Comma(int64(len(notes))))
	if len(notes) == 0 {
		return
	}
	ids := make([]int, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	fmt.Fprintf(w, "Ids:         %d-%d\n", slices.Min(ids), slices.Max(ids))
}

func runThemes(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Palettes:")
	for _, name := range theme.Names() {
		pal, err := theme.Lookup(name)
		if err != nil {
			return err
		}
		marker := " "
		if name == theme.Resolve(cfg.Theme.Name, false) {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-8s %s -> %s  text %s\n", marker, name,
			theme.Hex(pal.Top), theme.Hex(pal.Bottom), theme.Hex(pal.Text))
	}
	fmt.Fprintf(w, "   %-8s follows the desktop colour scheme\n", theme.PaletteAuto)

	themes, err := theme.List()
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}
	fmt.Fprintln(w, "CSS themes:")
	for _, t := range themes {
		var source string
		switch {
		case t.Bundled && t.Path != "":
			source = "user override: " + t.Path
		case t.Bundled:
			source = "bundled"
		default:
			source = t.Path
		}
		fmt.Fprintf(w, "   %-8s %s\n", t.Name, source)
	}
	return nil
}
