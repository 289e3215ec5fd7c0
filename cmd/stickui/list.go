package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/adapter/output"
	"github.com/jmylchreest/stickui/internal/core"
	"github.com/jmylchreest/stickui/internal/model"
)

var listOpts struct {
	// Filter options
	filter string
	search string
	limit  int

	// Sort options
	sortBy    string
	sortOrder string

	// Output options
	format   string
	field    string
	template string
}

var listCmd = &cobra.Command{
	Use:     "list [ref]",
	Aliases: []string{"ls", "get"},
	Short:   "List notes",
	Long: `List the notes in the notes file.

Without arguments, lists every note. With a reference, outputs that note:
"@N" is a 1-based index into the listed order, "N" or "#N" is a note id, and
a full dmenu line selects the note whose id it starts with.

Examples:
  # List all notes
  stickui list

  # Notes mentioning milk, newest first
  stickui list --search milk --order desc

  # Filter expressions
  stickui list --filter 'x>1000,text~todo'

  # Pick a note with a launcher and print its text
  stickui list -f dmenu | fuzzel -d | stickui list --field text -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listOpts.filter, "filter", "",
		"Filter expression (e.g. 'text~milk,x>500')")
	listCmd.Flags().StringVarP(&listOpts.search, "search", "s", "",
		"Search in note text")
	listCmd.Flags().IntVarP(&listOpts.limit, "limit", "n", 0,
		"Maximum number of notes to show (0=unlimited)")

	listCmd.Flags().StringVar(&listOpts.sortBy, "sort", "file",
		"Sort by field (file, id, text, position)")
	listCmd.Flags().StringVar(&listOpts.sortOrder, "order", "asc",
		"Sort order (asc, desc)")

	listCmd.Flags().StringVarP(&listOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, ids, dmenu)")
	listCmd.Flags().StringVar(&listOpts.field, "field", "",
		"Output a single field (id, text, title, x, y, position, all)")
	listCmd.Flags().StringVar(&listOpts.template, "template", "",
		"Custom Go template for plain and dmenu output")
}

func runList(cmd *cobra.Command, args []string) error {
	notes, err := selectNotes(registry.Records())
	if err != nil {
		return err
	}

	if len(args) > 0 {
		ref := args[0]
		if ref == "-" {
			ref, err = readSelection(os.Stdin)
			if err != nil {
				return err
			}
		}
		n, err := core.Resolve(notes, parseSelection(ref))
		if err != nil {
			return err
		}
		if listOpts.field != "" {
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatField(n, listOpts.field))
			return nil
		}
		return printNotes(cmd, []model.Note{*n}, "json")
	}

	if listOpts.field != "" {
		for i := range notes {
			fmt.Fprintln(cmd.OutOrStdout(), output.FormatField(&notes[i], listOpts.field))
		}
		return nil
	}

	if len(notes) == 0 {
		logger.Debug("no notes to output")
		return nil
	}
	return printNotes(cmd, notes, "")
}

// selectNotes applies the filter, search, sort and limit flags.
func selectNotes(notes []model.Note) ([]model.Note, error) {
	if listOpts.filter != "" {
		expr, err := core.ParseFilter(listOpts.filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter: %w", err)
		}
		notes = core.FilterWithExpr(notes, expr)
	}
	if listOpts.search != "" {
		notes = core.Search(notes, listOpts.search)
	}

	field, err := core.ParseSortField(listOpts.sortBy)
	if err != nil {
		return nil, err
	}
	order, err := core.ParseSortOrder(listOpts.sortOrder)
	if err != nil {
		return nil, err
	}
	core.Sort(notes, core.SortOptions{Field: field, Order: order})

	return core.Filter(notes, core.FilterOptions{Limit: listOpts.limit}), nil
}

// printNotes writes notes in the requested format. fallback replaces the
// default format when --format was not given.
func printNotes(cmd *cobra.Command, notes []model.Note, fallback string) error {
	name := listOpts.format
	if fallback != "" && !cmd.Flags().Changed("format") {
		name = fallback
	}
	format, err := output.ParseFormat(strings.ToLower(name))
	if err != nil {
		return err
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = listOpts.template
	f, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}
	return f.Format(cmd.OutOrStdout(), notes)
}
