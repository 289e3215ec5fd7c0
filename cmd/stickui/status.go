package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/stickui/internal/model"
)

// tooltipNotes caps the titles listed in the status tooltip.
const tooltipNotes = 10

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Output Waybar-compatible JSON status",
	Long: `Output the note count in Waybar's custom module JSON format.

This is designed to be used with Waybar's custom module:

  "custom/notes": {
    "exec": "stickui status",
    "interval": 5,
    "return-type": "json",
    "on-click": "stickui tui"
  }

The output includes:
  - text: Number of notes
  - alt/class: "notes" or "empty"
  - tooltip: The first lines of the notes`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return outputStatus(cmd.OutOrStdout(), generateStatus(registry.Records()))
}

// generateStatus builds the Waybar status for notes.
func generateStatus(notes []model.Note) WaybarStatus {
	if len(notes) == 0 {
		return WaybarStatus{Text: "", Alt: "empty", Class: "empty"}
	}

	var tooltip strings.Builder
	fmt.Fprintf(&tooltip, "%d note(s)", len(notes))
	for i := range notes {
		if i == tooltipNotes {
			fmt.Fprintf(&tooltip, "\n… and %d more", len(notes)-tooltipNotes)
			break
		}
		fmt.Fprintf(&tooltip, "\n• %s", notes[i].Title())
	}

	return WaybarStatus{
		Text:    fmt.Sprintf("%d", len(notes)),
		Alt:     "notes",
		Tooltip: tooltip.String(),
		Class:   "notes",
	}
}

// outputStatus writes status as a single JSON line.
func outputStatus(w io.Writer, status WaybarStatus) error {
	return json.NewEncoder(w).Encode(status)
}
