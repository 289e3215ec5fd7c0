package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// parseSelection extracts the note reference from a launcher selection.
// Input could be a full dmenu line: "100004 | 100,100 | buy milk"
// or just an id or @index.
func parseSelection(selection string) string {
	selection = strings.TrimSpace(selection)
	if !strings.Contains(selection, "|") {
		return selection
	}
	first, _, _ := strings.Cut(selection, "|")
	return strings.TrimSpace(first)
}

// readSelection reads the first line of r.
func readSelection(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read selection: %w", err)
	}
	return "", fmt.Errorf("empty selection")
}
