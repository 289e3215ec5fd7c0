package tui

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// copyText copies text to the system clipboard.
func copyText(text, command string) error {
	if command == "" {
		command = detectClipboardCommand(exec.LookPath)
	}
	if command == "" {
		return fmt.Errorf("no clipboard command available")
	}

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	return c.Run()
}

// detectClipboardCommand returns the first available clipboard command:
// wl-copy on Wayland, then xclip or xsel on X11.
func detectClipboardCommand(lookPath func(string) (string, error)) string {
	candidates := []struct {
		bin, command string
	}{
		{"wl-copy", "wl-copy"},
		{"xclip", "xclip -selection clipboard"},
		{"xsel", "xsel --clipboard --input"},
	}
	for _, c := range candidates {
		if _, err := lookPath(c.bin); err == nil {
			return c.command
		}
	}
	return ""
}
