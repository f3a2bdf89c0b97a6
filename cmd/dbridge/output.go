package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/calkins/dbridge/internal/archive"
	"github.com/calkins/dbridge/internal/bridge"
	"github.com/calkins/dbridge/internal/config"
	"github.com/calkins/dbridge/internal/discord"
)

// Content truncation lengths by context.
const (
	DisplayContentMaxLen = 500 // Message content in CLI listings
	PreviewMaxLen        = 100 // Desktop notification preview
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError writes an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(code)
}

// warn logs a non-fatal problem to stderr.
func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// formatMessage renders one message for CLI display.
func formatMessage(m discord.Message) string {
	prefix := "[USER]"
	if m.Author.Bot {
		prefix = "[BOT]"
	}
	return fmt.Sprintf("%s [%s] %s: %s",
		prefix,
		m.Timestamp.Format("2006-01-02 15:04"),
		m.Author.DisplayName(),
		truncateString(m.Content, DisplayContentMaxLen))
}

// printMessages prints a bannered message list, oldest first.
func printMessages(header string, messages []discord.Message) {
	banner := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n%s\n%s\n\n", banner, header, banner)
	for _, m := range messages {
		fmt.Println(formatMessage(m))
		fmt.Println()
	}
}

// recordToArchive best-effort archives human messages; failures only warn.
func recordToArchive(cfg *config.Config, state *bridge.State, messages []discord.Message) {
	if len(messages) == 0 {
		return
	}
	db, err := archive.Open(filepath.Join(state.Dir(), archive.DBFile))
	if err != nil {
		warn("could not open archive: %v", err)
		return
	}
	defer db.Close()

	allow := bridge.Allowlist(cfg.Allowlist)
	if err := db.Record(messages, allow.Label); err != nil {
		warn("could not archive messages: %v", err)
	}
}

// exitCodeFor maps an error to a process exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, config.ErrMissingToken) || errors.Is(err, config.ErrMissingChannel) {
		return ExitConfigError
	}
	return ExitError
}
