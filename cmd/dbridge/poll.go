package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/calkins/dbridge/internal/inject"
	"github.com/calkins/dbridge/internal/notify"
	"github.com/spf13/cobra"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Fetch new messages and surface them to the agent's terminal",
	Long: `Fetch messages newer than the read cursor and, for any from humans:
raise a desktop notification, inject the newest one into the agent's terminal
session, and append the whole batch to the local message log.

This is the command the external scheduler runs on a fixed interval.
Notification and injection are side effects: their failures are logged but
the poll still succeeds. A transport or auth failure aborts without touching
the cursor, so the next scheduled run retries the same window.`,
	Args: cobra.NoArgs,
	Run:  runPoll,
}

func init() {
	rootCmd.AddCommand(pollCmd)
}

func runPoll(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorRead)

	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		exitWithError(exitCodeFor(err), "fetch failed: %v", err)
	}

	if len(result.Humans) == 0 {
		return // Nothing to do
	}

	allow := bridge.Allowlist(cfg.Allowlist)

	// The whole batch goes to the log, the flag file, and the archive.
	lines := make([]string, 0, len(result.Humans))
	flagLines := make([]string, 0, len(result.Humans))
	for _, m := range result.Humans {
		label := allow.Label(m)
		lines = append(lines, bridge.FormatLogLine(m, label))
		flagLines = append(flagLines, bridge.FormatInjection(label, m.Content))
	}
	if err := state.AppendLog(lines); err != nil {
		warn("could not append message log: %v", err)
	}
	if err := state.WriteFlag(strings.Join(flagLines, "\n")); err != nil {
		warn("could not write flag file: %v", err)
	}
	recordToArchive(cfg, state, result.Humans)

	// Only the most recent message gets notified and injected.
	latest := result.Humans[len(result.Humans)-1]
	label := allow.Label(latest)
	preview := fmt.Sprintf("%s: %s", label, truncateString(latest.Content, PreviewMaxLen))

	if err := notify.Send("Discord", preview); err != nil {
		warn("notification failed: %v", err)
	}
	if err := inject.Inject(bridge.FormatInjection(label, latest.Content)); err != nil {
		warn("injection failed: %v", err)
	}

	fmt.Printf("%d new message(s), newest from %s\n", len(result.Humans), label)
}
