package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

// DefaultWatchInterval is the polling cadence when none is given.
const DefaultWatchInterval = 30 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [interval-seconds]",
	Short: "Poll for new messages continuously",
	Long: `Poll the channel for new human messages on a fixed interval
(default 30s) until interrupted. Each hit is printed and the read cursor
advances; a transport error fails only that round.

Example:
  dbridge watch 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	interval := DefaultWatchInterval
	if len(args) == 1 {
		secs, err := strconv.Atoi(args[0])
		if err != nil || secs < 1 {
			exitWithError(ExitError, "invalid interval %q", args[0])
		}
		interval = time.Duration(secs) * time.Second
	}

	cfg := mustConfig()
	state := mustState(cfg)
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorRead)

	fmt.Printf("Watching for new messages (every %s)...\n", interval)
	fmt.Println("Press Ctrl+C to stop.")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		result, err := fetcher.Fetch(context.Background())
		if err != nil {
			warn("fetch failed: %v", err)
		} else if len(result.Humans) > 0 {
			printMessages("New Discord Messages", result.Humans)
			recordToArchive(cfg, state, result.Humans)
			fmt.Printf("[%s] Waiting for new messages...\n", time.Now().Format("15:04:05"))
		}
		<-ticker.C
	}
}
