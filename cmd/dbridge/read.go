package main

import (
	"context"
	"fmt"
	"time"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

var readSince int

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read recent channel messages from humans",
	Long: `Read recent messages from the channel, excluding automated accounts.
Advances the read cursor to the newest message seen.

Examples:
  dbridge read
  dbridge read --since 10`,
	Args: cobra.NoArgs,
	Run:  runRead,
}

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Read only messages newer than the read cursor",
	Args:  cobra.NoArgs,
	Run:   runUnread,
}

func init() {
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(unreadCmd)
	readCmd.Flags().IntVar(&readSince, "since", 0, "Only messages from the last N minutes")
}

func runRead(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorRead)

	window := time.Duration(readSince) * time.Minute
	result, err := fetcher.FetchRecent(context.Background(), window)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if len(result.Humans) == 0 {
		fmt.Println("No new messages from humans.")
		return
	}

	printMessages("Discord Messages", result.Humans)
	recordToArchive(cfg, state, result.Humans)
}

func runUnread(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorRead)

	result, err := fetcher.Fetch(context.Background())
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if len(result.Humans) == 0 {
		fmt.Println("No new messages.")
		return
	}

	printMessages("New Discord Messages", result.Humans)
	recordToArchive(cfg, state, result.Humans)
}
