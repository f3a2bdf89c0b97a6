package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

var replyForce bool

var replyCmd = &cobra.Command{
	Use:   "reply <message-id> <text>...",
	Short: "Reply to a specific message (rate limited)",
	Long: `Post a reply referencing an existing message. Subject to the same
rate limit as send; --force bypasses it.

Example:
  dbridge reply 1312345678901234567 "done, deployed to staging"`,
	Args: cobra.MinimumNArgs(2),
	Run:  runReply,
}

func init() {
	rootCmd.AddCommand(replyCmd)
	replyCmd.Flags().BoolVar(&replyForce, "force", false, "Bypass the send rate limit")
}

func runReply(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	gate := bridge.NewGate(state, cfg.RateLimit)

	messageID := args[0]
	content := strings.Join(args[1:], " ")

	if err := gate.Check(replyForce); err != nil {
		reportRateLimited(err)
		return
	}

	if _, err := newClient(cfg).Reply(context.Background(), messageID, content); err != nil {
		exitWithError(ExitError, "reply failed: %v", err)
	}
	if err := gate.MarkSent(); err != nil {
		warn("could not record send timestamp: %v", err)
	}
	fmt.Printf("Replied to message %s\n", messageID)
}
