package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

var sendForce bool

var sendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Send a message to the channel (rate limited)",
	Long: `Send a message to the channel. At most one send per rate-limit
interval (default 300s); --force bypasses the limit.

Examples:
  dbridge send "build finished, all tests green"
  dbridge send "urgent: need input" --force`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().BoolVar(&sendForce, "force", false, "Bypass the send rate limit")
}

func runSend(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	gate := bridge.NewGate(state, cfg.RateLimit)

	content := strings.Join(args, " ")
	if err := gate.Check(sendForce); err != nil {
		reportRateLimited(err)
		return
	}

	msg, err := newClient(cfg).Send(context.Background(), content)
	if err != nil {
		exitWithError(ExitError, "send failed: %v", err)
	}
	if err := gate.MarkSent(); err != nil {
		warn("could not record send timestamp: %v", err)
	}
	fmt.Printf("Message sent (id %s)\n", msg.ID)
}

// reportRateLimited prints the refusal with the remaining wait. A rate-limited
// send is a refusal, not a failure: the process still exits 0.
func reportRateLimited(err error) {
	var rateErr *bridge.RateLimitedError
	if errors.As(err, &rateErr) {
		fmt.Fprintf(os.Stderr, "RATE LIMITED: wait %ds before sending another message\n", int(rateErr.Remaining.Seconds()))
		fmt.Fprintln(os.Stderr, "   (use --force to bypass)")
		return
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
}
