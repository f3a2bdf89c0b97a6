package main

import (
	"context"
	"fmt"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print recent human messages as agent context",
	Long: `Print recent human messages in a compact form suitable for pasting
into the agent's context. Does not advance any cursor.`,
	Args: cobra.NoArgs,
	Run:  runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorRead, bridge.WithoutAdvance())

	result, err := fetcher.FetchRecent(context.Background(), 0)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if len(result.Humans) == 0 {
		fmt.Println("No recent Discord messages from humans.")
		return
	}

	allow := bridge.Allowlist(cfg.Allowlist)
	fmt.Println("Recent Discord messages:")
	fmt.Println()
	for _, m := range result.Humans {
		fmt.Printf("- %s: %s\n", allow.Label(m), m.Content)
	}
}
