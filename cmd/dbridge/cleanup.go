package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [count]",
	Short: "Delete the bot's most recent messages",
	Long: `Delete the bot's last count messages from the channel (default 5).
Requires DISCORD_BOT_ID to identify which messages belong to the bot.

Example:
  dbridge cleanup 10`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCleanup,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <message-id>",
	Short: "Delete a specific message",
	Args:  cobra.ExactArgs(1),
	Run:   runDelete,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runCleanup(cmd *cobra.Command, args []string) {
	count := 5
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			exitWithError(ExitError, "invalid count %q", args[0])
		}
		count = n
	}

	cfg := mustConfig()
	if cfg.BotID == "" {
		exitWithError(ExitConfigError, "DISCORD_BOT_ID not set, cannot identify bot messages")
	}

	ctx := context.Background()
	client := newClient(cfg)
	messages, err := client.Messages(ctx, bridge.PageSize, "")
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	deleted := 0
	for _, m := range messages {
		if deleted >= count {
			break
		}
		if m.Author.ID != cfg.BotID {
			continue
		}
		if err := client.Delete(ctx, m.ID); err != nil {
			warn("could not delete message %s: %v", m.ID, err)
			continue
		}
		deleted++
	}

	if deleted == 0 {
		fmt.Println("No bot messages to delete")
		return
	}
	fmt.Printf("Deleted %d bot message(s)\n", deleted)
}

func runDelete(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	if err := newClient(cfg).Delete(context.Background(), args[0]); err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	fmt.Printf("Message %s deleted\n", args[0])
}
