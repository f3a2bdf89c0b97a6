// Package main provides the dbridge CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/calkins/dbridge/internal/config"
	"github.com/calkins/dbridge/internal/discord"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dbridge",
	Short: "Bridge a Discord channel to a terminal coding agent",
	Long: `dbridge bridges a Discord channel with a coding agent running in a
terminal: it polls the channel for new human messages, raises a desktop
notification, and injects the text into the agent's session; the agent posts
updates back through the rate-limited send command.

State (last-seen cursors, the send marker, the message log) lives in small
files under the state directory, so every command runs to completion and
exits; scheduling is left to launchd/cron.

Configuration comes from the environment or a .env file:
  DISCORD_BOT_TOKEN     bot token (required)
  DISCORD_CHANNEL_ID    channel to monitor (required)
  DISCORD_BOT_ID        the bot's own user ID, for filtering its messages
  DISCORD_ALLOWED_USERS comma-separated id:label pairs (optional)
  DISCORD_RATE_LIMIT    seconds between sends (default 300)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for DISCORD_BOT_TOKEN and friends)
	_ = godotenv.Load()

	rootCmd.Version = Version
}

// mustConfig loads configuration, exits on error.
func mustConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// mustState opens the state directory, exits on error.
func mustState(cfg *config.Config) *bridge.State {
	state, err := bridge.NewState(cfg.StateDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return state
}

// newClient builds the Discord client for the configured channel.
func newClient(cfg *config.Config) *discord.Client {
	return discord.NewClient(cfg.Token, cfg.ChannelID)
}
