package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List allowlisted interactive users",
	Args:  cobra.NoArgs,
	Run:   runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command, args []string) {
	cfg := mustConfig()

	if len(cfg.Allowlist) == 0 {
		fmt.Println("No allowlist configured - all users can interact.")
		fmt.Println("Set DISCORD_ALLOWED_USERS to restrict access.")
		return
	}

	ids := make([]string, 0, len(cfg.Allowlist))
	for id := range cfg.Allowlist {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Println("Allowed interactive users:")
	for _, id := range ids {
		fmt.Printf("  %s (ID: %s)\n", cfg.Allowlist[id], id)
	}
}
