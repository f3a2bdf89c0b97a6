package main

import (
	"fmt"
	"path/filepath"

	"github.com/calkins/dbridge/internal/archive"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously seen human messages from the local archive",
	Long: `Query the local archive of human messages the bridge has seen.
Works offline; nothing is fetched from the API.

Examples:
  dbridge history
  dbridge history --limit 50 --json`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)

	db, err := archive.Open(filepath.Join(state.Dir(), archive.DBFile))
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	entries, err := db.Recent(historyLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if historyJSON {
		if entries == nil {
			entries = []archive.Entry{}
		}
		outputJSON(entries)
		return
	}

	if len(entries) == 0 {
		fmt.Println("No archived messages.")
		return
	}
	for _, e := range entries {
		fmt.Printf("[%s] %s: %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Author, e.Content)
	}
}
