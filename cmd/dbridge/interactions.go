package main

import (
	"context"
	"fmt"
	"time"

	"github.com/calkins/dbridge/internal/bridge"
	"github.com/calkins/dbridge/internal/discord"
	"github.com/spf13/cobra"
)

var (
	interactionsSince  int
	interactionsJSON   bool
	interactionsNoMark bool
)

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "Check pending messages from allowlisted users",
	Long: `List human messages from allowlisted users that arrived since the
last interactions check. With an empty allowlist every human counts.

The interaction cursor is tracked separately from the read cursor, so read
and interactions don't steal messages from each other. --no-mark peeks
without advancing the cursor.

Examples:
  dbridge interactions
  dbridge interactions --since 120 --json`,
	Args: cobra.NoArgs,
	Run:  runInteractions,
}

func init() {
	rootCmd.AddCommand(interactionsCmd)
	interactionsCmd.Flags().IntVar(&interactionsSince, "since", 60, "Fallback window in minutes when no cursor exists")
	interactionsCmd.Flags().BoolVar(&interactionsJSON, "json", false, "Output JSON")
	interactionsCmd.Flags().BoolVar(&interactionsNoMark, "no-mark", false, "Do not advance the interaction cursor")
}

// Interaction is the JSON shape for one pending message.
type Interaction struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	AuthorID  string `json:"author_id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func runInteractions(cmd *cobra.Command, args []string) {
	cfg := mustConfig()
	state := mustState(cfg)

	var opts []bridge.FetcherOption
	if interactionsNoMark {
		opts = append(opts, bridge.WithoutAdvance())
	}
	fetcher := bridge.NewFetcher(newClient(cfg), state, cfg.BotID, bridge.CursorInteraction, opts...)

	// With a cursor, fetch after it; otherwise fall back to a time window.
	var result *bridge.FetchResult
	var err error
	if state.ReadCursor(bridge.CursorInteraction) != "" {
		result, err = fetcher.Fetch(context.Background())
	} else {
		result, err = fetcher.FetchRecent(context.Background(), time.Duration(interactionsSince)*time.Minute)
	}
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	allow := bridge.Allowlist(cfg.Allowlist)
	pending := allow.Filter(result.Humans)

	if len(pending) == 0 {
		if interactionsJSON {
			outputJSON([]Interaction{})
		} else {
			fmt.Println("No pending interactions from allowed users.")
		}
		return
	}

	recordToArchive(cfg, state, pending)

	if interactionsJSON {
		outputJSON(toInteractions(pending, allow))
		return
	}

	printMessages(fmt.Sprintf("Pending Interactions (%d messages)", len(pending)), pending)
}

func toInteractions(messages []discord.Message, allow bridge.Allowlist) []Interaction {
	out := make([]Interaction, 0, len(messages))
	for _, m := range messages {
		out = append(out, Interaction{
			ID:        m.ID,
			Author:    allow.Label(m),
			AuthorID:  m.Author.ID,
			Content:   m.Content,
			Timestamp: m.Timestamp.Format("2006-01-02 15:04"),
		})
	}
	return out
}
