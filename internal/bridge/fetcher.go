package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/calkins/dbridge/internal/discord"
)

const (
	// PageSize is the number of messages requested per fetch.
	PageSize = 50

	// FirstRunPageSize limits the initial fetch when no cursor exists yet,
	// so a fresh install doesn't replay a whole channel.
	FirstRunPageSize = 10
)

// MessageLister is the slice of the Discord client the fetcher needs.
type MessageLister interface {
	Messages(ctx context.Context, limit int, after string) ([]discord.Message, error)
}

// Fetcher requests messages newer than a persisted cursor and partitions them
// into human and automated authors.
type Fetcher struct {
	client  MessageLister
	state   *State
	botID   string
	cursor  Cursor
	advance bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithoutAdvance leaves the cursor untouched after a fetch. Used by commands
// that peek at messages without marking them seen.
func WithoutAdvance() FetcherOption {
	return func(f *Fetcher) {
		f.advance = false
	}
}

// FetchResult is the outcome of one successful fetch.
type FetchResult struct {
	// Humans holds messages from non-automated authors, oldest first.
	Humans []discord.Message
	// Cursor is the newest message ID seen, or the previous cursor when the
	// fetch returned nothing.
	Cursor string
}

// NewFetcher creates a fetcher that tracks the given cursor. botID may be
// empty; when set, the bot's own messages are treated as automated even if
// the platform doesn't flag them.
func NewFetcher(client MessageLister, state *State, botID string, cursor Cursor, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{client: client, state: state, botID: botID, cursor: cursor, advance: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch requests messages newer than the persisted cursor. On success the
// cursor advances to the newest ID seen, even when every returned message is
// automated; otherwise the same page would be re-fetched forever. On error
// the cursor is left untouched so the next scheduled run retries the window.
func (f *Fetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	after := f.state.ReadCursor(f.cursor)
	limit := PageSize
	if after == "" {
		limit = FirstRunPageSize
	}

	messages, err := f.client.Messages(ctx, limit, after)
	if err != nil {
		return nil, err
	}
	return f.finish(messages, after, 0)
}

// FetchRecent ignores the cursor and fetches the latest page, optionally
// restricted to messages newer than the window. The cursor still advances.
func (f *Fetcher) FetchRecent(ctx context.Context, window time.Duration) (*FetchResult, error) {
	messages, err := f.client.Messages(ctx, PageSize, "")
	if err != nil {
		return nil, err
	}
	return f.finish(messages, f.state.ReadCursor(f.cursor), window)
}

// finish advances the cursor and filters to chronological human messages.
// A non-zero window drops messages older than now-window before filtering.
func (f *Fetcher) finish(messages []discord.Message, previous string, window time.Duration) (*FetchResult, error) {
	result := &FetchResult{Cursor: previous}
	if len(messages) == 0 {
		return result, nil
	}

	// The API returns newest-first, but compute the maximum rather than
	// trusting element order.
	newest := messages[0].ID
	for _, m := range messages[1:] {
		if CompareIDs(m.ID, newest) > 0 {
			newest = m.ID
		}
	}
	if f.advance {
		if err := f.state.WriteCursor(f.cursor, newest); err != nil {
			return nil, fmt.Errorf("persisting cursor: %w", err)
		}
	}
	if previous == "" || CompareIDs(newest, previous) > 0 {
		result.Cursor = newest
	}

	var cutoff time.Time
	if window > 0 {
		cutoff = time.Now().Add(-window)
	}

	// Newest-first in, oldest-first out.
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if f.automated(m.Author) {
			continue
		}
		if window > 0 && m.Timestamp.Before(cutoff) {
			continue
		}
		result.Humans = append(result.Humans, m)
	}
	return result, nil
}

// automated reports whether an author should be excluded from human-facing
// output.
func (f *Fetcher) automated(a discord.Author) bool {
	return a.Bot || (f.botID != "" && a.ID == f.botID)
}
