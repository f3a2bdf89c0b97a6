package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/calkins/dbridge/internal/discord"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), DBFile))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMessage(id, authorID, author, content string) discord.Message {
	return discord.Message{
		ID:        id,
		Author:    discord.Author{ID: authorID, Username: author},
		Content:   content,
		Timestamp: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordAndRecent(t *testing.T) {
	db := openTestDB(t)

	messages := []discord.Message{
		testMessage("3", "111", "alice", "yo"),
		testMessage("4", "222", "bob", "hi"),
	}
	if err := db.Record(messages, nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != "3" || entries[1].ID != "4" {
		t.Errorf("entries not chronological: %s, %s", entries[0].ID, entries[1].ID)
	}
	if entries[0].Author != "alice" || entries[0].Content != "yo" {
		t.Errorf("entry = %+v, want alice/yo", entries[0])
	}
}

func TestRecordIdempotent(t *testing.T) {
	db := openTestDB(t)

	msg := testMessage("5", "111", "alice", "once")
	for i := 0; i < 3; i++ {
		if err := db.Record([]discord.Message{msg}, nil); err != nil {
			t.Fatalf("Record() pass %d error = %v", i, err)
		}
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Count() = %d after re-recording, want 1", n)
	}
}

func TestRecordUsesLabel(t *testing.T) {
	db := openTestDB(t)

	msg := testMessage("6", "111", "alice_raw", "hello")
	label := func(m discord.Message) string { return "Alice" }
	if err := db.Record([]discord.Message{msg}, label); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := db.Recent(1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if entries[0].Author != "Alice" {
		t.Errorf("Author = %q, want labeled Alice", entries[0].Author)
	}
}

func TestRecentLimitAndOrder(t *testing.T) {
	db := openTestDB(t)

	// Snowflake ordering: "99" < "100" despite lexicographic order.
	messages := []discord.Message{
		testMessage("99", "1", "a", "older"),
		testMessage("100", "1", "a", "newer"),
		testMessage("101", "1", "a", "newest"),
	}
	if err := db.Record(messages, nil); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := db.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID != "100" || entries[1].ID != "101" {
		t.Errorf("entries = %s, %s; want 100, 101", entries[0].ID, entries[1].ID)
	}
}

func TestRecordEmptyIsNoop(t *testing.T) {
	db := openTestDB(t)
	if err := db.Record(nil, nil); err != nil {
		t.Fatalf("Record(nil) error = %v", err)
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}
