// Package archive keeps a local SQLite record of every human message the
// bridge has seen, so past traffic can be queried without hitting the API.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calkins/dbridge/internal/discord"
	_ "modernc.org/sqlite"
)

// DBFile is the archive file name inside the state directory.
const DBFile = "archive.db"

// DB wraps the SQLite archive.
type DB struct {
	db *sql.DB
}

// Entry is one archived message.
type Entry struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	SeenAt    time.Time `json:"seen_at"`
}

// Open opens or creates the archive at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the archive.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			author_id TEXT NOT NULL,
			author TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			seen_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_messages_author ON messages(author_id);
	`
	_, err := db.Exec(schema)
	return err
}

// Record inserts messages into the archive. Re-archiving a message already
// present is a no-op, so overlapping fetch windows stay idempotent.
func (d *DB) Record(messages []discord.Message, label func(discord.Message) string) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO messages (id, author_id, author, content, created_at, seen_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, m := range messages {
		name := m.Author.DisplayName()
		if label != nil {
			name = label(m)
		}
		if _, err := stmt.Exec(m.ID, m.Author.ID, name, m.Content,
			m.Timestamp.UTC().Format(time.RFC3339), now); err != nil {
			return fmt.Errorf("inserting message %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Recent returns the most recent limit entries in chronological order.
func (d *DB) Recent(limit int) ([]Entry, error) {
	rows, err := d.db.Query(`
		SELECT id, author_id, author, content, created_at, seen_at
		FROM messages
		ORDER BY length(id) DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, seen string
		if err := rows.Scan(&e.ID, &e.AuthorID, &e.Author, &e.Content, &created, &seen); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		e.SeenAt, _ = time.Parse(time.RFC3339, seen)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	// Query returns newest-first; flip to chronological.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Count returns the number of archived messages.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting messages: %w", err)
	}
	return n, nil
}
