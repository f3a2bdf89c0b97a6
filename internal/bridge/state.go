// Package bridge implements the polling core: cursor tracking over channel
// messages, partitioning automated from human authors, the outbound send gate,
// and the small on-disk state the process-per-poll model relies on.
package bridge

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// State file names inside the state directory.
const (
	LastReadFile        = "last_read"
	LastInteractionFile = "last_interaction"
	LastSendFile        = "last_send"
	FlagFile            = "new_message.flag"
	LogFile             = "messages.log"
)

// Cursor identifies one of the persisted last-seen markers.
type Cursor string

// The two cursors the bridge tracks: what the read/poll path has seen, and
// what the interactions path has seen.
const (
	CursorRead        Cursor = LastReadFile
	CursorInteraction Cursor = LastInteractionFile
)

// State is the collection of small files under the state directory. All
// writes go through temp-file + rename so a crash mid-write cannot leave a
// truncated cursor or marker behind.
type State struct {
	dir string
}

// NewState creates the state directory if needed and returns a State.
func NewState(dir string) (*State, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &State{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *State) Dir() string {
	return s.dir
}

func (s *State) path(name string) string {
	return filepath.Join(s.dir, name)
}

// ReadCursor returns the persisted cursor value, or "" if none exists.
func (s *State) ReadCursor(c Cursor) string {
	data, err := os.ReadFile(s.path(string(c)))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// WriteCursor persists a cursor value. The cursor never moves backward: a
// value smaller than the current one is ignored.
func (s *State) WriteCursor(c Cursor, id string) error {
	if id == "" {
		return nil
	}
	if current := s.ReadCursor(c); current != "" && CompareIDs(id, current) < 0 {
		return nil
	}
	return s.writeAtomic(string(c), []byte(id+"\n"))
}

// LastSend returns the timestamp of the last successful outbound send.
// The second return is false when no send has been recorded.
func (s *State) LastSend() (time.Time, bool) {
	data, err := os.ReadFile(s.path(LastSendFile))
	if err != nil {
		return time.Time{}, false
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, int64(secs*float64(time.Second))), true
}

// WriteLastSend records the timestamp of a successful outbound send.
func (s *State) WriteLastSend(t time.Time) error {
	value := strconv.FormatFloat(float64(t.UnixNano())/float64(time.Second), 'f', 6, 64)
	return s.writeAtomic(LastSendFile, []byte(value+"\n"))
}

// writeAtomic writes data to name via a temp file and rename.
func (s *State) writeAtomic(name string, data []byte) error {
	tmpFile, err := os.CreateTemp(s.dir, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("syncing %s: %w", name, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		return fmt.Errorf("renaming %s: %w", name, err)
	}
	success = true
	return nil
}

// CompareIDs orders two message IDs. Snowflake IDs are decimal strings that
// grow monotonically, so a longer string is always larger and equal-length
// strings compare lexicographically.
func CompareIDs(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
