package bridge

import (
	"fmt"
	"os"
	"strings"

	"github.com/calkins/dbridge/internal/discord"
)

// LogMaxLines caps messages.log; older lines are dropped after each append.
const LogMaxLines = 200

// FormatLogLine renders a message as one log line.
func FormatLogLine(m discord.Message, label string) string {
	return fmt.Sprintf("%s %s: %s", m.Timestamp.Format("2006-01-02 15:04"), label, strings.ReplaceAll(m.Content, "\n", " "))
}

// FormatInjection renders the string injected into the terminal session.
func FormatInjection(label, content string) string {
	return fmt.Sprintf("[Discord from %s]: %s", label, strings.ReplaceAll(content, "\n", " "))
}

// AppendLog appends lines to messages.log, then truncates the file to its
// most recent LogMaxLines lines. The truncated file is written atomically.
func (s *State) AppendLog(lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	path := s.path(LogFile)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", LogFile, err)
	}

	all := strings.Split(strings.TrimRight(string(existing), "\n"), "\n")
	if len(all) == 1 && all[0] == "" {
		all = nil
	}
	all = append(all, lines...)
	if len(all) > LogMaxLines {
		all = all[len(all)-LogMaxLines:]
	}

	return s.writeAtomic(LogFile, []byte(strings.Join(all, "\n")+"\n"))
}

// WriteFlag writes the latest human message batch to the flag file read by
// the injection hook. An empty text removes the flag.
func (s *State) WriteFlag(text string) error {
	if text == "" {
		err := os.Remove(s.path(FlagFile))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", FlagFile, err)
		}
		return nil
	}
	return s.writeAtomic(FlagFile, []byte(text+"\n"))
}

// ReadLog returns the current contents of messages.log, empty if absent.
func (s *State) ReadLog() ([]string, error) {
	data, err := os.ReadFile(s.path(LogFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", LogFile, err)
	}
	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}
