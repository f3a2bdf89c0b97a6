// Package inject delivers text into the terminal session running the coding
// agent. The primary path drives tmux send-keys; when no suitable tmux pane
// exists it falls back to iTerm2 automation via osascript. Injection is a
// side effect: callers log failures and move on.
package inject

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// AgentCommand is the process name looked for when picking a target pane.
const AgentCommand = "claude"

// keyDelay separates the text from the trailing Enter so raw-mode TUIs see
// them as distinct events.
const keyDelay = 300 * time.Millisecond

// Inject sends text followed by Enter into the agent's terminal session.
// It tries tmux first and falls back to iTerm2; the returned error combines
// both failures.
func Inject(text string) error {
	tmuxErr := Tmux(text)
	if tmuxErr == nil {
		return nil
	}
	itermErr := ITerm(text)
	if itermErr == nil {
		return nil
	}
	return fmt.Errorf("tmux: %v; iterm: %v", tmuxErr, itermErr)
}

// Tmux injects text into the tmux pane running the agent.
func Tmux(text string) error {
	out, err := exec.Command("tmux", "list-panes", "-a", "-F", "#{pane_id}\t#{pane_current_command}\t#{pane_title}").Output()
	if err != nil {
		return fmt.Errorf("listing panes: %w", err)
	}

	paneID, ok := findAgentPane(strings.Split(strings.TrimSpace(string(out)), "\n"))
	if !ok {
		return fmt.Errorf("no pane running %q", AgentCommand)
	}

	// -l sends the text literally; Enter goes separately after a short delay.
	if err := exec.Command("tmux", "send-keys", "-t", paneID, "-l", text).Run(); err != nil {
		return fmt.Errorf("sending text: %w", err)
	}
	time.Sleep(keyDelay)
	if err := exec.Command("tmux", "send-keys", "-t", paneID, "Enter").Run(); err != nil {
		return fmt.Errorf("sending enter: %w", err)
	}
	return nil
}

// findAgentPane picks the pane whose current command or title mentions the
// agent. Lines are "pane_id\tcommand\ttitle".
func findAgentPane(lines []string) (string, bool) {
	for _, line := range lines {
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) < 2 {
			continue
		}
		rest := strings.ToLower(strings.Join(fields[1:], " "))
		if strings.Contains(rest, AgentCommand) {
			return fields[0], true
		}
	}
	return "", false
}

// ITerm injects text into the current iTerm2 session via osascript.
func ITerm(text string) error {
	script := fmt.Sprintf(
		`tell application "iTerm2" to tell current session of current window to write text "%s"`,
		appleScriptQuote(text),
	)
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// appleScriptQuote escapes text for inclusion in a double-quoted AppleScript
// string literal.
func appleScriptQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
