// Package notify sends best-effort desktop notifications. Failures are
// returned for logging but never treated as fatal by callers.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// Send raises a desktop notification using whichever notifier the host has:
// osascript on macOS, notify-send elsewhere.
func Send(title, body string) error {
	if _, err := exec.LookPath("osascript"); err == nil {
		script := fmt.Sprintf(`display notification "%s" with title "%s"`,
			quote(body), quote(title))
		return run("osascript", "-e", script)
	}
	if _, err := exec.LookPath("notify-send"); err == nil {
		return run("notify-send", title, body)
	}
	return fmt.Errorf("no notifier available (osascript or notify-send)")
}

func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %v: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// quote escapes text for a double-quoted AppleScript string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
