package bridge

import "github.com/calkins/dbridge/internal/discord"

// Allowlist maps permitted author IDs to display labels.
// An empty allowlist means unrestricted: every author passes.
type Allowlist map[string]string

// Allows reports whether the author ID may interact with the bridge.
func (a Allowlist) Allows(authorID string) bool {
	if len(a) == 0 {
		return true
	}
	_, ok := a[authorID]
	return ok
}

// Filter returns the subset of messages whose author is allowed, preserving
// order.
func (a Allowlist) Filter(messages []discord.Message) []discord.Message {
	if len(a) == 0 {
		return messages
	}
	var allowed []discord.Message
	for _, m := range messages {
		if a.Allows(m.Author.ID) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

// Label returns the configured label for a message's author, falling back to
// the author's own display name.
func (a Allowlist) Label(m discord.Message) string {
	if label, ok := a[m.Author.ID]; ok {
		return label
	}
	return m.Author.DisplayName()
}
