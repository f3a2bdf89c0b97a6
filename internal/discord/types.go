package discord

import "time"

// Author is a message author from the Discord API.
type Author struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
	Bot        bool   `json:"bot,omitempty"`
}

// DisplayName returns the author's global name, falling back to the username.
func (a Author) DisplayName() string {
	if a.GlobalName != "" {
		return a.GlobalName
	}
	return a.Username
}

// Message is a channel message from the Discord API. Immutable once fetched.
type Message struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// messageReference links a reply to the message it answers.
type messageReference struct {
	MessageID string `json:"message_id"`
}

// createMessageRequest is the payload for the create-message endpoint.
type createMessageRequest struct {
	Content          string            `json:"content"`
	MessageReference *messageReference `json:"message_reference,omitempty"`
}

// apiErrorBody is the JSON body Discord returns on failed requests.
type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
