// Package discord provides a minimal REST client for a single Discord channel:
// list messages after a cursor, create messages and replies, delete messages.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the Discord REST API base URL.
	BaseURL = "https://discord.com/api/v10"

	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RequestRate paces requests so bursts (cleanup deletes in particular)
	// stay under Discord's per-route limits.
	RequestRate = 4.0
)

// Client is a rate-limited HTTP client for one Discord channel.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	channelID  string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// NewClient creates a client for the given bot token and channel.
func NewClient(token, channelID string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RequestRate), 1),
		token:      token,
		channelID:  channelID,
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages fetches up to limit messages from the channel, newest first.
// A non-empty after cursor restricts results to messages with larger IDs.
func (c *Client) Messages(ctx context.Context, limit int, after string) ([]Message, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if after != "" {
		q.Set("after", after)
	}
	path := fmt.Sprintf("/channels/%s/messages?%s", c.channelID, q.Encode())

	var messages []Message
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Send posts a message to the channel and returns the created message.
func (c *Client) Send(ctx context.Context, content string) (*Message, error) {
	return c.create(ctx, createMessageRequest{Content: content})
}

// Reply posts a message referencing an existing message.
func (c *Client) Reply(ctx context.Context, messageID, content string) (*Message, error) {
	return c.create(ctx, createMessageRequest{
		Content:          content,
		MessageReference: &messageReference{MessageID: messageID},
	})
}

func (c *Client) create(ctx context.Context, req createMessageRequest) (*Message, error) {
	path := fmt.Sprintf("/channels/%s/messages", c.channelID)
	var msg Message
	if err := c.do(ctx, http.MethodPost, path, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes a message from the channel.
func (c *Client) Delete(ctx context.Context, messageID string) error {
	path := fmt.Sprintf("/channels/%s/messages/%s", c.channelID, messageID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs one API request. A nil out skips response decoding (204s).
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// apiError builds an APIError from a non-2xx response.
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body apiErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}
