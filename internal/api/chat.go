package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	ID        int64     `json:"id"`
	Response  string    `json:"response"`
	Category  string    `json:"category,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	SessionID int64     `json:"sessionId"`
}

// ChatSession is one stored conversation. Messages are populated only by
// Session; list endpoints return the summary fields.
type ChatSession struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Category     string           `json:"category,omitempty"`
	LastMessage  string           `json:"lastMessage,omitempty"`
	MessageCount int              `json:"messageCount"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Messages     []SessionMessage `json:"messages,omitempty"`
}

// SessionMessage is a stored message inside a session.
type SessionMessage struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessage asks the assistant a question. A zero sessionID starts a new
// conversation on the server; the reply carries the session to continue in.
func (c *Client) SendMessage(ctx context.Context, message string, sessionID int64, category string) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.New("api: message is required")
	}
	body := map[string]any{"message": message}
	if sessionID != 0 {
		body["sessionId"] = sessionID
	}
	if category != "" {
		body["category"] = category
	}
	var out ChatReply
	if err := c.post(ctx, "/chat/message", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sessions lists the user's conversations.
func (c *Client) Sessions(ctx context.Context) ([]ChatSession, error) {
	data, err := c.do(ctx, http.MethodGet, "/chat/sessions", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[ChatSession](data)
}

// Session fetches one conversation with its messages.
func (c *Client) Session(ctx context.Context, id int64) (*ChatSession, error) {
	var out ChatSession
	if err := c.get(ctx, "/chat/session/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSession removes a conversation and its messages.
func (c *Client) DeleteSession(ctx context.Context, id int64) error {
	return c.delete(ctx, "/chat/session/"+strconv.FormatInt(id, 10), nil)
}

// History returns a page of past conversations.
func (c *Client) History(ctx context.Context, page, size int) (*Page[ChatSession], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	data, err := c.do(ctx, http.MethodGet, "/chat/history", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[ChatSession](data)
}

// SearchHistory finds past conversations matching a query.
func (c *Client) SearchHistory(ctx context.Context, query string) ([]ChatSession, error) {
	data, err := c.do(ctx, http.MethodPost, "/chat/search", nil, map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	return decodeList[ChatSession](data)
}

// SendFeedback rates an assistant message.
func (c *Client) SendFeedback(ctx context.Context, messageID int64, feedback string) error {
	if feedback != "positive" && feedback != "negative" {
		return fmt.Errorf("api: feedback must be positive or negative, got %q", feedback)
	}
	body := map[string]any{
		"messageId": messageID,
		"feedback":  feedback,
	}
	return c.post(ctx, "/chat/feedback", body, nil)
}

// Suggestions returns suggested questions, optionally for one category.
func (c *Client) Suggestions(ctx context.Context, category string) ([]string, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	data, err := c.do(ctx, http.MethodGet, "/chat/suggestions", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[string](data)
}

// Categories lists the topic categories.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/chat/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[string](data)
}

// ExportHistory downloads the whole chat history in the given format and
// writes it to dest.
func (c *Client) ExportHistory(ctx context.Context, format, dest string) error {
	q := url.Values{}
	q.Set("format", format)
	return c.download(ctx, "/chat/export", q, dest)
}

// ExportSession downloads one conversation in the given format.
func (c *Client) ExportSession(ctx context.Context, id int64, format, dest string) error {
	q := url.Values{}
	q.Set("format", format)
	return c.download(ctx, "/chat/session/"+strconv.FormatInt(id, 10)+"/export", q, dest)
}
