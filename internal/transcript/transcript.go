// Package transcript holds the live conversation shown to the user. It is
// purely in-memory; history survives only on the server and is reloaded
// through the session endpoints.
package transcript

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Feedback values accepted by the backend.
const (
	FeedbackPositive = "positive"
	FeedbackNegative = "negative"
)

// Message is one entry in the conversation, in arrival order.
type Message struct {
	// ID comes from the backend for assistant messages and correlates
	// feedback; user messages get a synthetic one at append time.
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
	Category  string
	Feedback  string
	// IsError marks a locally synthesized placeholder for a failed send.
	IsError bool
}

// Store is the ordered, additive transcript of the active conversation,
// plus the typing indicator and the selected topic filter.
type Store struct {
	mu        sync.Mutex
	messages  []Message
	sessionID int64
	typing    bool
	category  string
}

// New returns an empty transcript.
func New() *Store {
	return &Store{}
}

// AddMessage appends m to the end of the transcript, assigning an ID when
// absent and a timestamp when unset, and returns the stored message.
// Existing entries are never mutated or removed.
func (s *Store) AddMessage(m Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	s.messages = append(s.messages, m)
	return m
}

// SetMessages replaces the transcript wholesale, trusting the caller's
// order as display order. Used when loading a session from the backend.
func (s *Store) SetMessages(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]Message(nil), msgs...)
}

// ClearMessages empties the transcript for a new conversation.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}

// Messages returns a copy of the transcript in display order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Len returns the number of messages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// SetTyping toggles the pending-response indicator. The flag is
// independent of transcript mutations; only SetTyping changes it.
func (s *Store) SetTyping(typing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = typing
}

// Typing reports whether an assistant reply is pending.
func (s *Store) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// SetSessionID associates the transcript with a backend session.
func (s *Store) SetSessionID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = id
}

// SessionID returns the backend session identifier, or 0 for a fresh
// conversation.
func (s *Store) SessionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// SetCategory selects a topic filter. Selecting the current category again
// clears the filter; an empty category always clears it.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == s.category {
		s.category = ""
		return
	}
	s.category = category
}

// Category returns the selected topic filter, or "".
func (s *Store) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// UpdateFeedback records submitted feedback on the message with the given
// ID. Unknown IDs are ignored.
func (s *Store) UpdateFeedback(id, feedback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Feedback = feedback
			return
		}
	}
}
