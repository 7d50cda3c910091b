// Package session holds the client's authentication state: the logged-in
// user and the access/refresh token pair, persisted across process restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageKey names the single persisted snapshot row.
const StorageKey = "auth-storage"

// Store is the single source of truth for who is logged in and with what
// credential. All mutations rewrite the persisted snapshot; the snapshot is
// restored verbatim by NewStore at startup.
//
// Invariant: Authenticated() implies User() != nil and AccessToken() != "".
type Store struct {
	mu sync.Mutex
	db *gorm.DB

	user          *models.User
	accessToken   string
	refreshToken  string
	authenticated bool
}

// NewStore creates a Store backed by db and restores the persisted snapshot
// if one exists. A missing snapshot yields an empty, unauthenticated store.
func NewStore(gdb *gorm.DB) (*Store, error) {
	s := &Store{db: gdb}
	var snap models.SessionSnapshot
	err := gdb.Where("storage_key = ?", StorageKey).First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("session: restore: %w", err)
	}
	if snap.UserJSON != "" {
		var u models.User
		if err := json.Unmarshal([]byte(snap.UserJSON), &u); err != nil {
			return nil, fmt.Errorf("session: restore user: %w", err)
		}
		s.user = &u
	}
	s.accessToken = snap.AccessToken
	s.refreshToken = snap.RefreshToken
	s.authenticated = snap.IsAuthenticated
	return s, nil
}

// SetAuth replaces the whole session after a successful login or
// registration and marks it authenticated. The caller guarantees
// well-formed tokens; no shape validation happens here.
func (s *Store) SetAuth(user *models.User, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	s.authenticated = true
	return s.persistLocked()
}

// UpdateUser shallow-merges fields into the current user. A nil current
// user makes this a silent no-op; that is expected when a profile update
// races a logout, not an error.
func (s *Store) UpdateUser(fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	cur, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("session: update user: %w", err)
	}
	merged := map[string]any{}
	if err := json.Unmarshal(cur, &merged); err != nil {
		return fmt.Errorf("session: update user: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}
	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("session: update user: %w", err)
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("session: update user: %w", err)
	}
	s.user = &u
	return s.persistLocked()
}

// SetToken replaces only the access token. Used by the refresh protocol;
// the user, refresh token and authenticated flag are untouched.
func (s *Store) SetToken(accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	return s.persistLocked()
}

// Logout clears the whole session. Idempotent.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.authenticated = false
	return s.persistLocked()
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken returns the current bearer credential, or "".
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// RefreshToken returns the current refresh credential, or "".
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

// Authenticated reports whether a login, registration or refresh has
// established a session.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// persistLocked rewrites the snapshot row. Callers hold s.mu.
func (s *Store) persistLocked() error {
	userJSON := ""
	if s.user != nil {
		data, err := json.Marshal(s.user)
		if err != nil {
			return fmt.Errorf("session: persist: %w", err)
		}
		userJSON = string(data)
	}
	snap := models.SessionSnapshot{
		StorageKey:      StorageKey,
		UserJSON:        userJSON,
		AccessToken:     s.accessToken,
		RefreshToken:    s.refreshToken,
		IsAuthenticated: s.authenticated,
		UpdatedAt:       time.Now(),
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&snap).Error; err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}
	return nil
}
