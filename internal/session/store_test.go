package session

import (
	"path/filepath"
	"testing"

	"github.com/Manideep236692/IARE-ChatBot/internal/db"
	"github.com/Manideep236692/IARE-ChatBot/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestStore(t *testing.T, gdb *gorm.DB) *Store {
	t.Helper()
	s, err := NewStore(gdb)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestNewStore_EmptyAtFirstStartup(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	if s.Authenticated() {
		t.Error("fresh store should not be authenticated")
	}
	if s.User() != nil {
		t.Error("fresh store should have no user")
	}
	if s.AccessToken() != "" || s.RefreshToken() != "" {
		t.Error("fresh store should have no tokens")
	}
}

func TestSetAuth_PersistsAndRestores(t *testing.T) {
	gdb := openTestDB(t)
	s := newTestStore(t, gdb)

	user := &models.User{ID: 1, Name: "A", Role: models.RoleUser}
	if err := s.SetAuth(user, "tok1", "rtok1"); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if !s.Authenticated() {
		t.Error("Authenticated = false, want true after SetAuth")
	}

	// A new store over the same database restores the snapshot verbatim.
	restored := newTestStore(t, gdb)
	if !restored.Authenticated() {
		t.Error("restored store should be authenticated")
	}
	if got := restored.AccessToken(); got != "tok1" {
		t.Errorf("AccessToken = %q, want %q", got, "tok1")
	}
	if got := restored.RefreshToken(); got != "rtok1" {
		t.Errorf("RefreshToken = %q, want %q", got, "rtok1")
	}
	u := restored.User()
	if u == nil || u.ID != 1 || u.Name != "A" || u.Role != models.RoleUser {
		t.Errorf("User = %+v, want id=1 name=A role=USER", u)
	}
}

func TestSetToken_ChangesOnlyAccessToken(t *testing.T) {
	gdb := openTestDB(t)
	s := newTestStore(t, gdb)
	s.SetAuth(&models.User{ID: 1, Name: "A", Role: models.RoleUser}, "tok1", "rtok1")

	if err := s.SetToken("tok2"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if got := s.AccessToken(); got != "tok2" {
		t.Errorf("AccessToken = %q, want %q", got, "tok2")
	}
	if got := s.RefreshToken(); got != "rtok1" {
		t.Errorf("RefreshToken = %q, want unchanged %q", got, "rtok1")
	}
	if !s.Authenticated() {
		t.Error("Authenticated must be unchanged by SetToken")
	}
	if u := s.User(); u == nil || u.Name != "A" {
		t.Errorf("User = %+v, want unchanged", u)
	}

	// The persisted snapshot carries the new access token, old refresh token.
	restored := newTestStore(t, gdb)
	if got := restored.AccessToken(); got != "tok2" {
		t.Errorf("persisted AccessToken = %q, want %q", got, "tok2")
	}
	if got := restored.RefreshToken(); got != "rtok1" {
		t.Errorf("persisted RefreshToken = %q, want %q", got, "rtok1")
	}
}

func TestLogout_ClearsEverythingIdempotently(t *testing.T) {
	gdb := openTestDB(t)
	s := newTestStore(t, gdb)
	s.SetAuth(&models.User{ID: 1, Name: "A", Role: models.RoleUser}, "tok1", "rtok1")

	for i := 0; i < 2; i++ {
		if err := s.Logout(); err != nil {
			t.Fatalf("Logout #%d: %v", i+1, err)
		}
		if s.Authenticated() {
			t.Error("Authenticated = true, want false after logout")
		}
		if s.User() != nil {
			t.Error("User should be nil after logout")
		}
		if s.AccessToken() != "" || s.RefreshToken() != "" {
			t.Error("tokens should be empty after logout")
		}
	}

	restored := newTestStore(t, gdb)
	if restored.Authenticated() || restored.User() != nil || restored.AccessToken() != "" {
		t.Error("persisted snapshot should be fully cleared")
	}
}

func TestUpdateUser_ShallowMerge(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	s.SetAuth(&models.User{ID: 1, Name: "A", Email: "a@b.edu", Role: models.RoleUser}, "tok1", "rtok1")

	if err := s.UpdateUser(map[string]any{"name": "Anita", "phone": "555-0100"}); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	u := s.User()
	if u.Name != "Anita" {
		t.Errorf("Name = %q, want %q", u.Name, "Anita")
	}
	if u.Phone != "555-0100" {
		t.Errorf("Phone = %q, want %q", u.Phone, "555-0100")
	}
	if u.Email != "a@b.edu" {
		t.Errorf("Email = %q, want untouched %q", u.Email, "a@b.edu")
	}
	if u.Role != models.RoleUser {
		t.Errorf("Role = %q, want untouched %q", u.Role, models.RoleUser)
	}
}

func TestUpdateUser_NilUserIsNoOp(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	if err := s.UpdateUser(map[string]any{"name": "ghost"}); err != nil {
		t.Fatalf("UpdateUser on empty store must be a silent no-op, got %v", err)
	}
	if s.User() != nil {
		t.Error("User should stay nil")
	}
}

func TestUser_ReturnsCopy(t *testing.T) {
	s := newTestStore(t, openTestDB(t))
	s.SetAuth(&models.User{ID: 1, Name: "A", Role: models.RoleUser}, "tok1", "rtok1")

	u := s.User()
	u.Name = "mutated"

	if got := s.User().Name; got != "A" {
		t.Errorf("Name = %q, want %q (callers must not alias internal state)", got, "A")
	}
}
