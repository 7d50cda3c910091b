package api

import (
	"context"
	"errors"

	"github.com/Manideep236692/IARE-ChatBot/internal/models"
)

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType,omitempty"`
}

// Login authenticates with email and password. Any failure here surfaces
// directly; the refresh protocol never runs for auth endpoints.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, errors.New("api: email and password are required")
	}
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the new session credentials.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("api: name, email and password are required")
	}
	var out AuthResponse
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session on the server. Clearing local state is
// the caller's job.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates profile fields and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, "/auth/profile", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return c.post(ctx, "/auth/change-password", body, nil)
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{
		"token":       token,
		"newPassword": newPassword,
	}
	return c.post(ctx, "/auth/reset-password", body, nil)
}
