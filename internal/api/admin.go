package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Manideep236692/IARE-ChatBot/internal/models"
)

// FAQ is an admin-managed question/answer pair.
type FAQ struct {
	ID        int64      `json:"id,omitempty"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer"`
	Category  string     `json:"category"`
	ViewCount int        `json:"viewCount,omitempty"`
	Active    *bool      `json:"active,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Ticket is a support ticket visible to admins.
type Ticket struct {
	ID        int64      `json:"id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body,omitempty"`
	Status    string     `json:"status"`
	UserID    int64      `json:"userId,omitempty"`
	AdminID   int64      `json:"adminId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SystemLog is one backend log entry.
type SystemLog struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ProviderConfig carries AI provider settings. The API key is write-only:
// the backend never echoes it back, and this client never logs it.
type ProviderConfig struct {
	APIKey string `json:"apiKey,omitempty"`
	Model  string `json:"model,omitempty"`
}

// String redacts the key so accidental printing can't leak it.
func (p ProviderConfig) String() string {
	key := ""
	if p.APIKey != "" {
		key = "[redacted]"
	}
	return "ProviderConfig{APIKey:" + key + ", Model:" + p.Model + "}"
}

// DashboardStats returns the admin dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/admin/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryAnalytics returns query volume analytics for a date range
// (YYYY-MM-DD).
func (c *Client) QueryAnalytics(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	return c.analytics(ctx, "/admin/analytics/queries", startDate, endDate)
}

// UserAnalytics returns user activity analytics for a date range.
func (c *Client) UserAnalytics(ctx context.Context, startDate, endDate string) (map[string]any, error) {
	return c.analytics(ctx, "/admin/analytics/users", startDate, endDate)
}

func (c *Client) analytics(ctx context.Context, path, startDate, endDate string) (map[string]any, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("startDate", startDate)
	}
	if endDate != "" {
		q.Set("endDate", endDate)
	}
	var out map[string]any
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Users lists accounts, optionally filtered by a search term.
func (c *Client) Users(ctx context.Context, page, size int, search string) (*Page[models.User], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if search != "" {
		q.Set("search", search)
	}
	data, err := c.do(ctx, http.MethodGet, "/admin/users", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[models.User](data)
}

// UserByID fetches one account.
func (c *Client) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/admin/users/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser updates account fields and returns the updated user.
func (c *Client) UpdateUser(ctx context.Context, id int64, fields map[string]any) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, "/admin/users/"+strconv.FormatInt(id, 10), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, "/admin/users/"+strconv.FormatInt(id, 10), nil)
}

// ToggleUserStatus flips an account between active and disabled.
func (c *Client) ToggleUserStatus(ctx context.Context, id int64) (*models.User, error) {
	var out models.User
	if err := c.patch(ctx, "/admin/users/"+strconv.FormatInt(id, 10)+"/toggle-status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FAQs lists FAQ entries, optionally filtered by category.
func (c *Client) FAQs(ctx context.Context, page, size int, category string) (*Page[FAQ], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if category != "" {
		q.Set("category", category)
	}
	data, err := c.do(ctx, http.MethodGet, "/admin/faq", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[FAQ](data)
}

// CreateFAQ adds a FAQ entry.
func (c *Client) CreateFAQ(ctx context.Context, faq FAQ) (*FAQ, error) {
	var out FAQ
	if err := c.post(ctx, "/admin/faq", faq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFAQ replaces a FAQ entry.
func (c *Client) UpdateFAQ(ctx context.Context, id int64, faq FAQ) (*FAQ, error) {
	var out FAQ
	if err := c.put(ctx, "/admin/faq/"+strconv.FormatInt(id, 10), faq, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFAQ removes a FAQ entry.
func (c *Client) DeleteFAQ(ctx context.Context, id int64) error {
	return c.delete(ctx, "/admin/faq/"+strconv.FormatInt(id, 10), nil)
}

// Tickets lists support tickets, optionally filtered by status.
func (c *Client) Tickets(ctx context.Context, page, size int, status string) (*Page[Ticket], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if status != "" {
		q.Set("status", status)
	}
	data, err := c.do(ctx, http.MethodGet, "/admin/tickets", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[Ticket](data)
}

// UpdateTicketStatus moves a ticket to a new status.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int64, status string) (*Ticket, error) {
	var out Ticket
	path := "/admin/tickets/" + strconv.FormatInt(id, 10) + "/status"
	if err := c.patch(ctx, path, map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignTicket assigns a ticket to an admin.
func (c *Client) AssignTicket(ctx context.Context, id, adminID int64) (*Ticket, error) {
	var out Ticket
	path := "/admin/tickets/" + strconv.FormatInt(id, 10) + "/assign"
	if err := c.patch(ctx, path, map[string]int64{"adminId": adminID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Settings returns the system settings.
func (c *Client) Settings(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.get(ctx, "/admin/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSettings replaces system settings.
func (c *Client) UpdateSettings(ctx context.Context, settings map[string]any) error {
	return c.put(ctx, "/admin/settings", settings, nil)
}

// UpdateProviderConfig stores new AI provider credentials.
func (c *Client) UpdateProviderConfig(ctx context.Context, cfg ProviderConfig) error {
	return c.put(ctx, "/admin/settings/groq", cfg, nil)
}

// TestProviderConnection verifies the stored provider credentials work.
func (c *Client) TestProviderConnection(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.post(ctx, "/admin/settings/groq/test", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportUsersReport downloads the user report.
func (c *Client) ExportUsersReport(ctx context.Context, format, dest string) error {
	q := url.Values{}
	q.Set("format", format)
	return c.download(ctx, "/admin/reports/users", q, dest)
}

// ExportQueriesReport downloads the query report for a date range.
func (c *Client) ExportQueriesReport(ctx context.Context, startDate, endDate, format, dest string) error {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	q.Set("format", format)
	return c.download(ctx, "/admin/reports/queries", q, dest)
}

// ExportAnalyticsReport downloads the analytics report for a date range.
func (c *Client) ExportAnalyticsReport(ctx context.Context, startDate, endDate, format, dest string) error {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	q.Set("format", format)
	return c.download(ctx, "/admin/reports/analytics", q, dest)
}

// SystemLogs lists backend log entries, optionally filtered by level.
func (c *Client) SystemLogs(ctx context.Context, page, size int, level string) (*Page[SystemLog], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if level != "" {
		q.Set("level", level)
	}
	data, err := c.do(ctx, http.MethodGet, "/admin/logs", q, nil)
	if err != nil {
		return nil, err
	}
	return decodePage[SystemLog](data)
}

// ClearSystemLogs deletes backend log entries older than the given age.
func (c *Client) ClearSystemLogs(ctx context.Context, olderThanDays int) error {
	q := url.Values{}
	q.Set("olderThanDays", strconv.Itoa(olderThanDays))
	return c.delete(ctx, "/admin/logs", q)
}
