package api

import (
	"context"
	"net/http"

	"github.com/LanderDK/blitzware-client/internal/models"
)

// The remaining resources are plain CRUD: list by parent, create,
// update, delete by id. Their wire shapes match the models directly.

// Licenses lists the license keys of an application.
func (c *Client) Licenses(ctx context.Context, token, appID string) ([]models.License, error) {
	var out []models.License
	err := c.do(ctx, http.MethodGet, "/api/applications/"+appID+"/licenses", token, nil, &out)
	return out, err
}

// CreateLicense issues a new license for lic.ApplicationID.
func (c *Client) CreateLicense(ctx context.Context, token string, lic models.License) (models.License, error) {
	var out models.License
	err := c.do(ctx, http.MethodPost, "/api/licenses", token, lic, &out)
	return out, err
}

// UpdateLicense replaces a license's fields.
func (c *Client) UpdateLicense(ctx context.Context, token string, lic models.License) (models.License, error) {
	var out models.License
	err := c.do(ctx, http.MethodPut, "/api/licenses/"+lic.ID, token, lic, &out)
	return out, err
}

// DeleteLicense revokes a license by id.
func (c *Client) DeleteLicense(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/licenses/"+id, token, nil, nil)
}

// AppUsers lists the end users of an application.
func (c *Client) AppUsers(ctx context.Context, token, appID string) ([]models.AppUser, error) {
	var out []models.AppUser
	err := c.do(ctx, http.MethodGet, "/api/applications/"+appID+"/users", token, nil, &out)
	return out, err
}

// CreateAppUser registers a new end user.
func (c *Client) CreateAppUser(ctx context.Context, token string, u models.AppUser) (models.AppUser, error) {
	var out models.AppUser
	err := c.do(ctx, http.MethodPost, "/api/users", token, u, &out)
	return out, err
}

// UpdateAppUser replaces an end user's fields (expiry, HWID reset,
// enabled flag).
func (c *Client) UpdateAppUser(ctx context.Context, token string, u models.AppUser) (models.AppUser, error) {
	var out models.AppUser
	err := c.do(ctx, http.MethodPut, "/api/users/"+u.ID, token, u, &out)
	return out, err
}

// DeleteAppUser removes an end user by id.
func (c *Client) DeleteAppUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, token, nil, nil)
}

// UserSubs lists the subscriptions of an end user.
func (c *Client) UserSubs(ctx context.Context, token, userID string) ([]models.UserSub, error) {
	var out []models.UserSub
	err := c.do(ctx, http.MethodGet, "/api/users/"+userID+"/subs", token, nil, &out)
	return out, err
}

// CreateUserSub attaches a subscription to sub.UserID.
func (c *Client) CreateUserSub(ctx context.Context, token string, sub models.UserSub) (models.UserSub, error) {
	var out models.UserSub
	err := c.do(ctx, http.MethodPost, "/api/user-subs", token, sub, &out)
	return out, err
}

// UpdateUserSub replaces a subscription's fields.
func (c *Client) UpdateUserSub(ctx context.Context, token string, sub models.UserSub) (models.UserSub, error) {
	var out models.UserSub
	err := c.do(ctx, http.MethodPut, "/api/user-subs/"+sub.ID, token, sub, &out)
	return out, err
}

// DeleteUserSub detaches a subscription by id.
func (c *Client) DeleteUserSub(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/user-subs/"+id, token, nil, nil)
}

// Files lists the files distributed through an application.
func (c *Client) Files(ctx context.Context, token, appID string) ([]models.AppFile, error) {
	var out []models.AppFile
	err := c.do(ctx, http.MethodGet, "/api/applications/"+appID+"/files", token, nil, &out)
	return out, err
}

// DeleteFile removes a distributed file by id.
func (c *Client) DeleteFile(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+id, token, nil, nil)
}

// Logs lists the account-level audit log.
func (c *Client) Logs(ctx context.Context, token, accountID string) ([]models.LogEntry, error) {
	var out []models.LogEntry
	err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/logs", token, nil, &out)
	return out, err
}

// DeleteLog removes an audit log entry by id.
func (c *Client) DeleteLog(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/logs/"+id, token, nil, nil)
}

// AppLogs lists an application's log entries.
func (c *Client) AppLogs(ctx context.Context, token, appID string) ([]models.AppLogEntry, error) {
	var out []models.AppLogEntry
	err := c.do(ctx, http.MethodGet, "/api/applications/"+appID+"/logs", token, nil, &out)
	return out, err
}

// DeleteAppLog removes an application log entry by id.
func (c *Client) DeleteAppLog(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/app-logs/"+id, token, nil, nil)
}

// ChatMessages lists the messages of an application's support chat.
func (c *Client) ChatMessages(ctx context.Context, token, chatID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := c.do(ctx, http.MethodGet, "/api/chats/"+chatID+"/messages", token, nil, &out)
	return out, err
}

// SendChatMessage appends a message to msg.ChatID and returns it as
// stored.
func (c *Client) SendChatMessage(ctx context.Context, token string, msg models.ChatMessage) (models.ChatMessage, error) {
	var out models.ChatMessage
	err := c.do(ctx, http.MethodPost, "/api/chats/"+msg.ChatID+"/messages", token, msg, &out)
	return out, err
}
