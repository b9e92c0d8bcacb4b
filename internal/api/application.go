package api

import (
	"context"
	"net/http"

	"github.com/LanderDK/blitzware-client/internal/models"
)

// OwnerData is the denormalized owner summary embedded in an
// application on the wire.
type OwnerData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ApplicationData is the wire representation of an application. Flag
// fields are 0/1 integers on the wire.
type ApplicationData struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Secret         string     `json:"secret"`
	Version        string     `json:"version"`
	Status         int        `json:"status"`
	DeveloperMode  int        `json:"developerMode"`
	TwoFactorAuth  int        `json:"twoFactorAuth"`
	HwidCheck      int        `json:"hwidCheck"`
	FreeMode       int        `json:"freeMode"`
	IntegrityCheck int        `json:"integrityCheck"`
	ProgramHash    string     `json:"programHash,omitempty"`
	DownloadLink   string     `json:"downloadLink,omitempty"`
	AdminRoleID    *int       `json:"adminRoleId,omitempty"`
	AdminRoleLevel *int       `json:"adminRoleLevel,omitempty"`
	Account        *OwnerData `json:"account,omitempty"`
}

// Model converts the wire application into the domain model.
func (d ApplicationData) Model() models.Application {
	app := models.Application{
		ID:             d.ID,
		Name:           d.Name,
		Secret:         d.Secret,
		Version:        d.Version,
		Status:         d.Status != 0,
		DeveloperMode:  d.DeveloperMode != 0,
		TwoFactorAuth:  d.TwoFactorAuth != 0,
		HwidCheck:      d.HwidCheck != 0,
		FreeMode:       d.FreeMode != 0,
		IntegrityCheck: d.IntegrityCheck != 0,
		ProgramHash:    d.ProgramHash,
		DownloadLink:   d.DownloadLink,
		AdminRoleID:    d.AdminRoleID,
		AdminRoleLevel: d.AdminRoleLevel,
	}
	if d.Account != nil {
		app.Owner = models.AccountSummary{ID: d.Account.ID, Name: d.Account.Name}
	}
	return app
}

// NewApplicationData converts a domain application into its wire
// representation, including the owner summary when present.
func NewApplicationData(app models.Application) ApplicationData {
	d := ApplicationData{
		ID:             app.ID,
		Name:           app.Name,
		Secret:         app.Secret,
		Version:        app.Version,
		Status:         wireFlag(app.Status),
		DeveloperMode:  wireFlag(app.DeveloperMode),
		TwoFactorAuth:  wireFlag(app.TwoFactorAuth),
		HwidCheck:      wireFlag(app.HwidCheck),
		FreeMode:       wireFlag(app.FreeMode),
		IntegrityCheck: wireFlag(app.IntegrityCheck),
		ProgramHash:    app.ProgramHash,
		DownloadLink:   app.DownloadLink,
		AdminRoleID:    app.AdminRoleID,
		AdminRoleLevel: app.AdminRoleLevel,
	}
	if app.Owner != (models.AccountSummary{}) {
		d.Account = &OwnerData{ID: app.Owner.ID, Name: app.Owner.Name}
	}
	return d
}

// Applications lists the applications owned by the account.
func (c *Client) Applications(ctx context.Context, token, accountID string) ([]models.Application, error) {
	var data []ApplicationData
	err := c.do(ctx, http.MethodGet, "/api/accounts/"+accountID+"/applications", token, nil, &data)
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0, len(data))
	for _, d := range data {
		apps = append(apps, d.Model())
	}
	return apps, nil
}

// ApplicationByID fetches a fresh copy of a single application.
func (c *Client) ApplicationByID(ctx context.Context, token, id string) (models.Application, error) {
	var d ApplicationData
	if err := c.do(ctx, http.MethodGet, "/api/applications/"+id, token, nil, &d); err != nil {
		return models.Application{}, err
	}
	return d.Model(), nil
}

// CreateApplication creates a new application under the account and
// returns it as the server stored it.
func (c *Client) CreateApplication(ctx context.Context, token, accountID, name string) (models.Application, error) {
	var d ApplicationData
	err := c.do(ctx, http.MethodPost, "/api/applications", token,
		map[string]string{"name": name, "accountId": accountID}, &d)
	if err != nil {
		return models.Application{}, err
	}
	return d.Model(), nil
}

// UpdateApplication pushes field-level changes (status toggles, version
// bumps, download link) and returns the updated application.
func (c *Client) UpdateApplication(ctx context.Context, token string, app models.Application) (models.Application, error) {
	var d ApplicationData
	err := c.do(ctx, http.MethodPut, "/api/applications/"+app.ID, token, NewApplicationData(app), &d)
	if err != nil {
		return models.Application{}, err
	}
	return d.Model(), nil
}

// DeleteApplication removes the application from the backend.
func (c *Client) DeleteApplication(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/applications/"+id, token, nil, nil)
}
