package api

import (
	"context"
	"net/http"

	"github.com/LanderDK/blitzware-client/internal/models"
)

// AccountData is the wire representation of an account. Flag fields are
// 0/1 integers on the wire.
type AccountData struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	Roles          []string `json:"roles"`
	CreationDate   string   `json:"creationDate"`
	ProfilePicture string   `json:"profilePicture"`
	EmailVerified  int      `json:"emailVerified"`
	TwoFactorAuth  int      `json:"twoFactorAuth"`
	Enabled        int      `json:"enabled"`
}

// Model converts the wire account into the domain model, attaching the
// bearer token the caller holds for it.
func (d AccountData) Model(token string) models.Account {
	return models.Account{
		ID:             d.ID,
		Username:       d.Username,
		Email:          d.Email,
		Roles:          d.Roles,
		CreationDate:   d.CreationDate,
		ProfilePicture: d.ProfilePicture,
		EmailVerified:  d.EmailVerified != 0,
		TwoFactorAuth:  d.TwoFactorAuth != 0,
		Enabled:        d.Enabled != 0,
		Token:          token,
	}
}

// NewAccountData converts a domain account into its wire representation.
// The token is carried separately on the wire and is not included.
func NewAccountData(a models.Account) AccountData {
	return AccountData{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		Roles:          a.Roles,
		CreationDate:   a.CreationDate,
		ProfilePicture: a.ProfilePicture,
		EmailVerified:  wireFlag(a.EmailVerified),
		TwoFactorAuth:  wireFlag(a.TwoFactorAuth),
		Enabled:        wireFlag(a.Enabled),
	}
}

// LoginResponse is the payload returned by a successful login.
type LoginResponse struct {
	Account AccountData `json:"account"`
	Token   string      `json:"token"`
}

// Login authenticates with username/password and returns the resulting
// account with its bearer token attached.
func (c *Client) Login(ctx context.Context, username, password string) (models.Account, error) {
	var res LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": username, "password": password}, &res)
	if err != nil {
		return models.Account{}, err
	}
	return res.Account.Model(res.Token), nil
}

// AccountByID fetches a fresh copy of the account's profile fields.
func (c *Client) AccountByID(ctx context.Context, token, id string) (models.Account, error) {
	var d AccountData
	if err := c.do(ctx, http.MethodGet, "/api/accounts/"+id, token, nil, &d); err != nil {
		return models.Account{}, err
	}
	return d.Model(token), nil
}

// UpdateProfilePicture replaces the account's profile picture and
// returns the updated account. The picture string is opaque to the
// client.
func (c *Client) UpdateProfilePicture(ctx context.Context, token, id, picture string) (models.Account, error) {
	var d AccountData
	err := c.do(ctx, http.MethodPut, "/api/accounts/"+id+"/picture", token,
		map[string]string{"profilePicture": picture}, &d)
	if err != nil {
		return models.Account{}, err
	}
	return d.Model(token), nil
}

func wireFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
