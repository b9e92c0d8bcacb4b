package cache

import (
	"context"
	"database/sql"

	"github.com/LanderDK/blitzware-client/internal/models"
)

// AccountCache persists the authenticated account and its bearer token.
// At most one account is cached at a time; a cached account implies a
// live session.
//
// Only the primary role (Roles[0]) survives a cache round-trip: the row
// stores a single role string and reads re-expand it into a one-element
// slice. Additional roles present at insert time are dropped.
type AccountCache struct {
	rows *Store[models.Account]
}

// NewAccountCache creates an AccountCache over the given cache database.
func NewAccountCache(db *sql.DB) *AccountCache {
	tbl := Table[models.Account]{
		Name: "accounts",
		Columns: []string{
			"id", "username", "email", "role", "creation_date",
			"profile_picture", "email_verified", "two_factor_auth",
			"enabled", "token",
		},
		Values: func(a models.Account) []any {
			return []any{
				a.ID, a.Username, a.Email, a.PrimaryRole(), a.CreationDate,
				a.ProfilePicture, boolToInt(a.EmailVerified),
				boolToInt(a.TwoFactorAuth), boolToInt(a.Enabled), a.Token,
			}
		},
		Scan: func(scan func(dest ...any) error) (models.Account, error) {
			var (
				a                             models.Account
				role                          string
				emailVerified, twoFA, enabled int
			)
			err := scan(
				&a.ID, &a.Username, &a.Email, &role, &a.CreationDate,
				&a.ProfilePicture, &emailVerified, &twoFA, &enabled, &a.Token,
			)
			if err != nil {
				return models.Account{}, err
			}
			a.Roles = []string{role}
			a.EmailVerified = emailVerified != 0
			a.TwoFactorAuth = twoFA != 0
			a.Enabled = enabled != 0
			return a, nil
		},
	}
	return &AccountCache{rows: NewStore(db, tbl)}
}

// InsertAccount caches a. A no-op when an account with the same id is
// already cached; callers replacing a session must DeleteAccountEntry
// first.
func (c *AccountCache) InsertAccount(ctx context.Context, a models.Account) error {
	return c.rows.Insert(ctx, a)
}

// UpdateAccount replaces the cached account's fields in place. Nothing
// happens when no account is cached.
func (c *AccountCache) UpdateAccount(ctx context.Context, a models.Account) error {
	return c.rows.Update(ctx, a)
}

// GetAccount returns the cached account, its roles narrowed to the
// single persisted primary role. Returns ErrNotFound when no session is
// cached.
func (c *AccountCache) GetAccount(ctx context.Context) (models.Account, error) {
	return c.rows.GetRow(ctx)
}

// DeleteAccountEntry removes the cached account, if any.
func (c *AccountCache) DeleteAccountEntry(ctx context.Context) error {
	return c.rows.DeleteAll(ctx)
}
