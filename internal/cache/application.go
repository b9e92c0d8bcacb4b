package cache

import (
	"context"
	"database/sql"

	"github.com/LanderDK/blitzware-client/internal/models"
)

// ApplicationCache persists the application currently being
// administered. At most one application is cached at a time; selecting
// a different application replaces the row wholesale.
//
// The embedded owner summary is stripped before storing and rehydrated
// from the caller-supplied account on read, so the owner fields never
// go stale independently of the account cache.
type ApplicationCache struct {
	rows *Store[models.Application]
}

// NewApplicationCache creates an ApplicationCache over the given cache
// database.
func NewApplicationCache(db *sql.DB) *ApplicationCache {
	tbl := Table[models.Application]{
		Name: "selected_application",
		Columns: []string{
			"id", "name", "secret", "version", "status", "developer_mode",
			"two_factor_auth", "hwid_check", "free_mode", "integrity_check",
			"program_hash", "download_link", "admin_role_id", "admin_role_level",
		},
		Values: func(app models.Application) []any {
			return []any{
				app.ID, app.Name, app.Secret, app.Version,
				boolToInt(app.Status), boolToInt(app.DeveloperMode),
				boolToInt(app.TwoFactorAuth), boolToInt(app.HwidCheck),
				boolToInt(app.FreeMode), boolToInt(app.IntegrityCheck),
				app.ProgramHash, app.DownloadLink,
				nullableInt(app.AdminRoleID), nullableInt(app.AdminRoleLevel),
			}
		},
		Scan: func(scan func(dest ...any) error) (models.Application, error) {
			var (
				app                       models.Application
				status, devMode, twoFA    int
				hwid, freeMode, integrity int
				adminRoleID, adminRoleLvl sql.NullInt64
			)
			err := scan(
				&app.ID, &app.Name, &app.Secret, &app.Version,
				&status, &devMode, &twoFA, &hwid, &freeMode, &integrity,
				&app.ProgramHash, &app.DownloadLink, &adminRoleID, &adminRoleLvl,
			)
			if err != nil {
				return models.Application{}, err
			}
			app.Status = status != 0
			app.DeveloperMode = devMode != 0
			app.TwoFactorAuth = twoFA != 0
			app.HwidCheck = hwid != 0
			app.FreeMode = freeMode != 0
			app.IntegrityCheck = integrity != 0
			app.AdminRoleID = intPtr(adminRoleID)
			app.AdminRoleLevel = intPtr(adminRoleLvl)
			return app, nil
		},
	}
	return &ApplicationCache{rows: NewStore(db, tbl)}
}

// InsertSelectedApplication caches app with its owner summary stripped.
// Callers selecting a new application must DeleteAll first (replace-all
// policy); insert onto a non-empty store is a silent no-op.
func (c *ApplicationCache) InsertSelectedApplication(ctx context.Context, app models.Application) error {
	app.Owner = models.AccountSummary{}
	return c.rows.Insert(ctx, app)
}

// UpdateSelectedApplication replaces the cached application's fields in
// place, used for field-level changes such as toggling status. Nothing
// happens when no application is cached.
func (c *ApplicationCache) UpdateSelectedApplication(ctx context.Context, app models.Application) error {
	app.Owner = models.AccountSummary{}
	return c.rows.Update(ctx, app)
}

// GetSelectedApplication returns the cached application with its owner
// summary rehydrated from owner, regardless of what was stored at
// insert time. Returns ErrNotFound when no application is selected.
func (c *ApplicationCache) GetSelectedApplication(ctx context.Context, owner models.Account) (models.Application, error) {
	app, err := c.rows.GetRow(ctx)
	if err != nil {
		return models.Application{}, err
	}
	app.Owner = models.AccountSummary{ID: owner.ID, Name: owner.Username}
	return app, nil
}

// DeleteAll removes the cached application, if any. Used when the user
// backs out of application administration or before caching a new
// selection.
func (c *ApplicationCache) DeleteAll(ctx context.Context) error {
	return c.rows.DeleteAll(ctx)
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
