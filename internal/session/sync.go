package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/LanderDK/blitzware-client/internal/api"
	"github.com/LanderDK/blitzware-client/internal/models"
)

// AccountStore defines the cache operations Sync needs for the
// authenticated account.
type AccountStore interface {
	// InsertAccount caches the account; a no-op if one with the same id
	// is already cached.
	InsertAccount(ctx context.Context, a models.Account) error
	// UpdateAccount replaces the cached account's fields in place.
	UpdateAccount(ctx context.Context, a models.Account) error
	// GetAccount returns the cached account or cache.ErrNotFound.
	GetAccount(ctx context.Context) (models.Account, error)
	// DeleteAccountEntry removes the cached account, if any.
	DeleteAccountEntry(ctx context.Context) error
}

// ApplicationStore defines the cache operations Sync needs for the
// selected application.
type ApplicationStore interface {
	InsertSelectedApplication(ctx context.Context, app models.Application) error
	UpdateSelectedApplication(ctx context.Context, app models.Application) error
	GetSelectedApplication(ctx context.Context, owner models.Account) (models.Application, error)
	DeleteAll(ctx context.Context) error
}

// AccountGateway is the remote account surface Sync depends on.
type AccountGateway interface {
	Login(ctx context.Context, username, password string) (models.Account, error)
	AccountByID(ctx context.Context, token, id string) (models.Account, error)
	UpdateProfilePicture(ctx context.Context, token, id, picture string) (models.Account, error)
}

// ApplicationGateway is the remote application surface Sync depends on.
type ApplicationGateway interface {
	ApplicationByID(ctx context.Context, token, id string) (models.Application, error)
	UpdateApplication(ctx context.Context, token string, app models.Application) (models.Application, error)
}

// Sync keeps the cached session consistent with the backend. Every
// screen controller holds the same Sync (or an identically wired one
// over the same cache file); writes through one become visible to reads
// through another. No ordering is enforced across controllers: two
// concurrent refreshes race and the last write-through wins.
type Sync struct {
	accounts AccountStore
	apps     ApplicationStore
	account  AccountGateway
	app      ApplicationGateway
	log      *zap.Logger
}

// NewSync wires a Sync from its stores and gateways. All dependencies
// are injected; Sync holds no global state.
func NewSync(accounts AccountStore, apps ApplicationStore, account AccountGateway, app ApplicationGateway, log *zap.Logger) *Sync {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sync{accounts: accounts, apps: apps, account: account, app: app, log: log}
}

// writeCtx detaches a write-through from the caller's cancellation so a
// write already issued for a successful network result runs to
// completion even when the controller is being disposed.
func writeCtx(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// Login authenticates and replaces the cached session. Any stale
// session is deleted BEFORE the network call: the insert below uses
// IGNORE-on-conflict semantics, so a leftover row with the same id
// would otherwise silently win over the new session.
func (s *Sync) Login(ctx context.Context, username, password string) (models.Account, error) {
	if strings.TrimSpace(username) == "" {
		return models.Account{}, &api.ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return models.Account{}, &api.ValidationError{Field: "password", Reason: "must not be empty"}
	}

	if err := s.accounts.DeleteAccountEntry(ctx); err != nil {
		return models.Account{}, err
	}

	acct, err := s.account.Login(ctx, username, password)
	if err != nil {
		return models.Account{}, err
	}

	// Best-effort: a failed write leaves the cache empty, not stale.
	if err := s.accounts.InsertAccount(writeCtx(ctx), acct); err != nil {
		s.log.Warn("account cache write failed after login", zap.Error(err))
	}
	return acct, nil
}

// Logout wipes the cached session and any selected application.
func (s *Sync) Logout(ctx context.Context) error {
	if err := s.accounts.DeleteAccountEntry(ctx); err != nil {
		return err
	}
	return s.apps.DeleteAll(ctx)
}

// CurrentAccount hydrates the account from cache. Absence is fatal for
// the calling controller; there is no anonymous mode.
func (s *Sync) CurrentAccount(ctx context.Context) (models.Account, error) {
	return s.accounts.GetAccount(ctx)
}

// RefreshAccount re-fetches the cached account's profile from the
// backend and writes the fresh copy through so other controllers
// observe it. The cache write is best-effort: on failure the returned
// account still reflects the network result and the cache stays stale
// until the next successful write.
func (s *Sync) RefreshAccount(ctx context.Context) (models.Account, error) {
	cached, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return models.Account{}, err
	}

	fresh, err := s.account.AccountByID(ctx, cached.Token, cached.ID)
	if err != nil {
		return models.Account{}, err
	}
	fresh.Token = cached.Token

	if err := s.accounts.UpdateAccount(writeCtx(ctx), fresh); err != nil {
		s.log.Warn("account cache write failed after refresh", zap.Error(err))
	}
	return fresh, nil
}

// UpdateProfilePicture pushes a new profile picture to the backend and
// writes the updated account through to the cache.
func (s *Sync) UpdateProfilePicture(ctx context.Context, picture string) (models.Account, error) {
	cached, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return models.Account{}, err
	}

	fresh, err := s.account.UpdateProfilePicture(ctx, cached.Token, cached.ID, picture)
	if err != nil {
		return models.Account{}, err
	}
	fresh.Token = cached.Token

	if err := s.accounts.UpdateAccount(writeCtx(ctx), fresh); err != nil {
		s.log.Warn("account cache write failed after picture update", zap.Error(err))
	}
	return fresh, nil
}

// SelectApplication caches app as the application under administration.
// The previous selection is always removed first: selection is
// replace-all, never a merge.
func (s *Sync) SelectApplication(ctx context.Context, app models.Application) error {
	if err := s.apps.DeleteAll(ctx); err != nil {
		return err
	}
	return s.apps.InsertSelectedApplication(ctx, app)
}

// ClearSelection removes the selected application when the user backs
// out of application administration.
func (s *Sync) ClearSelection(ctx context.Context) error {
	return s.apps.DeleteAll(ctx)
}

// CurrentApplication hydrates the selected application from cache, its
// owner summary rehydrated from the cached account. Absence of either
// row is fatal for the calling controller.
func (s *Sync) CurrentApplication(ctx context.Context) (models.Application, error) {
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return models.Application{}, err
	}
	return s.apps.GetSelectedApplication(ctx, acct)
}

// RefreshApplication re-fetches the selected application and writes the
// fresh copy through for other controllers.
func (s *Sync) RefreshApplication(ctx context.Context) (models.Application, error) {
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return models.Application{}, err
	}
	cached, err := s.apps.GetSelectedApplication(ctx, acct)
	if err != nil {
		return models.Application{}, err
	}

	fresh, err := s.app.ApplicationByID(ctx, acct.Token, cached.ID)
	if err != nil {
		return models.Application{}, err
	}

	if err := s.apps.UpdateSelectedApplication(writeCtx(ctx), fresh); err != nil {
		s.log.Warn("application cache write failed after refresh", zap.Error(err))
	}
	fresh.Owner = models.AccountSummary{ID: acct.ID, Name: acct.Username}
	return fresh, nil
}

// UpdateApplication pushes field-level changes (e.g. toggling status)
// to the backend and writes the result through. The cached row is only
// touched when its id matches the updated application.
func (s *Sync) UpdateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	acct, err := s.accounts.GetAccount(ctx)
	if err != nil {
		return models.Application{}, err
	}

	fresh, err := s.app.UpdateApplication(ctx, acct.Token, app)
	if err != nil {
		return models.Application{}, err
	}

	if err := s.apps.UpdateSelectedApplication(writeCtx(ctx), fresh); err != nil {
		s.log.Warn("application cache write failed after update", zap.Error(err))
	}
	fresh.Owner = models.AccountSummary{ID: acct.ID, Name: acct.Username}
	return fresh, nil
}
