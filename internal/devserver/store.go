// Package devserver implements an in-memory stand-in for the BlitzWare
// backend, serving the REST surface the client consumes. It backs local
// development and end-to-end tests; it is not a production server and
// keeps no durable state.
package devserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LanderDK/blitzware-client/internal/api"
	"github.com/LanderDK/blitzware-client/internal/models"
)

// ErrNotFound is returned for lookups of unknown ids.
var ErrNotFound = errors.New("devserver: not found")

// ErrBadCredentials is returned for failed logins.
var ErrBadCredentials = errors.New("devserver: invalid credentials")

type account struct {
	data     api.AccountData
	password string
}

type logEntry struct {
	entry     models.LogEntry
	accountID string
}

// Store holds all server-side state behind a single mutex.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account
	apps     map[string]*api.ApplicationData
	licenses map[string]*models.License
	users    map[string]*models.AppUser
	subs     map[string]*models.UserSub
	files    map[string]*models.AppFile
	logs     map[string]*logEntry
	appLogs  map[string]*models.AppLogEntry
	chats    map[string][]models.ChatMessage
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*account),
		apps:     make(map[string]*api.ApplicationData),
		licenses: make(map[string]*models.License),
		users:    make(map[string]*models.AppUser),
		subs:     make(map[string]*models.UserSub),
		files:    make(map[string]*models.AppFile),
		logs:     make(map[string]*logEntry),
		appLogs:  make(map[string]*models.AppLogEntry),
		chats:    make(map[string][]models.ChatMessage),
	}
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// SeedAccount creates an account with the given credentials and roles
// and returns its id. Used to provision dev fixtures.
func (s *Store) SeedAccount(username, password, email string, roles []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.accounts[id] = &account{
		password: password,
		data: api.AccountData{
			ID:           id,
			Username:     username,
			Email:        email,
			Roles:        roles,
			CreationDate: now(),
			Enabled:      1,
		},
	}
	return id
}

// Authenticate checks credentials and returns the matching account.
func (s *Store) Authenticate(username, password string) (api.AccountData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.data.Username == username && a.password == password {
			return a.data, nil
		}
	}
	return api.AccountData{}, ErrBadCredentials
}

// AccountByID returns the account with the given id.
func (s *Store) AccountByID(id string) (api.AccountData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return api.AccountData{}, ErrNotFound
	}
	return a.data, nil
}

// SetProfilePicture replaces the account's profile picture and returns
// the updated account.
func (s *Store) SetProfilePicture(id, picture string) (api.AccountData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return api.AccountData{}, ErrNotFound
	}
	a.data.ProfilePicture = picture
	return a.data, nil
}

// Applications lists the applications owned by the account.
func (s *Store) Applications(accountID string) []api.ApplicationData {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []api.ApplicationData
	for _, app := range s.apps {
		if app.Account != nil && app.Account.ID == accountID {
			out = append(out, *app)
		}
	}
	return out
}

// ApplicationByID returns a single application.
func (s *Store) ApplicationByID(id string) (api.ApplicationData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[id]
	if !ok {
		return api.ApplicationData{}, ErrNotFound
	}
	return *app, nil
}

// CreateApplication creates an application owned by the account, with a
// generated id and secret.
func (s *Store) CreateApplication(accountID, name string) (api.ApplicationData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.accounts[accountID]
	if !ok {
		return api.ApplicationData{}, ErrNotFound
	}

	app := &api.ApplicationData{
		ID:      uuid.NewString(),
		Name:    name,
		Secret:  uuid.NewString(),
		Version: "1.0",
		Status:  1,
		Account: &api.OwnerData{ID: owner.data.ID, Name: owner.data.Username},
	}
	s.apps[app.ID] = app
	return *app, nil
}

// UpdateApplication replaces an application's mutable fields, keeping
// id, secret, and owner.
func (s *Store) UpdateApplication(in api.ApplicationData) (api.ApplicationData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[in.ID]
	if !ok {
		return api.ApplicationData{}, ErrNotFound
	}
	in.Secret = app.Secret
	in.Account = app.Account
	*app = in
	return *app, nil
}

// DeleteApplication removes the application and all its resources.
func (s *Store) DeleteApplication(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[id]; !ok {
		return ErrNotFound
	}
	delete(s.apps, id)
	for k, l := range s.licenses {
		if l.ApplicationID == id {
			delete(s.licenses, k)
		}
	}
	for k, u := range s.users {
		if u.ApplicationID == id {
			delete(s.users, k)
		}
	}
	for k, f := range s.files {
		if f.ApplicationID == id {
			delete(s.files, k)
		}
	}
	for k, l := range s.appLogs {
		if l.ApplicationID == id {
			delete(s.appLogs, k)
		}
	}
	return nil
}

// Licenses lists the licenses of an application.
func (s *Store) Licenses(appID string) []models.License {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.License
	for _, l := range s.licenses {
		if l.ApplicationID == appID {
			out = append(out, *l)
		}
	}
	return out
}

// CreateLicense stores a new license with a generated id and key.
func (s *Store) CreateLicense(in models.License) models.License {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = uuid.NewString()
	if in.Key == "" {
		in.Key = uuid.NewString()
	}
	s.licenses[in.ID] = &in
	return in
}

// UpdateLicense replaces a license's fields.
func (s *Store) UpdateLicense(in models.License) (models.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.licenses[in.ID]
	if !ok {
		return models.License{}, ErrNotFound
	}
	*l = in
	return in, nil
}

// DeleteLicense removes a license by id.
func (s *Store) DeleteLicense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.licenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.licenses, id)
	return nil
}

// AppUsers lists the end users of an application.
func (s *Store) AppUsers(appID string) []models.AppUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AppUser
	for _, u := range s.users {
		if u.ApplicationID == appID {
			out = append(out, *u)
		}
	}
	return out
}

// CreateAppUser stores a new end user with a generated id.
func (s *Store) CreateAppUser(in models.AppUser) models.AppUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = uuid.NewString()
	s.users[in.ID] = &in
	return in
}

// UpdateAppUser replaces an end user's fields.
func (s *Store) UpdateAppUser(in models.AppUser) (models.AppUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[in.ID]
	if !ok {
		return models.AppUser{}, ErrNotFound
	}
	*u = in
	return in, nil
}

// DeleteAppUser removes an end user by id.
func (s *Store) DeleteAppUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// UserSubs lists the subscriptions of an end user.
func (s *Store) UserSubs(userID string) []models.UserSub {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.UserSub
	for _, sub := range s.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out
}

// CreateUserSub stores a new subscription with a generated id.
func (s *Store) CreateUserSub(in models.UserSub) models.UserSub {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = uuid.NewString()
	s.subs[in.ID] = &in
	return in
}

// UpdateUserSub replaces a subscription's fields.
func (s *Store) UpdateUserSub(in models.UserSub) (models.UserSub, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[in.ID]
	if !ok {
		return models.UserSub{}, ErrNotFound
	}
	*sub = in
	return in, nil
}

// DeleteUserSub removes a subscription by id.
func (s *Store) DeleteUserSub(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrNotFound
	}
	delete(s.subs, id)
	return nil
}

// Files lists the files of an application.
func (s *Store) Files(appID string) []models.AppFile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AppFile
	for _, f := range s.files {
		if f.ApplicationID == appID {
			out = append(out, *f)
		}
	}
	return out
}

// DeleteFile removes a file by id.
func (s *Store) DeleteFile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return ErrNotFound
	}
	delete(s.files, id)
	return nil
}

// AppendLog records an account-level audit log entry.
func (s *Store) AppendLog(accountID string, e models.LogEntry) models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	if e.Date == "" {
		e.Date = now()
	}
	s.logs[e.ID] = &logEntry{entry: e, accountID: accountID}
	return e
}

// Logs lists the audit log of an account.
func (s *Store) Logs(accountID string) []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.LogEntry
	for _, l := range s.logs {
		if l.accountID == accountID {
			out = append(out, l.entry)
		}
	}
	return out
}

// DeleteLog removes an audit log entry by id.
func (s *Store) DeleteLog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[id]; !ok {
		return ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

// AppLogs lists the log entries of an application.
func (s *Store) AppLogs(appID string) []models.AppLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AppLogEntry
	for _, l := range s.appLogs {
		if l.ApplicationID == appID {
			out = append(out, *l)
		}
	}
	return out
}

// AppendAppLog records an application log entry.
func (s *Store) AppendAppLog(e models.AppLogEntry) models.AppLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	if e.Date == "" {
		e.Date = now()
	}
	s.appLogs[e.ID] = &e
	return e
}

// DeleteAppLog removes an application log entry by id.
func (s *Store) DeleteAppLog(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appLogs[id]; !ok {
		return ErrNotFound
	}
	delete(s.appLogs, id)
	return nil
}

// ChatMessages lists the messages of a chat in append order.
func (s *Store) ChatMessages(chatID string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.ChatMessage(nil), s.chats[chatID]...)
}

// AppendChatMessage appends a message to a chat.
func (s *Store) AppendChatMessage(msg models.ChatMessage) models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.NewString()
	if msg.Date == "" {
		msg.Date = now()
	}
	s.chats[msg.ChatID] = append(s.chats[msg.ChatID], msg)
	return msg
}

// pruneLogs removes log and app-log entries older than cutoff,
// returning how many were removed. Entries with unparseable dates are
// kept.
func (s *Store) pruneLogs(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, l := range s.logs {
		t, err := time.Parse(time.RFC3339, l.entry.Date)
		if err == nil && t.Before(cutoff) {
			delete(s.logs, id)
			removed++
		}
	}
	for id, l := range s.appLogs {
		t, err := time.Parse(time.RFC3339, l.Date)
		if err == nil && t.Before(cutoff) {
			delete(s.appLogs, id)
			removed++
		}
	}
	return removed
}
