// Package models defines the core data structures for accounts,
// applications, and the resources administered through the BlitzWare API.
package models

// Account represents the authenticated principal together with its
// bearer credential.
type Account struct {
	// ID is the stable, immutable identifier for the account.
	ID string
	// Username is the login name of the account.
	Username string
	// Email is the account's contact address.
	Email string
	// Roles is the ordered list of role tags. Roles[0] is the primary
	// role; the cache layer persists only the primary role.
	Roles []string
	// CreationDate is the ISO-8601 creation timestamp as reported by
	// the server.
	CreationDate string
	// ProfilePicture is an opaque string chosen by the user. It may
	// embed a JSON blob with a data URL; nothing in the client
	// interprets it.
	ProfilePicture string
	// EmailVerified reports whether the address has been confirmed.
	EmailVerified bool
	// TwoFactorAuth reports whether 2FA is enabled for the account.
	TwoFactorAuth bool
	// Enabled reports whether the account is active.
	Enabled bool
	// Token is the bearer credential required for all authenticated
	// calls. Opaque to the client.
	Token string
}

// PrimaryRole returns the first role tag, or the empty string when the
// account carries no roles.
func (a Account) PrimaryRole() string {
	if len(a.Roles) == 0 {
		return ""
	}
	return a.Roles[0]
}

// AccountSummary is the denormalized owner reference embedded in an
// application.
type AccountSummary struct {
	ID   string
	Name string
}

// Application represents the application currently being administered.
type Application struct {
	// ID is the stable identifier of the application.
	ID string
	// Name is the display name.
	Name string
	// Secret is the application's API secret.
	Secret string
	// Version is the latest published version string.
	Version string

	Status         bool
	DeveloperMode  bool
	TwoFactorAuth  bool
	HwidCheck      bool
	FreeMode       bool
	IntegrityCheck bool

	// ProgramHash is the expected hash of the protected binary, if set.
	ProgramHash string
	// DownloadLink points at the latest build, if set.
	DownloadLink string

	// AdminRoleID and AdminRoleLevel configure the role required to
	// administer the application. Nil when unset.
	AdminRoleID    *int
	AdminRoleLevel *int

	// Owner is the owning account summary. Not persisted by the cache;
	// rehydrated from the cached account on read.
	Owner AccountSummary
}

// License is a license key issued for an application.
type License struct {
	ID            string `json:"id"`
	Key           string `json:"license"`
	Days          int    `json:"days"`
	ExpiryDate    string `json:"expiryDate"`
	MaxUsers      int    `json:"maxUsers"`
	Enabled       bool   `json:"enabled"`
	ApplicationID string `json:"applicationId"`
}

// AppUser is an end user registered under an application.
type AppUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	ExpiryDate    string `json:"expiryDate"`
	HWID          string `json:"hwid"`
	LastLogin     string `json:"lastLogin"`
	LastIP        string `json:"lastIP"`
	Enabled       bool   `json:"enabled"`
	TwoFactorAuth bool   `json:"twoFactorAuth"`
	ApplicationID string `json:"applicationId"`
}

// UserSub is a subscription level attached to an application user.
type UserSub struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	ExpiryDate string `json:"expiryDate"`
	UserID     string `json:"userId"`
}

// AppFile is a file distributed through an application.
type AppFile struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	CreatedAt     string `json:"createdAt"`
	ApplicationID string `json:"applicationId"`
}

// LogEntry is an account-level audit log record.
type LogEntry struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Action   string `json:"action"`
	IP       string `json:"ip"`
	Date     string `json:"date"`
}

// AppLogEntry is an application-level log record.
type AppLogEntry struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Action        string `json:"action"`
	IP            string `json:"ip"`
	Date          string `json:"date"`
	ApplicationID string `json:"applicationId"`
}

// ChatMessage is a single message in an application's support chat.
type ChatMessage struct {
	ID       string `json:"id"`
	ChatID   string `json:"chatId"`
	Username string `json:"username"`
	Message  string `json:"message"`
	Date     string `json:"date"`
}
