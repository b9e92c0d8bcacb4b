package devserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LanderDK/blitzware-client/internal/api"
	"github.com/LanderDK/blitzware-client/internal/models"
)

// Handler serves the REST surface over a Store.
type Handler struct {
	Store  *Store
	Tokens *TokenIssuer
}

// writeErr writes the {code, message} error body the client's gateway
// knows how to parse.
func writeErr(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func storeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeErr(w, http.StatusNotFound, "not_found", "no such resource")
	case errors.Is(err, ErrBadCredentials):
		writeErr(w, http.StatusUnauthorized, "invalid_credentials", "username or password incorrect")
	default:
		writeErr(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "username and password required")
		return
	}

	acct, err := h.Store.Authenticate(req.Username, req.Password)
	if err != nil {
		storeErr(w, err)
		return
	}

	token, err := h.Tokens.Issue(acct.ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "internal", "token issue failed")
		return
	}

	h.Store.AppendLog(acct.ID, models.LogEntry{
		Username: acct.Username,
		Action:   "login",
		IP:       r.RemoteAddr,
	})

	writeJSON(w, api.LoginResponse{Account: acct, Token: token})
}

// Account handles GET /api/accounts/{id}. Accounts are only visible to
// themselves.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != AccountIDFromContext(r.Context()) {
		writeErr(w, http.StatusForbidden, "forbidden", "not your account")
		return
	}
	acct, err := h.Store.AccountByID(id)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, acct)
}

// UpdatePicture handles PUT /api/accounts/{id}/picture.
func (h *Handler) UpdatePicture(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != AccountIDFromContext(r.Context()) {
		writeErr(w, http.StatusForbidden, "forbidden", "not your account")
		return
	}
	var req struct {
		ProfilePicture string `json:"profilePicture"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}
	acct, err := h.Store.SetProfilePicture(id, req.ProfilePicture)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, acct)
}

// Applications handles GET /api/accounts/{id}/applications.
func (h *Handler) Applications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != AccountIDFromContext(r.Context()) {
		writeErr(w, http.StatusForbidden, "forbidden", "not your account")
		return
	}
	apps := h.Store.Applications(id)
	if apps == nil {
		apps = []api.ApplicationData{}
	}
	writeJSON(w, apps)
}

// Application handles GET /api/applications/{id}.
func (h *Handler) Application(w http.ResponseWriter, r *http.Request) {
	app, err := h.Store.ApplicationByID(chi.URLParam(r, "id"))
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, app)
}

// CreateApplication handles POST /api/applications.
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "name required")
		return
	}
	if req.AccountID == "" {
		req.AccountID = AccountIDFromContext(r.Context())
	}
	app, err := h.Store.CreateApplication(req.AccountID, req.Name)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, app)
}

// UpdateApplication handles PUT /api/applications/{id}.
func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	var in api.ApplicationData
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}
	in.ID = chi.URLParam(r, "id")
	app, err := h.Store.UpdateApplication(in)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, app)
}

// DeleteApplication handles DELETE /api/applications/{id}.
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteApplication(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Licenses handles GET /api/applications/{id}/licenses.
func (h *Handler) Licenses(w http.ResponseWriter, r *http.Request) {
	out := h.Store.Licenses(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.License{}
	}
	writeJSON(w, out)
}

// CreateLicense handles POST /api/licenses.
func (h *Handler) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var in models.License
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ApplicationID == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "applicationId required")
		return
	}
	writeJSON(w, h.Store.CreateLicense(in))
}

// UpdateLicense handles PUT /api/licenses/{id}.
func (h *Handler) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	var in models.License
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}
	in.ID = chi.URLParam(r, "id")
	lic, err := h.Store.UpdateLicense(in)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, lic)
}

// DeleteLicense handles DELETE /api/licenses/{id}.
func (h *Handler) DeleteLicense(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteLicense(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppUsers handles GET /api/applications/{id}/users.
func (h *Handler) AppUsers(w http.ResponseWriter, r *http.Request) {
	out := h.Store.AppUsers(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.AppUser{}
	}
	writeJSON(w, out)
}

// CreateAppUser handles POST /api/users.
func (h *Handler) CreateAppUser(w http.ResponseWriter, r *http.Request) {
	var in models.AppUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.ApplicationID == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "applicationId required")
		return
	}
	writeJSON(w, h.Store.CreateAppUser(in))
}

// UpdateAppUser handles PUT /api/users/{id}.
func (h *Handler) UpdateAppUser(w http.ResponseWriter, r *http.Request) {
	var in models.AppUser
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}
	in.ID = chi.URLParam(r, "id")
	u, err := h.Store.UpdateAppUser(in)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, u)
}

// DeleteAppUser handles DELETE /api/users/{id}.
func (h *Handler) DeleteAppUser(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAppUser(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserSubs handles GET /api/users/{id}/subs.
func (h *Handler) UserSubs(w http.ResponseWriter, r *http.Request) {
	out := h.Store.UserSubs(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.UserSub{}
	}
	writeJSON(w, out)
}

// CreateUserSub handles POST /api/user-subs.
func (h *Handler) CreateUserSub(w http.ResponseWriter, r *http.Request) {
	var in models.UserSub
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.UserID == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "userId required")
		return
	}
	writeJSON(w, h.Store.CreateUserSub(in))
}

// UpdateUserSub handles PUT /api/user-subs/{id}.
func (h *Handler) UpdateUserSub(w http.ResponseWriter, r *http.Request) {
	var in models.UserSub
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}
	in.ID = chi.URLParam(r, "id")
	sub, err := h.Store.UpdateUserSub(in)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, sub)
}

// DeleteUserSub handles DELETE /api/user-subs/{id}.
func (h *Handler) DeleteUserSub(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteUserSub(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Files handles GET /api/applications/{id}/files.
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	out := h.Store.Files(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.AppFile{}
	}
	writeJSON(w, out)
}

// DeleteFile handles DELETE /api/files/{id}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteFile(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Logs handles GET /api/accounts/{id}/logs.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != AccountIDFromContext(r.Context()) {
		writeErr(w, http.StatusForbidden, "forbidden", "not your account")
		return
	}
	out := h.Store.Logs(id)
	if out == nil {
		out = []models.LogEntry{}
	}
	writeJSON(w, out)
}

// DeleteLog handles DELETE /api/logs/{id}.
func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteLog(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppLogs handles GET /api/applications/{id}/logs.
func (h *Handler) AppLogs(w http.ResponseWriter, r *http.Request) {
	out := h.Store.AppLogs(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.AppLogEntry{}
	}
	writeJSON(w, out)
}

// DeleteAppLog handles DELETE /api/app-logs/{id}.
func (h *Handler) DeleteAppLog(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteAppLog(chi.URLParam(r, "id")); err != nil {
		storeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChatMessages handles GET /api/chats/{id}/messages.
func (h *Handler) ChatMessages(w http.ResponseWriter, r *http.Request) {
	out := h.Store.ChatMessages(chi.URLParam(r, "id"))
	if out == nil {
		out = []models.ChatMessage{}
	}
	writeJSON(w, out)
}

// SendChatMessage handles POST /api/chats/{id}/messages.
func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var in models.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Message == "" {
		writeErr(w, http.StatusBadRequest, "invalid_request", "message required")
		return
	}
	in.ChatID = chi.URLParam(r, "id")
	writeJSON(w, h.Store.AppendChatMessage(in))
}
