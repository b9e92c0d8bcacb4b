package devserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter constructs the HTTP handler serving the dev backend.
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON bodies
//  2. WithRequestLogging(logger)           — logs incoming requests
//  3. TokenAuth                            — enforces bearer-token auth
//     (login excluded)
func NewRouter(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(WithRequestLogging(logger))
	r.Use(TokenAuth(h.Tokens))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)

		r.Route("/accounts/{id}", func(r chi.Router) {
			r.Get("/", h.Account)
			r.Put("/picture", h.UpdatePicture)
			r.Get("/applications", h.Applications)
			r.Get("/logs", h.Logs)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Post("/", h.CreateApplication)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Application)
				r.Put("/", h.UpdateApplication)
				r.Delete("/", h.DeleteApplication)
				r.Get("/licenses", h.Licenses)
				r.Get("/users", h.AppUsers)
				r.Get("/files", h.Files)
				r.Get("/logs", h.AppLogs)
			})
		})

		r.Post("/licenses", h.CreateLicense)
		r.Put("/licenses/{id}", h.UpdateLicense)
		r.Delete("/licenses/{id}", h.DeleteLicense)

		r.Post("/users", h.CreateAppUser)
		r.Put("/users/{id}", h.UpdateAppUser)
		r.Delete("/users/{id}", h.DeleteAppUser)
		r.Get("/users/{id}/subs", h.UserSubs)

		r.Post("/user-subs", h.CreateUserSub)
		r.Put("/user-subs/{id}", h.UpdateUserSub)
		r.Delete("/user-subs/{id}", h.DeleteUserSub)

		r.Delete("/files/{id}", h.DeleteFile)
		r.Delete("/logs/{id}", h.DeleteLog)
		r.Delete("/app-logs/{id}", h.DeleteAppLog)

		r.Get("/chats/{id}/messages", h.ChatMessages)
		r.Post("/chats/{id}/messages", h.SendChatMessage)
	})

	return r
}
