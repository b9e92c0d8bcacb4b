package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ctxKey string

const accountKey ctxKey = "account"

// WithRequestLogging returns a middleware that logs each request's
// method, path, status, and duration through the given logger.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

// TokenAuth is a middleware that enforces bearer-token authentication.
//
// The login endpoint is excluded so clients can obtain a token. On
// successful verification the account id from the token's subject is
// stored in the request context, so it can be used downstream as the
// authenticated principal.
func TokenAuth(tokens *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/auth/login" {
				// Allow login without a token
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || token == "" {
				writeErr(w, http.StatusUnauthorized, "missing_token", "bearer token required")
				return
			}

			accountID, err := tokens.Verify(token)
			if err != nil {
				writeErr(w, http.StatusUnauthorized, "invalid_token", "token rejected")
				return
			}

			ctx := context.WithValue(r.Context(), accountKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext extracts the authenticated account id from the
// request context. Returns an empty string if not found.
func AccountIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(accountKey).(string); ok {
		return s
	}
	return ""
}
