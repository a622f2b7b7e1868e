package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sudepo/sudepo/internal/platform/httpx"
)

type contextKey struct{}

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// SessionFromContext extracts the session, nil when unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

// Middleware guards routes by role.
type Middleware struct {
	Sessions *SessionManager
	Logger   *slog.Logger
}

// Authenticate resolves the session cookie into the request context. It
// never rejects; RequireRole does that per route group.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Sessions.Load(r.Context(), r)
		if err != nil {
			m.Logger.Error("load session", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
	})
}

// RequireRole rejects requests whose session lacks one of the roles.
func (m Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if sess == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if _, ok := allowed[sess.Role]; !ok {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
