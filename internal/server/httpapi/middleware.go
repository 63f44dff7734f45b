package httpapi

import (
	"context"
	"net/http"
)

// sessionCookieName is the cookie carrying the opaque session key.
const sessionCookieName = "session"

type contextKey string

const accountContextKey contextKey = "account"

// AccountFromContext returns the logged-in account id placed by the session
// middleware, or false for anonymous requests.
func AccountFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountContextKey).(int64)
	return id, ok
}

// withSession resolves the session cookie into an account id and stores it
// in the request context. Requests without a cookie, with an unknown key, or
// with a corrupt session value proceed as anonymous. Store failures are the
// only hard error.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		accountID, ok, err := h.sessions.ResolveAccount(r.Context(), cookie.Value)
		if err != nil {
			h.logger.Error(r.Context(), "session lookup failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), accountContextKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAccount guards routes that need a logged-in account.
func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AccountFromContext(r.Context()); !ok {
			respondWithError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
