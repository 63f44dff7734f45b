package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/cashlog/internal/common"
)

// handleNewSession starts the login flow for the submitted email.
// Success returns 200 regardless of whether the email was already known,
// so the endpoint does not leak account existence.
func (h *Handler) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad form")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if msg := validateEmail(email); msg != "" {
		respondWithValidation(w,
			map[string]string{"email": msg},
			map[string]string{"email": email})
		return
	}

	if err := h.login.Start(r.Context(), email); err != nil {
		h.logger.Error(r.Context(), "login start failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "login link sent"})
}

func validateEmail(email string) string {
	if email == "" {
		return "email is required"
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return "email is invalid"
	}
	return ""
}

// handleRedeem exchanges a magic-link token for the session cookie and sends
// the browser to the main page.
func (h *Handler) handleRedeem(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	key, err := h.login.Redeem(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			respondWithError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		h.logger.Error(r.Context(), "token redemption failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout destroys the session (if any), expires the cookie, and sends
// the browser to the main page.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Error(r.Context(), "session destroy failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleProfile returns the account's creation/modification timestamps and
// its bound emails.
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	info, err := h.accounts.Info(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		h.logger.Error(r.Context(), "profile lookup failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"created":  info.Created,
		"modified": info.Modified,
		"emails":   info.Emails,
	})
}
