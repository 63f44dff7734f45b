package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router. Every request passes through the session
// middleware; the finance routes additionally require a resolved account.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.withSession)

	r.Get("/", h.handleIndex)

	r.Post("/new-session", h.handleNewSession)
	r.Get("/new-session/{token}", h.handleRedeem)
	r.Get("/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(requireAccount)

		r.Get("/entries", h.handleEntryList)
		r.Post("/entries", h.handleEntryCreate)
		r.Get("/entries/{id}", h.handleEntryGet)
		r.Post("/entries/{id}", h.handleEntryUpdate)
		r.Post("/entries/{id}/delete", h.handleEntryDelete)

		r.Get("/bank-accounts", h.handleBankAccountList)
		r.Post("/bank-accounts", h.handleBankAccountCreate)
		r.Post("/bank-accounts/{id}/delete", h.handleBankAccountDelete)
		r.Get("/bank-accounts/summary", h.handleBankAccountSummary)
		r.Get("/currencies", h.handleCurrencySummary)

		r.Get("/graph/{account}", h.handleGraph)
		r.Get("/export/file/{filename}", h.handleExport)
		r.Get("/profile", h.handleProfile)
	})

	return r
}

// handleIndex reports service identity and whether the request is logged in.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := AccountFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]any{
		"service":   "cashlog",
		"logged_in": loggedIn,
	})
}
