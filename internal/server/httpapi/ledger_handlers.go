package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/cashlog/internal/common"
	"github.com/dmitrijs2005/cashlog/internal/server/models"
)

// Accepted timestamp formats for the entry form, tried in order.
var entryTimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

type entryResponse struct {
	ID       int64     `json:"id"`
	Account  string    `json:"account"`
	Amount   string    `json:"amount"`
	Currency string    `json:"currency"`
	TS       time.Time `json:"ts"`
}

func toEntryResponse(e models.EntryInfo) entryResponse {
	return entryResponse{ID: e.ID, Account: e.BankAccount, Amount: e.Amount, Currency: e.Currency, TS: e.TS}
}

func toEntryResponses(list []models.EntryInfo) []entryResponse {
	result := make([]entryResponse, 0, len(list))
	for _, e := range list {
		result = append(result, toEntryResponse(e))
	}
	return result
}

func (h *Handler) handleEntryList(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	list, err := h.ledger.Entries(r.Context(), accountID)
	if err != nil {
		h.internalError(w, r, "entry listing failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toEntryResponses(list))
}

func (h *Handler) handleEntryCreate(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad form")
		return
	}

	values := map[string]string{
		"account": strings.TrimSpace(r.PostFormValue("account")),
		"ts":      strings.TrimSpace(r.PostFormValue("ts")),
		"amount":  strings.TrimSpace(r.PostFormValue("amount")),
	}
	errs := map[string]string{}

	bankAccountID, err := strconv.ParseInt(values["account"], 10, 64)
	if err != nil {
		errs["account"] = "account is invalid"
	}

	ts := time.Now().UTC()
	if values["ts"] != "" {
		parsed, err := parseEntryTimestamp(values["ts"])
		if err != nil {
			errs["ts"] = "timestamp is invalid"
		} else {
			ts = parsed
		}
	}

	if values["amount"] == "" {
		errs["amount"] = "amount is required"
	}

	if len(errs) > 0 {
		respondWithValidation(w, errs, values)
		return
	}

	if err := h.ledger.AddEntry(r.Context(), accountID, bankAccountID, ts, values["amount"]); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			errs["amount"] = "amount is not a decimal number"
			respondWithValidation(w, errs, values)
			return
		}
		h.internalError(w, r, "entry create failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleEntryGet(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	entryID, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	entry, err := h.ledger.Entry(r.Context(), accountID, entryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			respondWithError(w, http.StatusNotFound, "not found")
			return
		}
		h.internalError(w, r, "entry lookup failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toEntryResponse(*entry))
}

func (h *Handler) handleEntryUpdate(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	entryID, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad form")
		return
	}
	amount := strings.TrimSpace(r.PostFormValue("amount"))
	values := map[string]string{"amount": amount}

	if amount == "" {
		respondWithValidation(w, map[string]string{"amount": "amount is required"}, values)
		return
	}

	if err := h.ledger.UpdateEntryAmount(r.Context(), accountID, entryID, amount); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			respondWithValidation(w, map[string]string{"amount": "amount is not a decimal number"}, values)
			return
		}
		h.internalError(w, r, "entry update failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleEntryDelete(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	entryID, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.ledger.DeleteEntry(r.Context(), accountID, entryID); err != nil {
		h.internalError(w, r, "entry delete failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleBankAccountList(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	list, err := h.ledger.BankAccounts(r.Context(), accountID)
	if err != nil {
		h.internalError(w, r, "bank account listing failed", err)
		return
	}

	type bankAccountResponse struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Currency string `json:"currency"`
	}
	result := make([]bankAccountResponse, 0, len(list))
	for _, ba := range list {
		result = append(result, bankAccountResponse{ID: ba.ID, Name: ba.Name, Currency: ba.Currency})
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) handleBankAccountCreate(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "bad form")
		return
	}

	values := map[string]string{
		"name":     strings.TrimSpace(r.PostFormValue("name")),
		"currency": strings.TrimSpace(r.PostFormValue("currency")),
	}
	errs := map[string]string{}
	if values["name"] == "" {
		errs["name"] = "name is required"
	}
	if values["currency"] == "" {
		errs["currency"] = "currency is required"
	}
	if len(errs) > 0 {
		respondWithValidation(w, errs, values)
		return
	}

	if err := h.ledger.AddBankAccount(r.Context(), accountID, values["name"], values["currency"]); err != nil {
		h.internalError(w, r, "bank account create failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleBankAccountDelete(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	bankAccountID, err := idParam(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.ledger.DeleteBankAccount(r.Context(), accountID, bankAccountID); err != nil {
		h.internalError(w, r, "bank account delete failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleBankAccountSummary(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	list, err := h.ledger.BankAccountSummaries(r.Context(), accountID)
	if err != nil {
		h.internalError(w, r, "bank account summary failed", err)
		return
	}

	type summaryResponse struct {
		Account  string    `json:"account"`
		Amount   string    `json:"amount"`
		Currency string    `json:"currency"`
		TS       time.Time `json:"ts"`
	}
	result := make([]summaryResponse, 0, len(list))
	for _, s := range list {
		result = append(result, summaryResponse{Account: s.BankAccount, Amount: s.Amount, Currency: s.Currency, TS: s.TS})
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCurrencySummary(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())

	list, err := h.ledger.CurrencySummaries(r.Context(), accountID)
	if err != nil {
		h.internalError(w, r, "currency summary failed", err)
		return
	}

	type currencyResponse struct {
		Currency string    `json:"currency"`
		Amount   string    `json:"amount"`
		TS       time.Time `json:"ts"`
	}
	result := make([]currencyResponse, 0, len(list))
	for _, c := range list {
		result = append(result, currencyResponse{Currency: c.Currency, Amount: c.Amount, TS: c.TS})
	}
	respondWithJSON(w, http.StatusOK, result)
}

// handleGraph returns one bank account's entries oldest first, the series a
// balance chart plots.
func (h *Handler) handleGraph(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())
	name := chi.URLParam(r, "account")

	list, err := h.ledger.EntriesForBankAccount(r.Context(), accountID, name)
	if err != nil {
		h.internalError(w, r, "graph feed failed", err)
		return
	}
	respondWithJSON(w, http.StatusOK, toEntryResponses(list))
}

var safeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename reduces a client-supplied filename to a safe charset
// before it is echoed into a response header.
func sanitizeFilename(name string) string {
	cleaned := safeFilename.ReplaceAllString(name, "_")
	cleaned = strings.Trim(cleaned, ".")
	if cleaned == "" {
		return "cashlog.csv"
	}
	return cleaned
}

// handleExport streams the account's entries as a CSV attachment. The
// filename in the path only names the download.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	accountID, _ := AccountFromContext(r.Context())
	filename := sanitizeFilename(chi.URLParam(r, "filename"))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.ledger.WriteCSV(r.Context(), accountID, w); err != nil {
		// headers may already be out; log and abandon the stream
		h.logger.Error(r.Context(), "csv export failed", "error", err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(r.Context(), msg, "error", err)
	respondWithError(w, http.StatusInternalServerError, "internal error")
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseEntryTimestamp(value string) (time.Time, error) {
	for _, layout := range entryTimestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format: %s", value)
}
