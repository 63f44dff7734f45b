package httpapi

import (
	"encoding/json"
	"net/http"
)

// validationResponse is the 400 payload for form errors: a per-field message
// map plus the submitted values, echoed so the client can refill the form.
type validationResponse struct {
	Errors map[string]string `json:"errors"`
	Values map[string]string `json:"values"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, msg string) {
	respondWithJSON(w, status, map[string]string{"error": msg})
}

func respondWithValidation(w http.ResponseWriter, errs, values map[string]string) {
	respondWithJSON(w, http.StatusBadRequest, validationResponse{Errors: errs, Values: values})
}
