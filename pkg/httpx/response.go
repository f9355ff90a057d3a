package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the uniform wire shape for every non-2xx response:
// a stable machine-readable code, a human message, and optional details.
type ErrorEnvelope struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the uniform error envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	WriteJSON(w, status, ErrorEnvelope{Code: code, Message: message, Details: details})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for responses carrying tokens or balances.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
