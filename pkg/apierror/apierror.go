package apierror

import (
	"encoding/json"
	"net/http"
)

// Response is the JSON body of every failed request.
type Response struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

func Write(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Error: message})
}

// WriteDetails includes diagnostic text, even when it is empty.
func WriteDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, Response{Error: message, Details: &details})
}

func writeJSON(w http.ResponseWriter, status int, value Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}
