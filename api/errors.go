package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgMissingFields    = "Missing required fields: phone, token, and finalKey are required"
	msgNotFound         = "Endpoint not found"
	msgInternal         = "Internal server error"
	msgLookupFailed     = "Failed to check phone number"
	msgInvalidBody      = "invalid request body"
	msgBodyTooLarge     = "request body too large"
	msgInvalidDialCode  = "invalid countryCode: expected a dial code such as +62"
	maxCheckRequestSize = 16 << 10
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// mapError writes a lookup failure. Every lookup error is a 500; the message
// is the error's own text, which never carries credentials.
func mapError(w http.ResponseWriter, err error) {
	msg := err.Error()
	if msg == "" {
		msg = msgLookupFailed
	}
	writeError(w, http.StatusInternalServerError, msg)
}

func endpointNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}

// decodeJSON reads a size-limited JSON body into T. An empty body decodes
// to the zero value so that required-field checks produce the error.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, limit int64) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	err := json.NewDecoder(r.Body).Decode(&v)
	if err == nil || errors.Is(err, io.EOF) {
		return v, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	} else {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
	}
	return v, false
}
