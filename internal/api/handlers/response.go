package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error codes carried in the error envelope
const (
	CodeValidation   = "VALIDATION"
	CodeNotFound     = "NOT_FOUND"
	CodeUnavailable  = "UNAVAILABLE"
	CodeHibernating  = "HIBERNATING"
	CodeCapacity     = "CAPACITY"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeDatabase     = "DATABASE"
	CodeUnknown      = "UNKNOWN"
)

const (
	maxBodyBytes = 1 << 20

	msgInternal = "internal server error"
	msgDatabase = "could not complete the request, please try again"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// DecodeJSON reads a JSON body, rejecting unknown fields and trailing data
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// RespondJSON writes payload with the given status
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError writes the error envelope
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Success: false, Error: message, Code: code})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeUnavailable, message)
}

func RespondHibernating(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, CodeHibernating, message)
}

func RespondCapacity(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, CodeCapacity, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondDatabaseError hides storage details from the caller; log them before calling
func RespondDatabaseError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeDatabase, msgDatabase)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeUnknown, msgInternal)
}

// RespondServerError picks DATABASE when err wraps internalErr and UNKNOWN otherwise
func RespondServerError(w http.ResponseWriter, err, internalErr error) {
	if errors.Is(err, internalErr) {
		RespondDatabaseError(w)
		return
	}
	RespondInternalError(w)
}
