package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
)

// Envelope is the normalized response shape. Error responses always carry
// success=false and a message; success responses embed their payload.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Token      string `json:"token,omitempty"`
	Count      *int   `json:"count,omitempty"`
	Pagination any    `json:"pagination,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a success envelope wrapping data.
func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// JSONError writes {"success":false,"message":...} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Message: msg})
}

// Error maps a service error onto the envelope. Unknown errors become a
// generic 500 so internals never leak.
func Error(w http.ResponseWriter, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		JSONError(w, e.Status(), e.Message)
		return
	}
	JSONError(w, http.StatusInternalServerError, "Internal server error")
}

// DecodeJSON parses the JSON body into v and handles invalid JSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		JSONError(w, http.StatusBadRequest, "empty request body")
		return http.ErrBodyNotAllowed
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return err
	}

	return nil
}
