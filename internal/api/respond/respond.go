package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/pcparts/catalog/internal/model"
)

// MalformedBody is reported when a request body is not valid JSON for the resource.
const MalformedBody = "Malformed request body!"

// ErrorResponse is the body of every 4xx and 5xx response. It carries one violation.
type ErrorResponse struct {
	Violations []model.Violation `json:"violations"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteViolation writes a single-violation error body.
func WriteViolation(w http.ResponseWriter, statusCode int, v model.Violation) {
	WriteJSON(w, statusCode, ErrorResponse{Violations: []model.Violation{v}})
}

// WriteBadRequest writes a 400 with a message and no parameter names.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteViolation(w, http.StatusBadRequest, model.Violation{Message: message})
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter) {
	WriteViolation(w, http.StatusInternalServerError, model.Violation{Message: "Internal server error"})
}

// WriteError maps domain errors to 404/400 and logs anything else as a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound model.NotFoundError
	if errors.As(err, &notFound) {
		WriteViolation(w, http.StatusNotFound, notFound.Violation())
		return
	}
	var v model.Violator
	if errors.As(err, &v) {
		WriteViolation(w, http.StatusBadRequest, v.Violation())
		return
	}
	hlog.FromRequest(r).Error().Stack().Err(err).
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Msg("request failed")
	WriteInternalError(w)
}
