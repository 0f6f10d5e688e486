package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
	"github.com/Tomlord1122/tenant-backend/internal/logger"
)

const maxBodyBytes = 1 << 20

var errorStatus = map[string]int{
	domain.EInvalid:      http.StatusBadRequest,
	domain.EUnauthorized: http.StatusUnauthorized,
	domain.EForbidden:    http.StatusForbidden,
	domain.ENotFound:     http.StatusNotFound,
	domain.EInternal:     http.StatusInternalServerError,
}

// decodeJSON reads the request body into dst. On failure it writes a 400
// response and returns false. Unknown fields are ignored; organization_id and
// created_by always come from the authenticated user.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := decoder.Decode(dst)
	if err == nil {
		// The body must hold exactly one JSON value.
		if decoder.Decode(&struct{}{}) != io.EOF {
			respondWithError(w, r, http.StatusBadRequest, "Request body must only contain a single JSON object")
			return false
		}
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		respondWithError(w, r, http.StatusBadRequest, msg)
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, r, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		respondWithError(w, r, http.StatusBadRequest, msg)
	case errors.Is(err, io.EOF):
		respondWithError(w, r, http.StatusBadRequest, "Request body must not be empty")
	case errors.As(err, &maxBytesError):
		respondWithError(w, r, http.StatusBadRequest, "Request body must not be larger than 1MB")
	default:
		// Values rejected by a field's UnmarshalText, such as an unknown role.
		respondWithError(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	return false
}

// parseID reads a positive integer path parameter. On failure it writes a
// 400 response and returns false.
func parseID(w http.ResponseWriter, r *http.Request, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, param), 10, 64)
	if err != nil || id == 0 {
		respondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid %s ID provided", label))
		return 0, false
	}
	return uint(id), true
}

// respondWithServiceError maps an error returned by a service onto its HTTP
// status. Internal errors are logged and answered with a generic message.
func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status, ok := errorStatus[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	switch status {
	case http.StatusInternalServerError:
		logger.FromContext(r.Context()).Error("Request failed", zap.Error(err))
	case http.StatusUnauthorized:
		respondUnauthorized(w, r, domain.ErrorMessage(err))
		return
	}
	respondWithError(w, r, status, domain.ErrorMessage(err))
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondWithError(w, r, http.StatusUnauthorized, message)
}

func respondWithMessage(w http.ResponseWriter, r *http.Request, message string) {
	respondWithJSON(w, r, http.StatusOK, map[string]string{"message": message})
}

func respondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	respondWithJSON(w, r, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error marshaling JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
