// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/foodrec/internal/logging"
	"github.com/tomtom215/foodrec/internal/middleware"
	"github.com/tomtom215/foodrec/internal/models"
	"github.com/tomtom215/foodrec/internal/recommend"
	"github.com/tomtom215/foodrec/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// writeJSON marshals body with goccy/go-json and writes it with status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondJSON sends an enveloped response.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	if r != nil && response.Metadata.RequestID == "" {
		response.Metadata.RequestID = middleware.GetRequestID(r.Context())
	}
	writeJSON(w, status, response)
}

// respondData sends a successful enveloped response.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, r, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		// Sanitize error output to prevent log injection attacks
		event := logging.Error()
		if r != nil {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", sanitizeLogValue(code)).
			Str("error", sanitizeLogValue(err.Error())).
			Int("status", status).
			Msg("API Error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondEngineError maps engine errors to HTTP status codes.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrDataUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeDataUnavailable,
			"Recommendation data is unavailable", err)
	case errors.Is(err, recommend.ErrReloadInProgress):
		respondError(w, r, http.StatusConflict, models.ErrCodeReloadInProgress,
			"A data reload is already in progress", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal,
			"Internal server error", err)
	}
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// respondValidationError sends a 400 for a failed validateRequest.
func respondValidationError(w http.ResponseWriter, r *http.Request, apiErr *models.APIError) {
	respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    apiErr,
	})
}

// pathParam returns the decoded chi URL parameter. Surrounding whitespace is
// kept so that validation can reject blank ids.
//
// chi matches against r.URL.RawPath when it is set and against the already
// decoded r.URL.Path otherwise, so only the former needs unescaping.
func pathParam(r *http.Request, key string) (string, error) {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

// topNParam parses the top_n query parameter. A missing value yields the
// configured default; anything that is not an integer in [1, max] is an error.
func (h *Handler) topNParam(r *http.Request) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get("top_n"))
	if value == "" {
		return h.limits.DefaultTopN, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("top_n must be an integer, got %q", value)
	}
	if n < 1 || n > h.limits.MaxTopN {
		return 0, fmt.Errorf("top_n must be between 1 and %d, got %d", h.limits.MaxTopN, n)
	}
	return n, nil
}

// items returns a non-nil slice so that empty lists encode as [].
func items(res *recommend.Result) []string {
	if res == nil || res.Items == nil {
		return []string{}
	}
	return res.Items
}
