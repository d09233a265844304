package api

import (
	"encoding/json"
	"net/http"

	"github.com/drillforge/drillforge/internal/errors"
	"github.com/drillforge/drillforge/internal/logger"
)

// errorResponse is the wire shape of every failure: a category code, a
// message, and optional field-level detail for validation errors.
type errorResponse struct {
	Code    string              `json:"code"`
	Error   string              `json:"error"`
	Details []errors.FieldError `json:"details,omitempty"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}
