package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/store"
)

// Stable error codes clients may match on.
const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeInvalidEmailDomain   = "INVALID_EMAIL_DOMAIN"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeRegistrationDisabled = "REGISTRATION_DISABLED"
	CodeNotFound             = "NOT_FOUND"
	CodeEmailInUse           = "EMAIL_IN_USE"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"
	CodeUploadFailed         = "UPLOAD_FAILED"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeInternal             = "INTERNAL_ERROR"
)

// Envelope wraps every JSON response.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Code       string            `json:"code,omitempty"`
	Message    string            `json:"message,omitempty"`
	Source     store.Source      `json:"source,omitempty"`
	Pagination *store.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, status int, data any, src store.Source) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Source: src})
}

// apiError is the HTTP rendition of an error.
type apiError struct {
	Status  int
	Code    string
	Message string
}

// classify maps service errors onto status codes. Only validation errors
// echo their text back; everything else gets a fixed message.
func classify(err error) apiError {
	var ve *common.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &ve):
		return apiError{http.StatusBadRequest, CodeValidation, ve.Error()}
	case errors.Is(err, common.ErrValidation):
		return apiError{http.StatusBadRequest, CodeValidation, err.Error()}
	case errors.Is(err, common.ErrEmptyMedia):
		return apiError{http.StatusBadRequest, CodeValidation, "image file is empty"}
	case errors.As(err, &tooLarge):
		return apiError{http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "request body too large"}
	case errors.Is(err, common.ErrInvalidEmailDomain):
		return apiError{http.StatusBadRequest, CodeInvalidEmailDomain, "email domain is not allowed"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return apiError{http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password"}
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		return apiError{http.StatusUnauthorized, CodeUnauthorized, "authentication required"}
	case errors.Is(err, common.ErrForbidden):
		return apiError{http.StatusForbidden, CodeForbidden, "not allowed to modify this resource"}
	case errors.Is(err, common.ErrRegistrationDisabled):
		return apiError{http.StatusForbidden, CodeRegistrationDisabled, "registration is disabled"}
	case errors.Is(err, common.ErrorNotFound):
		return apiError{http.StatusNotFound, CodeNotFound, "resource not found"}
	case errors.Is(err, common.ErrEmailInUse):
		return apiError{http.StatusConflict, CodeEmailInUse, "email already registered"}
	case errors.Is(err, common.ErrRateLimited):
		return apiError{http.StatusTooManyRequests, CodeTooManyRequests, "too many requests, slow down"}
	case errors.Is(err, common.ErrUploadFailed):
		return apiError{http.StatusInternalServerError, CodeUploadFailed, "image upload failed"}
	default:
		return apiError{http.StatusInternalServerError, CodeInternal, "internal server error"}
	}
}

// writeError renders err and logs anything that ends up as a 5xx.
func writeError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error, src store.Source) {
	e := classify(err)
	if e.Status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", "error", err, "code", e.Code)
	}
	writeJSON(w, e.Status, Envelope{
		Success: false,
		Error:   http.StatusText(e.Status),
		Code:    e.Code,
		Message: e.Message,
		Source:  src,
	})
}
