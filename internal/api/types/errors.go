package types

import (
	"errors"
	"net/http"

	appErr "github.com/rsfire/erp/pkg/errors"
)

func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if errors.As(err, &e) {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(err error) int {
	switch appErr.CodeOf(err) {
	case appErr.CodeInvalid, appErr.CodeInvalidDecision:
		return http.StatusBadRequest
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeAlreadyCompleted, appErr.CodeDuplicateRequest, appErr.CodeConflict:
		return http.StatusConflict
	case appErr.CodeUnavailable, appErr.CodeDeadline:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
