package httpx

import (
	"net/http"

	apperrors "github.com/readyplan/ready-api/internal/errors"
)

// WriteAppError maps an application error to a JSON error response.
// Unknown errors become 500s without leaking internals into the error code.
func WriteAppError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	errCode := "internal_error"

	switch {
	case apperrors.IsValidation(err):
		code, errCode = http.StatusBadRequest, "validation_failed"
	case apperrors.IsNotFound(err):
		code, errCode = http.StatusNotFound, "not_found"
	case apperrors.IsConflict(err), apperrors.IsForeignKey(err):
		code, errCode = http.StatusConflict, "conflict"
	case apperrors.IsUnauthorized(err):
		code, errCode = http.StatusUnauthorized, "authentication_required"
	case apperrors.IsForbidden(err):
		code, errCode = http.StatusForbidden, "insufficient_permissions"
	case apperrors.IsUnavailable(err):
		code, errCode = http.StatusBadGateway, "upstream_unavailable"
	case apperrors.IsTimeout(err):
		code, errCode = http.StatusGatewayTimeout, "upstream_timeout"
	}

	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}
