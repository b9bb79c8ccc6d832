package handlers

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/api/validate"
	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/logger"
	"github.com/baharkarakas/blog-backend/internal/services"
	"github.com/baharkarakas/blog-backend/internal/validation"
)

type errMapping struct {
	target error
	status int
	code   string
	msg    string
}

// Order matters only for errors wrapping more than one sentinel.
var errTable = []errMapping{
	{services.ErrUserAlreadyExists, http.StatusBadRequest, "USER_ALREADY_EXISTS", "a user with this email already exists"},
	{services.ErrUserNotFound, http.StatusUnauthorized, "USER_NOT_FOUND", "no user with this email"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_PASSWORD", "invalid login or password"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token"},
	{services.ErrPostNotFound, http.StatusNotFound, "POST_NOT_FOUND", "post not found"},
	{services.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "you can only modify your own posts"},
	{services.ErrUpdateFailed, http.StatusInternalServerError, "UPDATE_FAILED", "could not update post"},
	{services.ErrDeleteFailed, http.StatusInternalServerError, "DELETE_FAILED", "could not delete post"},
}

// writeServiceError maps a service error to a fixed status and tag. Anything
// unrecognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.Errs
	if errors.As(err, &verrs) {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", verrs)
		return
	}
	for _, m := range errTable {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
			}
			httpx.WriteError(w, m.status, m.code, m.msg, nil)
			return
		}
	}
	logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", nil)
}

// decode reads and structurally validates a request body.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeServiceError(w, r, err)
		return false
	}
	return true
}
