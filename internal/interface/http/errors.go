package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
	"github.com/oksasatya/go-hris/pkg/response"
)

// Error codes put in the envelope's error field so clients can tell 500s apart.
const (
	CodeSetupIncomplete   = "setup_incomplete"
	CodeStoreUnavailable  = "store_unavailable"
	CodeSearchUnavailable = "search_unavailable"
)

// failMessages are the user-facing texts for one operation.
type failMessages struct {
	Fallback string // any unexpected failure
	Conflict string
	NotFound string
}

type errorBody struct {
	Code string `json:"code"`
}

// fail maps err onto a status and a user-safe message. Store details are logged, never echoed.
func fail(c *gin.Context, logger logrus.FieldLogger, err error, msg failMessages) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		var details any
		if len(ve.Fields) > 0 {
			details = ve.Fields
		}
		response.Error[any](c, http.StatusBadRequest, ve.Message, details)
	case errors.Is(err, apperr.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, "Invalid request", nil)
	case errors.Is(err, apperr.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, apperr.ErrUnauthorized):
		response.Error[any](c, http.StatusUnauthorized, "Unauthorized", nil)
	case errors.Is(err, apperr.ErrConflict):
		response.Error[any](c, http.StatusConflict, orDefault(msg.Conflict, "Email already exists"), nil)
	case errors.Is(err, apperr.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, orDefault(msg.NotFound, "Not found"), nil)
	case errors.Is(err, apperr.ErrReferenced):
		response.Error[any](c, http.StatusBadRequest, "Cannot delete user: user has related records (employees, etc.)", nil)
	case errors.Is(err, apperr.ErrInvalidReference):
		response.Error[any](c, http.StatusBadRequest, "Role or organization does not exist", nil)
	case errors.Is(err, apperr.ErrSetupIncomplete):
		logFailure(c, logger, err, "database setup incomplete")
		response.Error[any](c, http.StatusInternalServerError,
			"Database setup incomplete. Run the seed step and try again.", errorBody{Code: CodeSetupIncomplete})
	case errors.Is(err, apperr.ErrStoreUnavailable):
		logFailure(c, logger, err, "store unavailable")
		response.Error[any](c, http.StatusInternalServerError,
			"Database unavailable. Please try again later.", errorBody{Code: CodeStoreUnavailable})
	case errors.Is(err, apperr.ErrSearchUnavailable):
		logFailure(c, logger, err, "search index unavailable")
		response.Error[any](c, http.StatusInternalServerError,
			"Search is temporarily unavailable. Please try again later.", errorBody{Code: CodeSearchUnavailable})
	default:
		logFailure(c, logger, err, msg.Fallback)
		response.Error[any](c, http.StatusInternalServerError, orDefault(msg.Fallback, "Internal server error"), nil)
	}
}

func logFailure(c *gin.Context, logger logrus.FieldLogger, err error, what string) {
	if logger == nil {
		return
	}
	logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	}).WithError(err).Error(what)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
