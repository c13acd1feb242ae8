package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/pkg/response"
	"github.com/oksasatya/campus-connect/pkg/validation"
)

// statusOf maps service errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, application.ErrInvalidCredentials), errors.Is(err, application.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrNotParticipant), errors.Is(err, application.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrConversationNotFound),
		errors.Is(err, application.ErrListingNotFound),
		errors.Is(err, application.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrUploadsNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// fail writes the error envelope for a service error. Unexpected errors are
// logged and reported without detail.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status := statusOf(err)
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, status, "validation failed", verr.Fields)
	case status == http.StatusInternalServerError:
		logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		}).Error("request failed")
		response.Error[any](c, status, "internal server error", nil)
	default:
		response.Error[any](c, status, err.Error(), nil)
	}
}

func badRequest(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}

// actor is the signed-in user as recorded on activities and listings.
func actor(c *gin.Context) entity.Actor {
	a := entity.Actor{ID: middleware.UserID(c)}
	if sess, ok := middleware.CurrentSession(c); ok {
		a.Name = sess.User.Name
	}
	return a
}
