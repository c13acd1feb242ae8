package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

// SessionLookup loads the stored session for a user. *application.IdentityService satisfies it.
type SessionLookup interface {
	Session(ctx context.Context, userID string) (*entity.Session, error)
}

// Auth validates the access token and ensures it belongs to the user's current session.
// It sets userID and session in the Gin context on success.
func Auth(jwt *helpers.JWTManager, sessions SessionLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", err.Error())
			return
		}

		sess, err := sessions.Session(c.Request.Context(), claims.UserID)
		if err != nil || sess.ID != claims.SessionID {
			response.Abort(c, http.StatusUnauthorized, "session not found", nil)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxSessionKey, sess)
		c.Next()
	}
}
