package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

const (
	CtxUserIDKey  = "userID"
	CtxSessionKey = "session"
)

// accessToken reads the access token from the access cookie, then from an
// "Authorization: Bearer" header.
func accessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

// CurrentSession returns the session loaded by Auth.
func CurrentSession(c *gin.Context) (*entity.Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*entity.Session)
	return sess, ok && sess != nil
}
