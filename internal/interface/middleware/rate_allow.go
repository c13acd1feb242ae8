package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and private-range clients
// (10/8, 172.16/12, 192.168/16).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowMethods bypasses the limiter for the given HTTP methods.
func AllowMethods(methods ...string) AllowFunc {
	return func(c *gin.Context) bool {
		for _, m := range methods {
			if c.Request.Method == m {
				return true
			}
		}
		return false
	}
}
