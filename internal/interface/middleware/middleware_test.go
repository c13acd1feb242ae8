package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

type sessions map[string]*entity.Session

func (s sessions) Session(_ context.Context, userID string) (*entity.Session, error) {
	if sess, ok := s[userID]; ok {
		return sess, nil
	}
	return nil, errors.New("session expired")
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	store := sessions{"u1": {ID: "s1", User: entity.User{ID: "u1", Name: "Ada"}}}

	r := gin.New()
	r.GET("/me", Auth(jwt, store), func(c *gin.Context) {
		sess, _ := CurrentSession(c)
		c.String(http.StatusOK, UserID(c)+":"+sess.User.Name)
	})

	current, _, _ := jwt.GenerateAccessToken("u1", "s1")
	stale, _, _ := jwt.GenerateAccessToken("u1", "s0")
	unknown, _, _ := jwt.GenerateAccessToken("u2", "s2")
	refresh, _, _ := jwt.GenerateRefreshToken("u1", "s1")

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer " + current, "", http.StatusOK},
		{"lowercase bearer", "bearer " + current, "", http.StatusOK},
		{"cookie", "", current, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"stale session", "Bearer " + stale, "", http.StatusUnauthorized},
		{"no session", "Bearer " + unknown, "", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, "", http.StatusUnauthorized},
		{"garbage", "Bearer abc", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, expected %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "u1:Ada" {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestRealIPAndRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxRealIPKey)+" "+c.GetString("request_id"))
	})

	tests := []struct {
		name    string
		headers map[string]string
		wantIP  string
	}{
		{"cloudflare", map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.8"}, "203.0.113.8"},
		{"forwarded left-most", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"bad header ignored", map[string]string{"CF-Connecting-IP": "not-an-ip"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			id := rec.Header().Get(HeaderRequestID)
			if want := tt.wantIP + " " + id; rec.Body.String() != want || id == "" {
				t.Errorf("body = %q, expected %q", rec.Body.String(), want)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	const given = "3f2b8c1e-9d4a-4f6b-8a2e-1c5d7e9f0a1b"
	req.Header.Set(HeaderRequestID, given)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(HeaderRequestID) != given {
		t.Errorf("incoming request id not reused: %q", rec.Header().Get(HeaderRequestID))
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIPAndPath("t:"), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent || rec.Header().Get("X-RateLimit-Limit") != "" {
			t.Fatalf("request %d: status %d, headers %v", i, rec.Code, rec.Header())
		}
	}
}

func TestAllowFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodOptions, "/", nil)

	c.Set(CtxRealIPKey, "10.1.2.3")
	if !AllowPrivateIP()(c) {
		t.Error("private address should bypass")
	}
	c.Set(CtxRealIPKey, "8.8.8.8")
	if AllowPrivateIP()(c) {
		t.Error("public address should not bypass")
	}
	if !AllowMethods(http.MethodOptions)(c) || AllowMethods(http.MethodGet)(c) {
		t.Error("AllowMethods mismatch")
	}
	if got := KeyByUserID("p:")(c); got != "p:rl:user:anon:ip:8.8.8.8" {
		t.Errorf("anonymous key = %q", got)
	}
}
