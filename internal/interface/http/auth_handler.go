package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

type AuthHandler struct {
	Identity *application.IdentityService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAuthHandler(identity *application.IdentityService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Identity: identity, Cookies: cookies, Logger: helpers.LoggerOrDiscard(logger)}
}

type signupRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,pwd"`
	Matric     string `json:"matric" binding:"omitempty,matric"`
	Faculty    string `json:"faculty" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func tokenMeta(pair application.TokenPair) map[string]any {
	return map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry}
}

// signIn issues the token pair for sess, sets the cookies and writes the session user.
func (h *AuthHandler) signIn(c *gin.Context, status int, sess *entity.Session, message string) {
	pair, err := h.Identity.IssueTokens(sess)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, status, sess.User, message, tokenMeta(pair))
}

// Signup POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.Identity.Signup(c.Request.Context(), application.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Matric:     req.Matric,
		Faculty:    req.Faculty,
		Department: req.Department,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.signIn(c, http.StatusCreated, sess, "account created")
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := h.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.signIn(c, http.StatusOK, sess, "login successful")
}

// Refresh POST /api/refresh. The token comes from the refresh cookie or the JSON body.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	if token == "" {
		var req refreshRequest
		_ = c.ShouldBindJSON(&req)
		token = req.RefreshToken
	}
	if token == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	sess, pair, err := h.Identity.Refresh(c.Request.Context(), token)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sess.User, "token refreshed", tokenMeta(pair))
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Identity.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
