package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Identity *application.IdentityService
	Chat     *application.ChatService
	Profile  *application.ProfileService
	Logger   *logrus.Logger
}

func NewUserHandler(identity *application.IdentityService, chat *application.ChatService, profile *application.ProfileService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Identity: identity, Chat: chat, Profile: profile, Logger: helpers.LoggerOrDiscard(logger)}
}

type updateProfileRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Matric     *string `json:"matric" binding:"omitempty,matric"`
	Faculty    *string `json:"faculty" binding:"omitempty,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Bio        *string `json:"bio" binding:"omitempty,max=500"`
	Phone      *string `json:"phone" binding:"omitempty,max=30"`
	ProfilePic *string `json:"profile_pic" binding:"omitempty,url"`
}

type searchQuery struct {
	Q    string `form:"q"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		fail(c, h.Logger, application.ErrSessionExpired)
		return
	}
	response.Success(c, http.StatusOK, sess.User, "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.Identity.UpdateProfile(c.Request.Context(), middleware.UserID(c), application.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		Matric:     req.Matric,
		Faculty:    req.Faculty,
		Department: req.Department,
		Bio:        req.Bio,
		Phone:      req.Phone,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", map[string]any{"max_bytes": maxAvatarBytes})
		return
	}
	ct := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "image/") {
		response.Error[any](c, http.StatusBadRequest, "file must be an image", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Identity.UploadAvatar(c.Request.Context(), middleware.UserID(c), f, fh.Filename, ct)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "avatar updated", nil)
}

// Activity GET /api/profile/activity
func (h *UserHandler) Activity(c *gin.Context) {
	act, err := h.Profile.Activity(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, act, "activity", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	users, err := h.Identity.SearchUsers(c.Request.Context(), strings.TrimSpace(q.Q), q.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
}

// Directory GET /api/users
func (h *UserHandler) Directory(c *gin.Context) {
	users, err := h.Identity.Directory(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
}

// SuggestedContacts GET /api/contacts/suggested
func (h *UserHandler) SuggestedContacts(c *gin.Context) {
	users, err := h.Chat.SuggestedContacts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "suggested contacts", nil)
}
