package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

type ResourceHandler struct {
	Svc    *application.ResourceService
	Logger *logrus.Logger
}

func NewResourceHandler(svc *application.ResourceService, logger *logrus.Logger) *ResourceHandler {
	return &ResourceHandler{Svc: svc, Logger: helpers.LoggerOrDiscard(logger)}
}

type createResourceRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Link        string `json:"link" binding:"required,url"`
	Category    string `json:"category" binding:"required"`
	Course      string `json:"course" binding:"required,coursecode"`
	Year        string `json:"year" binding:"max=20"`
}

type resourceQuery struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	Course     string `form:"course"`
	UploaderID string `form:"uploader_id"`
}

// List GET /api/resources?search=&category=&course=&uploader_id=
func (h *ResourceHandler) List(c *gin.Context) {
	var q resourceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	list, err := h.Svc.List(c.Request.Context(), application.ResourceFilter(q))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "resources", map[string]any{
		"count":      len(list),
		"categories": entity.ResourceCategories,
	})
}

// Courses GET /api/resources/courses
func (h *ResourceHandler) Courses(c *gin.Context) {
	courses, err := h.Svc.Courses(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, courses, "courses", nil)
}

// Create POST /api/resources
func (h *ResourceHandler) Create(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.Create(c.Request.Context(), actor(c), application.NewResource(req))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "resource shared", nil)
}

// Download POST /api/resources/:id/download counts the download and returns the link.
func (h *ResourceHandler) Download(c *gin.Context) {
	res, err := h.Svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, "download recorded", map[string]any{"link": res.Link})
}
