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

type MarketplaceHandler struct {
	Svc    *application.MarketplaceService
	Logger *logrus.Logger
}

func NewMarketplaceHandler(svc *application.MarketplaceService, logger *logrus.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{Svc: svc, Logger: helpers.LoggerOrDiscard(logger)}
}

type createItemRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"max=2000"`
	Price       string `json:"price" binding:"required,max=20"`
	Category    string `json:"category" binding:"required"`
	Condition   string `json:"condition" binding:"omitempty,condition"`
	Image       string `json:"image" binding:"omitempty,url"`
}

type itemQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	SellerID string `form:"seller_id"`
}

// List GET /api/marketplace?search=&category=&seller_id=
func (h *MarketplaceHandler) List(c *gin.Context) {
	var q itemQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	items, err := h.Svc.List(c.Request.Context(), application.MarketplaceFilter(q))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "marketplace", map[string]any{
		"count":      len(items),
		"categories": entity.MarketplaceCategories,
	})
}

// Create POST /api/marketplace
func (h *MarketplaceHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.Svc.Create(c.Request.Context(), actor(c), application.NewMarketplaceItem(req))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, item, "item listed", nil)
}

// Delete DELETE /api/marketplace/:id
func (h *MarketplaceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "item removed", nil)
}
