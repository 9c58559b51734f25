package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/sale/domain"
	"github.com/ridloal/smartshop-pos/internal/sale/service"
	userApi "github.com/ridloal/smartshop-pos/internal/user/api"
)

// CartHandler exposes the operator's cart. Every route expects
// AuthMiddleware to have run so the cart can be keyed by username.
type CartHandler struct {
	saleService service.SaleService
}

func NewCartHandler(ss service.SaleService) *CartHandler {
	return &CartHandler{saleService: ss}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/cart")
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.DELETE("", h.CancelCart)
		cartRoutes.POST("/lines", h.AddLine)
		cartRoutes.POST("/checkout", h.Checkout)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.saleService.Cart(userApi.SessionFrom(c).Username))
}

func (h *CartHandler) AddLine(c *gin.Context) {
	var req domain.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	cart, err := h.saleService.AddLine(c.Request.Context(), userApi.SessionFrom(c).Username, req.Barcode, req.Qty)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) CancelCart(c *gin.Context) {
	h.saleService.CancelCart(userApi.SessionFrom(c).Username)
	c.Status(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c *gin.Context) {
	receipt, err := h.saleService.CompleteSale(c.Request.Context(), userApi.SessionFrom(c).Username)
	if err != nil {
		if apperr.HTTPStatus(err) == http.StatusInternalServerError {
			logger.Error("Checkout Hdl: sale failed", err)
		}
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
