package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/ridloal/smartshop-pos/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(ps service.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.POST("", h.AddProduct)
		productRoutes.GET("/:barcode", h.LookupProduct)
		productRoutes.POST("/:barcode/restock", h.Restock)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("ListProducts: service error", err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	product, err := h.productService.AddProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) LookupProduct(c *gin.Context) {
	lookup, err := h.productService.LookupByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, lookup)
}

func (h *ProductHandler) Restock(c *gin.Context) {
	var req domain.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	lookup, err := h.productService.Restock(c.Request.Context(), c.Param("barcode"), req.Qty)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, lookup)
}
