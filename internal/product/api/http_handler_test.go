package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/product/domain"
	"github.com/ridloal/smartshop-pos/internal/product/repository"
	"github.com/ridloal/smartshop-pos/internal/product/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(h *ProductHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestProductHandler_AddProduct(t *testing.T) {
	mockSvc := new(mocks.MockProductService)
	router := newTestRouter(NewProductHandler(mockSvc))

	t.Run("Created", func(t *testing.T) {
		mockSvc.On("AddProduct", mock.Anything, mock.MatchedBy(func(r domain.CreateProductRequest) bool {
			return r.Barcode == "123" && r.SellPrice.Equal(decimal.RequireFromString("2.5"))
		})).Return(&domain.Product{ID: 7, Barcode: "123", Name: "Milk"}, nil).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products",
			bytes.NewBufferString(`{"barcode":"123","name":"Milk","buy_price":"1.2","sell_price":"2.5","qty":3}`)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Duplicate barcode", func(t *testing.T) {
		mockSvc.On("AddProduct", mock.Anything, mock.Anything).Return(nil, repository.ErrBarcodeConflict).Once()

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products",
			bytes.NewBufferString(`{"barcode":"123","name":"Milk"}`)))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":"a product with this barcode already exists"}`, w.Body.String())
	})

	t.Run("Malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products",
			bytes.NewBufferString(`{"barcode":`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Lookup(t *testing.T) {
	mockSvc := new(mocks.MockProductService)
	router := newTestRouter(NewProductHandler(mockSvc))

	mockSvc.On("LookupByBarcode", mock.Anything, "123").Return(&domain.ProductLookup{
		Barcode: "123", Name: "Milk", SellPrice: decimal.RequireFromString("2.50"), Qty: 4,
	}, nil).Once()
	mockSvc.On("LookupByBarcode", mock.Anything, "404").Return(nil, repository.ErrProductNotFound).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/123", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Milk"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, w.Body.String())

	mockSvc.AssertExpectations(t)
}

func TestProductHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockProductService)
	router := newTestRouter(NewProductHandler(mockSvc))

	mockSvc.On("ListProducts", mock.Anything).Return([]domain.Product{}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestProductHandler_Restock(t *testing.T) {
	mockSvc := new(mocks.MockProductService)
	router := newTestRouter(NewProductHandler(mockSvc))

	mockSvc.On("Restock", mock.Anything, "123", 6).Return(&domain.ProductLookup{Barcode: "123", Name: "Milk", Qty: 10}, nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products/123/restock",
		bytes.NewBufferString(`{"qty":6}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"qty":10`)
	mockSvc.AssertExpectations(t)
}
