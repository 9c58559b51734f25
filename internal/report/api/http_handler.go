package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/report/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(rs service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reportRoutes := router.Group("/reports")
	{
		reportRoutes.GET("/sales.csv", h.ExportSales)
		reportRoutes.GET("/summary", h.Summary)
	}
}

// ExportSales buffers the CSV so a failed read still gets a JSON error.
func (h *ReportHandler) ExportSales(c *gin.Context) {
	var buf bytes.Buffer
	rows, err := h.reportService.ExportSales(c.Request.Context(), &buf)
	if err != nil {
		logger.Error("ExportSales Hdl: export failed", err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales_report.csv"`)
	c.Header("X-Row-Count", strconv.Itoa(rows))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}
	c.JSON(http.StatusOK, summary)
}
