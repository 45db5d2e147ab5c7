package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodikal/ny-backend/internal/report"
	"github.com/foodikal/ny-backend/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetWorkbookData returns the raw aggregation as JSON.
func (h *ReportHandler) GetWorkbookData(c *gin.Context) {
	data, err := h.reportService.WorkbookData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// GenerateWorkbook streams the generated xlsx as a download. The range query
// parameter selects full_week (default), first_half or second_half.
func (h *ReportHandler) GenerateWorkbook(c *gin.Context) {
	filename, data, err := h.reportService.GenerateWorkbook(c.Request.Context(), c.Query("range"))
	if err != nil {
		if errors.Is(err, report.ErrInvalidPreset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate workbook"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, report.ContentType, data)
}

func (h *ReportHandler) ListArchivedWorkbooks(c *gin.Context) {
	archived, err := h.reportService.ListArchived(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archived workbooks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workbooks": archived})
}

// GetArchivedWorkbook serves a past run by its archive key.
func (h *ReportHandler) GetArchivedWorkbook(c *gin.Context) {
	key := c.Query("key")
	if key == "" || strings.Contains(key, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "workbook key is required"})
		return
	}

	data, err := h.reportService.GetArchived(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "archived workbook not found"})
		return
	}
	c.Data(http.StatusOK, report.ContentType, data)
}
