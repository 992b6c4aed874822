package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/service"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

type exportService interface {
	Export(format service.ExportFormat, scope service.ExportScope) (*service.ExportResult, error)
}

// ExportHandler streams rendered timetable files.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// CSV godoc
// @Summary Download the latest timetable as CSV
// @Tags Export
// @Produce text/csv
// @Param batchId query int false "Batch ID"
// @Param facultyId query int false "Faculty ID"
// @Param roomId query int false "Room ID"
// @Success 200 {file} file
// @Router /export/csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.export(c, service.ExportFormatCSV)
}

// PDF godoc
// @Summary Download the latest timetable as PDF
// @Tags Export
// @Produce application/pdf
// @Param batchId query int false "Batch ID"
// @Param facultyId query int false "Faculty ID"
// @Param roomId query int false "Room ID"
// @Success 200 {file} file
// @Router /export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.export(c, service.ExportFormatPDF)
}

func (h *ExportHandler) export(c *gin.Context, format service.ExportFormat) {
	scope, err := scopeFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Export(format, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func scopeFromQuery(c *gin.Context) (service.ExportScope, error) {
	var scope service.ExportScope
	if raw := c.Query("batchId"); raw != "" {
		id, err := parseQueryID(raw, "batchId")
		if err != nil {
			return scope, err
		}
		scope.BatchID = &id
	}
	if raw := c.Query("facultyId"); raw != "" {
		id, err := parseQueryID(raw, "facultyId")
		if err != nil {
			return scope, err
		}
		scope.FacultyID = &id
	}
	if raw := c.Query("roomId"); raw != "" {
		id, err := parseQueryID(raw, "roomId")
		if err != nil {
			return scope, err
		}
		scope.RoomID = &id
	}
	return scope, nil
}
