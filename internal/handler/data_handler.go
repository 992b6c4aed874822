package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/csvio"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

// DataHandler manages the CSV catalogs behind the optimizer.
type DataHandler struct {
	store *csvio.Store
}

// NewDataHandler builds a new handler.
func NewDataHandler(store *csvio.Store) *DataHandler {
	return &DataHandler{store: store}
}

// Metadata godoc
// @Summary File metadata for every known catalog
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data/metadata [get]
func (h *DataHandler) Metadata(c *gin.Context) {
	meta, err := h.store.Metadata()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meta)
}

// Statistics godoc
// @Summary Entity counts and weekly lesson load
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data/statistics [get]
func (h *DataHandler) Statistics(c *gin.Context) {
	stats, err := h.store.Statistics()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Validate godoc
// @Summary Validate one catalog file
// @Tags Data
// @Produce json
// @Param file path string true "Catalog file name"
// @Success 200 {object} response.Envelope
// @Router /data/validate/{file} [get]
func (h *DataHandler) Validate(c *gin.Context) {
	report, err := h.store.Validate(c.Param("file"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ValidateAll godoc
// @Summary Validate every known catalog file
// @Tags Data
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /data/validate [get]
func (h *DataHandler) ValidateAll(c *gin.Context) {
	reports, err := h.store.ValidateAll()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Upload godoc
// @Summary Replace one catalog file after validation
// @Tags Data
// @Accept multipart/form-data
// @Produce json
// @Param file path string true "Catalog file name"
// @Param file formData file true "CSV content"
// @Success 200 {object} response.Envelope
// @Router /data/upload/{file} [post]
func (h *DataHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing multipart file field"))
		return
	}
	src, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	report, err := h.store.Upload(c.Param("file"), src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Preview godoc
// @Summary Raw rows of one catalog file
// @Tags Data
// @Produce json
// @Param file path string true "Catalog file name"
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {object} response.Envelope
// @Router /data/preview/{file} [get]
func (h *DataHandler) Preview(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid limit parameter"))
			return
		}
		limit = parsed
	}
	preview, err := h.store.Preview(c.Param("file"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, preview)
}
