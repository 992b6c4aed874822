package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

type catalogService interface {
	Faculty() ([]dto.FacultyView, error)
	Rooms() ([]dto.RoomView, error)
	Batches() ([]dto.BatchView, error)
	Courses() ([]dto.CourseView, error)
}

// CatalogHandler exposes read access to the scheduling entities.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Faculty godoc
// @Summary List faculty members
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /faculty [get]
func (h *CatalogHandler) Faculty(c *gin.Context) {
	items, err := h.service.Faculty()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Rooms godoc
// @Summary List rooms
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *CatalogHandler) Rooms(c *gin.Context) {
	items, err := h.service.Rooms()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Batches godoc
// @Summary List student batches
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *CatalogHandler) Batches(c *gin.Context) {
	items, err := h.service.Batches()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Courses godoc
// @Summary List courses, minors included
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	items, err := h.service.Courses()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
