package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

type timetableService interface {
	Generate(ctx context.Context) (*dto.RunView, error)
	Status() *dto.RunView
	Timetable() (*dto.TimetableView, error)
	TimetableForBatch(batchID int64) (*dto.TimetableView, error)
	TimetableForFaculty(facultyID int64) (*dto.TimetableView, error)
	TimetableForRoom(roomID int64) (*dto.TimetableView, error)
}

// TimetableHandler exposes generation and timetable read endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler builds a new handler.
func NewTimetableHandler(service timetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// Generate godoc
// @Summary Queue a timetable generation run
// @Tags Timetable
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	run, err := h.service.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, run)
}

// Status godoc
// @Summary Report the current or most recent run
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/status [get]
func (h *TimetableHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Status())
}

// Get godoc
// @Summary Latest generated timetable with score breakdown
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	view, err := h.service.Timetable()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ByBatch godoc
// @Summary Timetable filtered to one batch
// @Tags Timetable
// @Produce json
// @Param id path int true "Batch ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/batch/{id} [get]
func (h *TimetableHandler) ByBatch(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.TimetableForBatch(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ByFaculty godoc
// @Summary Timetable filtered to one faculty member
// @Tags Timetable
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/faculty/{id} [get]
func (h *TimetableHandler) ByFaculty(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.TimetableForFaculty(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// ByRoom godoc
// @Summary Timetable filtered to one room
// @Tags Timetable
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /timetable/room/{id} [get]
func (h *TimetableHandler) ByRoom(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.TimetableForRoom(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
