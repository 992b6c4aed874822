package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/solver"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
	appErrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/response"
)

type configurationService interface {
	SolverConfig() solver.Config
	UpdateSolverConfig(req dto.SolverConfigRequest) (solver.Config, error)
	SlotConfig() *timeslot.Configuration
	UpdateSlotConfig(req dto.TimeSlotConfigRequest) (*timeslot.Configuration, error)
	ResetSlotConfig() *timeslot.Configuration
	BatchYearMapping() *timeslot.BatchYearMapping
	ReplaceBatchYearMapping(identifierToLevel map[string]int) (*timeslot.BatchYearMapping, error)
	AddBatchYearMapping(req dto.BatchYearMappingRequest) (*timeslot.BatchYearMapping, error)
	RemoveBatchYearMapping(identifier string) error
}

// ConfigurationHandler exposes solver and time slot configuration endpoints.
type ConfigurationHandler struct {
	service configurationService
}

// NewConfigurationHandler builds a new handler.
func NewConfigurationHandler(service configurationService) *ConfigurationHandler {
	return &ConfigurationHandler{service: service}
}

// GetSolverConfig godoc
// @Summary Active solver configuration
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /solver/config [get]
func (h *ConfigurationHandler) GetSolverConfig(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.SolverConfig())
}

// UpdateSolverConfig godoc
// @Summary Update solver configuration
// @Tags Configuration
// @Accept json
// @Produce json
// @Param payload body dto.SolverConfigRequest true "Solver configuration"
// @Success 200 {object} response.Envelope
// @Router /solver/config [post]
func (h *ConfigurationHandler) UpdateSolverConfig(c *gin.Context) {
	var req dto.SolverConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid solver configuration payload"))
		return
	}
	cfg, err := h.service.UpdateSolverConfig(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// GetSlotConfig godoc
// @Summary Active time slot configuration
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots/config [get]
func (h *ConfigurationHandler) GetSlotConfig(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.SlotConfig())
}

// UpdateSlotConfig godoc
// @Summary Replace the time slot configuration
// @Tags Configuration
// @Accept json
// @Produce json
// @Param payload body dto.TimeSlotConfigRequest true "Time slot configuration"
// @Success 200 {object} response.Envelope
// @Router /timeslots/config [post]
func (h *ConfigurationHandler) UpdateSlotConfig(c *gin.Context) {
	var req dto.TimeSlotConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time slot configuration payload"))
		return
	}
	cfg, err := h.service.UpdateSlotConfig(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cfg)
}

// ResetSlotConfig godoc
// @Summary Restore the default time slot configuration
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots/config/reset [post]
func (h *ConfigurationHandler) ResetSlotConfig(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ResetSlotConfig())
}

// GetBatchYearMapping godoc
// @Summary Active batch-year mapping
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /batch-year-mapping [get]
func (h *ConfigurationHandler) GetBatchYearMapping(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.BatchYearMapping())
}

// ReplaceBatchYearMapping godoc
// @Summary Replace the whole batch-year mapping
// @Tags Configuration
// @Accept json
// @Produce json
// @Param payload body map[string]int true "Identifier to year level"
// @Success 200 {object} response.Envelope
// @Router /batch-year-mapping [post]
func (h *ConfigurationHandler) ReplaceBatchYearMapping(c *gin.Context) {
	var req map[string]int
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mapping payload"))
		return
	}
	mapping, err := h.service.ReplaceBatchYearMapping(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mapping)
}

// AddBatchYearMapping godoc
// @Summary Register one year identifier
// @Tags Configuration
// @Accept json
// @Produce json
// @Param payload body dto.BatchYearMappingRequest true "Mapping entry"
// @Success 201 {object} response.Envelope
// @Router /batch-year-mapping/add [post]
func (h *ConfigurationHandler) AddBatchYearMapping(c *gin.Context) {
	var req dto.BatchYearMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mapping payload"))
		return
	}
	mapping, err := h.service.AddBatchYearMapping(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mapping)
}

// RemoveBatchYearMapping godoc
// @Summary Drop one year identifier
// @Tags Configuration
// @Param yearIdentifier path string true "Year identifier"
// @Success 204
// @Router /batch-year-mapping/{yearIdentifier} [delete]
func (h *ConfigurationHandler) RemoveBatchYearMapping(c *gin.Context) {
	if err := h.service.RemoveBatchYearMapping(c.Param("yearIdentifier")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
