package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/solver"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

// Configuration operations. Updates apply to the next generation run; a run
// already in flight keeps the configuration it started with. Requests are
// validated here rather than relying on gin's binding so programmatic
// callers get the same checks.
var validate = validator.New()

// SolverConfig returns the active solver configuration.
func (s *TimetableService) SolverConfig() solver.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.solverCfg
}

// UpdateSolverConfig merges the request into the active solver
// configuration after validation.
func (s *TimetableService) UpdateSolverConfig(req dto.SolverConfigRequest) (solver.Config, error) {
	if err := validate.Struct(req); err != nil {
		return solver.Config{}, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, "invalid solver configuration")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.solverCfg
	next.TerminationMinutes = req.TerminationMinutes
	next.TerminationSeconds = req.TerminationSeconds
	next.BestScoreLimit = req.BestScoreLimit
	next.UnimprovedSecondsLimit = req.UnimprovedSecondsLimit
	if req.LateAcceptanceSize != nil {
		next.LateAcceptanceSize = *req.LateAcceptanceSize
	}
	if req.Seed != nil {
		next.Seed = *req.Seed
	}
	if err := next.Validate(); err != nil {
		return solver.Config{}, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}
	s.solverCfg = next
	s.log.Info("solver configuration updated")
	return next, nil
}

// SlotConfig returns the active time slot configuration.
func (s *TimetableService) SlotConfig() *timeslot.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotCfg
}

// UpdateSlotConfig replaces the time slot configuration. The existing
// batch-year mapping is preserved; the mapping has its own endpoints.
func (s *TimetableService) UpdateSlotConfig(req dto.TimeSlotConfigRequest) (*timeslot.Configuration, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, "invalid time slot configuration")
	}
	next, err := slotConfigFromRequest(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next.BatchYearMapping = s.slotCfg.BatchYearMapping
	if err := next.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}
	s.slotCfg = next
	s.log.Info("time slot configuration updated")
	return next, nil
}

// ResetSlotConfig restores the default slot catalog and thresholds,
// including the default batch-year mapping.
func (s *TimetableService) ResetSlotConfig() *timeslot.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotCfg = timeslot.DefaultConfiguration()
	s.log.Info("time slot configuration reset to defaults")
	return s.slotCfg
}

// BatchYearMapping returns the active mapping.
func (s *TimetableService) BatchYearMapping() *timeslot.BatchYearMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotCfg.BatchYearMapping
}

// ReplaceBatchYearMapping swaps the whole mapping.
func (s *TimetableService) ReplaceBatchYearMapping(identifierToLevel map[string]int) (*timeslot.BatchYearMapping, error) {
	next := timeslot.NewBatchYearMapping()
	for identifier, level := range identifierToLevel {
		if err := next.AddMapping(identifier, level); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
				apperrors.ErrValidation.Status, err.Error())
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotCfg.BatchYearMapping = next
	return next, nil
}

// AddBatchYearMapping registers a single identifier.
func (s *TimetableService) AddBatchYearMapping(req dto.BatchYearMappingRequest) (*timeslot.BatchYearMapping, error) {
	if err := validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, "invalid mapping entry")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slotCfg.BatchYearMapping.AddMapping(req.YearIdentifier, req.YearLevel); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}
	return s.slotCfg.BatchYearMapping, nil
}

// RemoveBatchYearMapping drops an identifier; unknown identifiers are a 404.
func (s *TimetableService) RemoveBatchYearMapping(identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mapping := s.slotCfg.BatchYearMapping
	if _, ok := mapping.IdentifierToLevel[identifier]; !ok {
		return apperrors.Clone(apperrors.ErrNotFound, "year identifier not mapped")
	}
	mapping.RemoveMapping(identifier)
	return nil
}

func slotConfigFromRequest(req dto.TimeSlotConfigRequest) (*timeslot.Configuration, error) {
	cfg := &timeslot.Configuration{
		PreferredStartTime:                req.PreferredStartTime,
		MaxGapMinutes:                     req.MaxGapMinutes,
		MaxTeacherGapMinutes:              req.MaxTeacherGapMinutes,
		ConsecutiveLessonBufferMinutes:    req.ConsecutiveLessonBufferMinutes,
		MinimumBreakBetweenClassesMinutes: req.MinimumBreakBetweenClassesMinutes,
		TargetDailyLessonsPerBatch:        req.TargetDailyLessonsPerBatch,
		AllowedDailyLessonsVariance:       req.AllowedDailyLessonsVariance,
	}

	var err error
	if cfg.Year1Slots, err = definitionsFromRequest(req.Year1Slots); err != nil {
		return nil, err
	}
	if cfg.Year2Slots, err = definitionsFromRequest(req.Year2Slots); err != nil {
		return nil, err
	}
	if cfg.Year3Slots, err = definitionsFromRequest(req.Year3Slots); err != nil {
		return nil, err
	}
	if cfg.Year4Slots, err = definitionsFromRequest(req.Year4Slots); err != nil {
		return nil, err
	}
	if cfg.MinorSlots, err = definitionsFromRequest(req.MinorSlots); err != nil {
		return nil, err
	}

	defaults := timeslot.DefaultConfiguration()
	cfg.JuniorLunchPeriod = defaults.JuniorLunchPeriod
	cfg.SeniorLunchPeriod = defaults.SeniorLunchPeriod
	if req.JuniorLunchPeriod != nil {
		cfg.JuniorLunchPeriod = timeslot.LunchPeriod{
			StartTime: req.JuniorLunchPeriod.StartTime,
			EndTime:   req.JuniorLunchPeriod.EndTime,
		}
	}
	if req.SeniorLunchPeriod != nil {
		cfg.SeniorLunchPeriod = timeslot.LunchPeriod{
			StartTime: req.SeniorLunchPeriod.StartTime,
			EndTime:   req.SeniorLunchPeriod.EndTime,
		}
	}
	return cfg, nil
}

func definitionsFromRequest(defs []dto.TimeSlotDefinitionRequest) ([]timeslot.Definition, error) {
	out := make([]timeslot.Definition, 0, len(defs))
	for _, d := range defs {
		def := timeslot.Definition{
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			SlotType:  domain.SlotType(d.SlotType),
		}
		if _, err := def.Start(); err != nil {
			return nil, err
		}
		if _, err := def.End(); err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}
