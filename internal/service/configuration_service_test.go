package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

func slotConfigRequest() dto.TimeSlotConfigRequest {
	lecture := []dto.TimeSlotDefinitionRequest{
		{StartTime: "09:00", EndTime: "10:30", SlotType: "LECTURE"},
		{StartTime: "11:00", EndTime: "12:30", SlotType: "LECTURE"},
	}
	lab := []dto.TimeSlotDefinitionRequest{
		{StartTime: "14:00", EndTime: "16:00", SlotType: "LAB"},
	}
	return dto.TimeSlotConfigRequest{
		Year1Slots: append(lecture, lab...),
		Year2Slots: append(lecture, lab...),
		Year3Slots: lecture,
		Year4Slots: lecture,
		MinorSlots: []dto.TimeSlotDefinitionRequest{
			{StartTime: "08:00", EndTime: "09:00", SlotType: "MINOR"},
		},
		PreferredStartTime:         "09:00",
		MaxGapMinutes:              90,
		MaxTeacherGapMinutes:       120,
		TargetDailyLessonsPerBatch: 4,
	}
}

func TestUpdateSlotConfig(t *testing.T) {
	svc := newTestService(t, 1)

	cfg, err := svc.UpdateSlotConfig(slotConfigRequest())
	require.NoError(t, err)
	assert.Len(t, cfg.Year1Slots, 3)
	assert.Len(t, cfg.Year3Slots, 2)
	assert.Equal(t, "09:00", cfg.PreferredStartTime)
	assert.Same(t, cfg, svc.SlotConfig())
}

func TestUpdateSlotConfigPreservesMapping(t *testing.T) {
	svc := newTestService(t, 1)
	before := svc.BatchYearMapping()

	cfg, err := svc.UpdateSlotConfig(slotConfigRequest())
	require.NoError(t, err)
	assert.Same(t, before, cfg.BatchYearMapping)
}

func TestUpdateSlotConfigRejectsBadTime(t *testing.T) {
	svc := newTestService(t, 1)

	req := slotConfigRequest()
	req.Year1Slots[0].StartTime = "25:00"
	_, err := svc.UpdateSlotConfig(req)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}

func TestResetSlotConfig(t *testing.T) {
	svc := newTestService(t, 1)

	_, err := svc.UpdateSlotConfig(slotConfigRequest())
	require.NoError(t, err)

	cfg := svc.ResetSlotConfig()
	defaults := timeslot.DefaultConfiguration()
	assert.Len(t, cfg.Year1Slots, len(defaults.Year1Slots))
	assert.Equal(t, defaults.PreferredStartTime, cfg.PreferredStartTime)
}

func TestBatchYearMappingLifecycle(t *testing.T) {
	svc := newTestService(t, 1)

	mapping, err := svc.AddBatchYearMapping(dto.BatchYearMappingRequest{
		YearIdentifier: "2027",
		YearLevel:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mapping.IdentifierToLevel["2027"])

	require.NoError(t, svc.RemoveBatchYearMapping("2027"))

	err = svc.RemoveBatchYearMapping("2027")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound.Code, appErr.Code)
}

func TestReplaceBatchYearMapping(t *testing.T) {
	svc := newTestService(t, 1)

	mapping, err := svc.ReplaceBatchYearMapping(map[string]int{"2026": 1, "2025": 2})
	require.NoError(t, err)
	assert.Len(t, mapping.IdentifierToLevel, 2)
	assert.Same(t, mapping, svc.BatchYearMapping())

	_, err = svc.ReplaceBatchYearMapping(map[string]int{"2026": 9})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}
