package timeslot

import (
	"fmt"

	"github.com/noah-isme/timetable-engine/internal/domain"
)

// Definition is one slot template: a start/end window plus the session kind
// it is carved out for. Times are 24h "HH:MM" strings so configurations stay
// serialization-friendly at the API boundary.
type Definition struct {
	StartTime string          `json:"startTime" validate:"required"`
	EndTime   string          `json:"endTime" validate:"required"`
	SlotType  domain.SlotType `json:"slotType" validate:"required,oneof=LECTURE LAB MINOR"`
}

// Start parses the start time; invalid strings fail Validate first.
func (d Definition) Start() (domain.TimeOfDay, error) {
	return domain.ParseTimeOfDay(d.StartTime)
}

// End parses the end time.
func (d Definition) End() (domain.TimeOfDay, error) {
	return domain.ParseTimeOfDay(d.EndTime)
}

// LunchPeriod is an exclusive time window during which no lesson may start.
type LunchPeriod struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Within reports whether t falls strictly inside the period.
func (p LunchPeriod) Within(t domain.TimeOfDay) bool {
	start, err := domain.ParseTimeOfDay(p.StartTime)
	if err != nil {
		return false
	}
	end, err := domain.ParseTimeOfDay(p.EndTime)
	if err != nil {
		return false
	}
	return t.After(start) && t.Before(end)
}

// Configuration carries the per-year slot catalogs, the minor slot catalog,
// the batch-year mapping and every tunable threshold the score calculator
// reads. It is an explicit value threaded through the scorer and solver; no
// package-level state.
type Configuration struct {
	Year1Slots []Definition `json:"year1Slots"`
	Year2Slots []Definition `json:"year2Slots"`
	Year3Slots []Definition `json:"year3Slots"`
	Year4Slots []Definition `json:"year4Slots"`
	MinorSlots []Definition `json:"minorSlots"`

	BatchYearMapping *BatchYearMapping `json:"batchYearMapping"`

	PreferredStartTime                string `json:"preferredStartTime"`
	MaxGapMinutes                     int    `json:"maxGapMinutes"`
	MaxTeacherGapMinutes              int    `json:"maxTeacherGapMinutes"`
	ConsecutiveLessonBufferMinutes    int    `json:"consecutiveLessonBufferMinutes"`
	MinimumBreakBetweenClassesMinutes int    `json:"minimumBreakBetweenClassesMinutes"`
	TargetDailyLessonsPerBatch        int    `json:"targetDailyLessonsPerBatch"`
	AllowedDailyLessonsVariance       int    `json:"allowedDailyLessonsVariance"`

	JuniorLunchPeriod LunchPeriod `json:"juniorLunchPeriod"`
	SeniorLunchPeriod LunchPeriod `json:"seniorLunchPeriod"`
}

// DefaultConfiguration mirrors the institute's standing catalog: five
// lecture-heavy windows for juniors, lab windows per year, two minor windows
// at the edges of the day, and the current batch-year mappings.
func DefaultConfiguration() *Configuration {
	cfg := &Configuration{
		Year1Slots: []Definition{
			{StartTime: "09:00", EndTime: "10:30", SlotType: domain.SlotTypeLecture},
			{StartTime: "10:45", EndTime: "12:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "12:15", EndTime: "13:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "14:30", EndTime: "16:00", SlotType: domain.SlotTypeLecture},
			{StartTime: "16:15", EndTime: "17:45", SlotType: domain.SlotTypeLecture},
			{StartTime: "11:15", EndTime: "13:15", SlotType: domain.SlotTypeLab},
			{StartTime: "14:30", EndTime: "16:30", SlotType: domain.SlotTypeLab},
		},
		Year2Slots: []Definition{
			{StartTime: "09:00", EndTime: "10:30", SlotType: domain.SlotTypeLecture},
			{StartTime: "10:45", EndTime: "12:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "12:15", EndTime: "13:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "14:30", EndTime: "16:00", SlotType: domain.SlotTypeLecture},
			{StartTime: "14:30", EndTime: "16:30", SlotType: domain.SlotTypeLab},
		},
		Year3Slots: []Definition{
			{StartTime: "09:00", EndTime: "10:30", SlotType: domain.SlotTypeLecture},
			{StartTime: "11:15", EndTime: "12:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "13:30", EndTime: "15:00", SlotType: domain.SlotTypeLecture},
			{StartTime: "15:15", EndTime: "16:45", SlotType: domain.SlotTypeLecture},
			{StartTime: "17:00", EndTime: "18:00", SlotType: domain.SlotTypeLecture},
			{StartTime: "09:00", EndTime: "11:00", SlotType: domain.SlotTypeLab},
		},
		Year4Slots: []Definition{
			{StartTime: "09:00", EndTime: "10:30", SlotType: domain.SlotTypeLecture},
			{StartTime: "13:30", EndTime: "14:30", SlotType: domain.SlotTypeLecture},
			{StartTime: "14:45", EndTime: "16:15", SlotType: domain.SlotTypeLecture},
			{StartTime: "16:30", EndTime: "18:00", SlotType: domain.SlotTypeLecture},
		},
		MinorSlots: []Definition{
			{StartTime: "08:00", EndTime: "09:00", SlotType: domain.SlotTypeMinor},
			{StartTime: "18:00", EndTime: "19:30", SlotType: domain.SlotTypeMinor},
		},
		BatchYearMapping:                  NewBatchYearMapping(),
		PreferredStartTime:                "09:00",
		MaxGapMinutes:                     60,
		MaxTeacherGapMinutes:              90,
		ConsecutiveLessonBufferMinutes:    5,
		MinimumBreakBetweenClassesMinutes: 15,
		TargetDailyLessonsPerBatch:        4,
		AllowedDailyLessonsVariance:       1,
		JuniorLunchPeriod:                 LunchPeriod{StartTime: "13:14", EndTime: "14:31"},
		SeniorLunchPeriod:                 LunchPeriod{StartTime: "12:14", EndTime: "13:16"},
	}
	// Standing mappings for the current academic year.
	_ = cfg.BatchYearMapping.AddMapping("2024", 1)
	_ = cfg.BatchYearMapping.AddMapping("2023", 2)
	_ = cfg.BatchYearMapping.AddMapping("2022", 3)
	_ = cfg.BatchYearMapping.AddMapping("2021", 4)
	return cfg
}

// SlotsByYearLevel returns the slot catalog for a year level, falling back
// to year 1 for out-of-range values.
func (c *Configuration) SlotsByYearLevel(level int) []Definition {
	switch level {
	case 2:
		return c.Year2Slots
	case 3:
		return c.Year3Slots
	case 4:
		return c.Year4Slots
	default:
		return c.Year1Slots
	}
}

// SlotsForBatchName resolves a batch name through the mapping and returns
// that year level's slot catalog.
func (c *Configuration) SlotsForBatchName(batchName string) []Definition {
	if c.BatchYearMapping == nil {
		return c.Year1Slots
	}
	return c.SlotsByYearLevel(c.BatchYearMapping.YearLevel(batchName))
}

// LunchPeriodForYearLevel returns the junior lunch for years 1-2 and the
// senior lunch otherwise.
func (c *Configuration) LunchPeriodForYearLevel(level int) LunchPeriod {
	if level <= 2 {
		return c.JuniorLunchPeriod
	}
	return c.SeniorLunchPeriod
}

// Validate checks every time string parses and the mapping levels are in
// range. It is called whenever a configuration crosses the API boundary.
func (c *Configuration) Validate() error {
	groups := map[string][]Definition{
		"year1Slots": c.Year1Slots,
		"year2Slots": c.Year2Slots,
		"year3Slots": c.Year3Slots,
		"year4Slots": c.Year4Slots,
		"minorSlots": c.MinorSlots,
	}
	for name, defs := range groups {
		for i, def := range defs {
			if _, err := def.Start(); err != nil {
				return fmt.Errorf("%s[%d]: %w", name, i, err)
			}
			if _, err := def.End(); err != nil {
				return fmt.Errorf("%s[%d]: %w", name, i, err)
			}
		}
	}
	if c.PreferredStartTime != "" {
		if _, err := domain.ParseTimeOfDay(c.PreferredStartTime); err != nil {
			return fmt.Errorf("preferredStartTime: %w", err)
		}
	}
	for _, period := range []LunchPeriod{c.JuniorLunchPeriod, c.SeniorLunchPeriod} {
		if period.StartTime == "" && period.EndTime == "" {
			continue
		}
		if _, err := domain.ParseTimeOfDay(period.StartTime); err != nil {
			return fmt.Errorf("lunch period: %w", err)
		}
		if _, err := domain.ParseTimeOfDay(period.EndTime); err != nil {
			return fmt.Errorf("lunch period: %w", err)
		}
	}
	if c.BatchYearMapping != nil {
		for identifier, level := range c.BatchYearMapping.IdentifierToLevel {
			if level < 1 || level > 4 {
				return fmt.Errorf("batch year mapping %q: level %d outside [1,4]", identifier, level)
			}
		}
	}
	return nil
}
