package timeslot

import "github.com/noah-isme/timetable-engine/internal/domain"

// Context is the solver-run-scoped view of a Configuration the score
// calculator queries. All methods are pure functions of the configuration
// and their arguments, which keeps scoring referentially transparent.
type Context struct {
	cfg *Configuration
}

// NewContext wraps a configuration. The configuration must not be mutated
// while a run borrows it.
func NewContext(cfg *Configuration) *Context {
	return &Context{cfg: cfg}
}

// Configuration exposes the wrapped value for callers that need thresholds
// directly.
func (c *Context) Configuration() *Configuration { return c.cfg }

// IsLabTimeSlotValidForBatch reports whether (start, end) matches a LAB
// definition in the batch year's catalog. Batch years without a registered
// mapping have no valid lab slots.
func (c *Context) IsLabTimeSlotValidForBatch(batchYear int, start, end domain.TimeOfDay) bool {
	if c.cfg == nil || c.cfg.BatchYearMapping == nil {
		return false
	}
	level, ok := c.cfg.BatchYearMapping.YearLevelFromBatchYear(batchYear)
	if !ok {
		return false
	}
	for _, def := range c.cfg.SlotsByYearLevel(level) {
		if def.SlotType != domain.SlotTypeLab {
			continue
		}
		if definitionMatches(def, start, end) {
			return true
		}
	}
	return false
}

// IsTimeSlotValidForBatch reports whether (start, end, slotType) appears in
// the batch year's catalog. MINOR slots are never valid for regular batches.
func (c *Context) IsTimeSlotValidForBatch(batchYear int, start, end domain.TimeOfDay, slotType domain.SlotType) bool {
	if c.cfg == nil || c.cfg.BatchYearMapping == nil {
		return true
	}
	if slotType == domain.SlotTypeMinor {
		return false
	}
	level, ok := c.cfg.BatchYearMapping.YearLevelFromBatchYear(batchYear)
	if !ok {
		return false
	}
	for _, def := range c.cfg.SlotsByYearLevel(level) {
		if def.SlotType == slotType && definitionMatches(def, start, end) {
			return true
		}
	}
	return false
}

// IsMinorTimeSlotValid reports whether (start, end) is one of the configured
// minor windows and the slot is typed MINOR.
func (c *Context) IsMinorTimeSlotValid(start, end domain.TimeOfDay, slotType domain.SlotType) bool {
	if c.cfg == nil {
		return false
	}
	if slotType != domain.SlotTypeMinor {
		return false
	}
	for _, def := range c.cfg.MinorSlots {
		if def.SlotType == domain.SlotTypeMinor && definitionMatches(def, start, end) {
			return true
		}
	}
	return false
}

// IsLunchHourForYear reports whether start falls inside the lunch period of
// the batch year's level. Unmapped years never trigger the lunch rule.
func (c *Context) IsLunchHourForYear(batchYear int, start domain.TimeOfDay) bool {
	if c.cfg == nil || c.cfg.BatchYearMapping == nil {
		return false
	}
	level, ok := c.cfg.BatchYearMapping.YearLevelFromBatchYear(batchYear)
	if !ok {
		return false
	}
	return c.cfg.LunchPeriodForYearLevel(level).Within(start)
}

// PreferredStartTime returns the configured preferred start, or ok=false
// when none is set.
func (c *Context) PreferredStartTime() (domain.TimeOfDay, bool) {
	if c.cfg == nil || c.cfg.PreferredStartTime == "" {
		return 0, false
	}
	t, err := domain.ParseTimeOfDay(c.cfg.PreferredStartTime)
	if err != nil {
		return 0, false
	}
	return t, true
}

// Threshold getters clamp to the same floors the scorer has always used, so
// a zero-valued configuration degrades to the defaults instead of zero.

func (c *Context) MaxGapMinutes() int {
	return maxInt(c.cfg.MaxGapMinutes, 60)
}

func (c *Context) MaxTeacherGapMinutes() int {
	return maxInt(c.cfg.MaxTeacherGapMinutes, 90)
}

func (c *Context) ConsecutiveLessonBufferMinutes() int {
	return maxInt(c.cfg.ConsecutiveLessonBufferMinutes, 0)
}

func (c *Context) MinimumBreakBetweenClassesMinutes() int {
	return maxInt(c.cfg.MinimumBreakBetweenClassesMinutes, 0)
}

func (c *Context) TargetDailyLessonsPerBatch() int {
	return maxInt(c.cfg.TargetDailyLessonsPerBatch, 4)
}

func (c *Context) AllowedDailyLessonsVariance() int {
	return maxInt(c.cfg.AllowedDailyLessonsVariance, 1)
}

func definitionMatches(def Definition, start, end domain.TimeOfDay) bool {
	defStart, err := def.Start()
	if err != nil {
		return false
	}
	defEnd, err := def.End()
	if err != nil {
		return false
	}
	return defStart == start && defEnd == end
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
