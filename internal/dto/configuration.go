package dto

// SolverConfigRequest updates the run budget of future solves.
type SolverConfigRequest struct {
	TerminationMinutes     int    `json:"terminationMinutes" binding:"min=0" validate:"min=0"`
	TerminationSeconds     int    `json:"terminationSeconds" binding:"min=0" validate:"min=0"`
	BestScoreLimit         *int   `json:"bestScoreLimit,omitempty"`
	UnimprovedSecondsLimit *int   `json:"unimprovedSecondsLimit,omitempty"`
	LateAcceptanceSize     *int   `json:"lateAcceptanceSize,omitempty" validate:"omitempty,min=1"`
	Seed                   *int64 `json:"seed,omitempty"`
}

// TimeSlotDefinitionRequest is one configurable slot window.
type TimeSlotDefinitionRequest struct {
	StartTime string `json:"startTime" binding:"required" validate:"required"`
	EndTime   string `json:"endTime" binding:"required" validate:"required"`
	SlotType  string `json:"slotType" binding:"required,oneof=LECTURE LAB MINOR" validate:"required,oneof=LECTURE LAB MINOR"`
}

// LunchPeriodRequest bounds a lunch window.
type LunchPeriodRequest struct {
	StartTime string `json:"startTime" binding:"required" validate:"required"`
	EndTime   string `json:"endTime" binding:"required" validate:"required"`
}

// TimeSlotConfigRequest replaces the active slot configuration.
type TimeSlotConfigRequest struct {
	Year1Slots []TimeSlotDefinitionRequest `json:"year1Slots" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Year2Slots []TimeSlotDefinitionRequest `json:"year2Slots" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Year3Slots []TimeSlotDefinitionRequest `json:"year3Slots" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Year4Slots []TimeSlotDefinitionRequest `json:"year4Slots" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	MinorSlots []TimeSlotDefinitionRequest `json:"minorSlots" binding:"dive" validate:"dive"`

	PreferredStartTime                string `json:"preferredStartTime"`
	MaxGapMinutes                     int    `json:"maxGapMinutes" binding:"min=0" validate:"min=0"`
	MaxTeacherGapMinutes              int    `json:"maxTeacherGapMinutes" binding:"min=0" validate:"min=0"`
	ConsecutiveLessonBufferMinutes    int    `json:"consecutiveLessonBufferMinutes" binding:"min=0" validate:"min=0"`
	MinimumBreakBetweenClassesMinutes int    `json:"minimumBreakBetweenClassesMinutes" binding:"min=0" validate:"min=0"`
	TargetDailyLessonsPerBatch        int    `json:"targetDailyLessonsPerBatch" binding:"min=0" validate:"min=0"`
	AllowedDailyLessonsVariance       int    `json:"allowedDailyLessonsVariance" binding:"min=0" validate:"min=0"`

	JuniorLunchPeriod *LunchPeriodRequest `json:"juniorLunchPeriod,omitempty"`
	SeniorLunchPeriod *LunchPeriodRequest `json:"seniorLunchPeriod,omitempty"`
}

// BatchYearMappingRequest adds one year identifier mapping.
type BatchYearMappingRequest struct {
	YearIdentifier string `json:"yearIdentifier" binding:"required" validate:"required"`
	YearLevel      int    `json:"yearLevel" binding:"required,min=1,max=4" validate:"required,min=1,max=4"`
}
