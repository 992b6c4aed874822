package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// BatchYearMapping maps year identifiers (e.g. "2024") to year levels 1-4.
// Batches graduate and new ones arrive each academic year, so the mapping is
// user-maintained rather than derived.
type BatchYearMapping struct {
	IdentifierToLevel map[string]int `json:"yearIdentifierToLevel"`
}

// NewBatchYearMapping returns an empty mapping.
func NewBatchYearMapping() *BatchYearMapping {
	return &BatchYearMapping{IdentifierToLevel: map[string]int{}}
}

// AddMapping registers or updates an identifier. Levels outside [1,4] are
// rejected.
func (m *BatchYearMapping) AddMapping(identifier string, level int) error {
	if level < 1 || level > 4 {
		return fmt.Errorf("year level must be between 1 and 4, got %d", level)
	}
	if m.IdentifierToLevel == nil {
		m.IdentifierToLevel = map[string]int{}
	}
	m.IdentifierToLevel[identifier] = level
	return nil
}

// RemoveMapping drops an identifier if present.
func (m *BatchYearMapping) RemoveMapping(identifier string) {
	delete(m.IdentifierToLevel, identifier)
}

// YearLevel resolves a batch name to a year level by case-insensitive
// substring match against the registered identifiers. Unmatched names
// default to level 1.
func (m *BatchYearMapping) YearLevel(batchName string) int {
	if batchName == "" {
		return 1
	}
	lower := strings.ToLower(batchName)
	for identifier, level := range m.IdentifierToLevel {
		if strings.Contains(lower, strings.ToLower(identifier)) {
			return level
		}
	}
	return 1
}

// YearLevelFromBatchYear resolves a numeric batch year (e.g. 2024) by exact
// identifier lookup. The second result is false when no mapping exists.
func (m *BatchYearMapping) YearLevelFromBatchYear(batchYear int) (int, bool) {
	level, ok := m.IdentifierToLevel[strconv.Itoa(batchYear)]
	return level, ok
}
