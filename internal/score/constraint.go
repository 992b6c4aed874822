package score

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// lessonRule scores one lesson in isolation from its own fields.
type lessonRule struct {
	name string
	eval func(ctx *timeslot.Context, l *domain.Lesson) Score
}

// bucketRule scores one bucket of lessons sharing a key in its dimension.
// The evaluation must not depend on the order of lessons in the bucket.
type bucketRule struct {
	name string
	dim  dimension
	eval func(ctx *timeslot.Context, lessons []*domain.Lesson) Score
}

// eachPair invokes fn once per unordered lesson pair, normalized to
// chronological order (ties broken by lesson ID) so time-based checks see a
// stable orientation regardless of bucket order.
func eachPair(lessons []*domain.Lesson, fn func(first, second *domain.Lesson)) {
	for i := 0; i < len(lessons); i++ {
		for j := i + 1; j < len(lessons); j++ {
			first, second := chronological(lessons[i], lessons[j])
			fn(first, second)
		}
	}
}

func chronological(a, b *domain.Lesson) (*domain.Lesson, *domain.Lesson) {
	if a.Slot == nil || b.Slot == nil {
		if a.ID <= b.ID {
			return a, b
		}
		return b, a
	}
	if a.Slot.Start != b.Slot.Start {
		if a.Slot.Start.Before(b.Slot.Start) {
			return a, b
		}
		return b, a
	}
	if a.ID <= b.ID {
		return a, b
	}
	return b, a
}

// gapMinutes is the signed gap between first's end and second's start.
// Negative when the ranges overlap.
func gapMinutes(first, second *domain.Lesson) int {
	return first.Slot.End.MinutesUntil(second.Slot.Start)
}

// isConsecutive reports whether second starts right after first ends, within
// the configured buffer.
func isConsecutive(ctx *timeslot.Context, first, second *domain.Lesson) bool {
	gap := gapMinutes(first, second)
	return gap >= 0 && gap <= ctx.ConsecutiveLessonBufferMinutes()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
