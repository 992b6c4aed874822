package score

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// conflictRules covers the resource-clash constraints: two lessons competing
// for the same room, faculty member, or student batch. Each violating pair
// is counted exactly once.
func conflictRules() []bucketRule {
	return []bucketRule{
		{
			name: "Room conflict",
			dim:  dimRoomSlot,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				return hardPenalty(WeightCritical, pairCount(len(lessons)))
			},
		},
		{
			name: "No room conflicts for minors",
			dim:  dimRoomSlot,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				total := Score{}
				eachPair(lessons, func(a, b *domain.Lesson) {
					if a.IsMinor() && b.IsMinor() {
						total = total.Add(hardPenalty(WeightCritical, 1))
					}
				})
				return total
			},
		},
		{
			name: "Teacher conflict",
			dim:  dimFacultySlot,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				return hardPenalty(WeightCritical, pairCount(len(lessons)))
			},
		},
		{
			name: "Faculty teaching multiple batches simultaneously",
			dim:  dimFacultySlot,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				total := Score{}
				eachPair(lessons, func(a, b *domain.Lesson) {
					if a.Batch != nil && b.Batch != nil && a.Batch.ID != b.Batch.ID {
						total = total.Add(hardPenalty(WeightCritical, 1))
					}
				})
				return total
			},
		},
		{
			name: "Student group conflict",
			dim:  dimBatchSlot,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				return hardPenalty(WeightCritical, pairCount(len(lessons)))
			},
		},
		{
			name: "Student batch time conflict",
			dim:  dimBatchDay,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				total := Score{}
				eachPair(lessons, func(a, b *domain.Lesson) {
					if a.Slot.Overlaps(b.Slot) || a.Slot.Interleaves(b.Slot) {
						total = total.Add(hardPenalty(WeightCritical, 1))
					}
				})
				return total
			},
		},
		{
			name: "Faculty time conflict",
			dim:  dimFacultyDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				minBreak := ctx.MinimumBreakBetweenClassesMinutes()
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					clash := first.Slot.Overlaps(second.Slot) ||
						first.Slot.Interleaves(second.Slot) ||
						absInt(gapMinutes(first, second)) < minBreak
					if clash {
						total = total.Add(hardPenalty(WeightCritical, 1))
					}
				})
				return total
			},
		},
		{
			name: "Minor course day spread",
			dim:  dimMinorCourseDay,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				return hardPenalty(WeightHigh, pairCount(len(lessons)))
			},
		},
	}
}

// pairCount is the number of unordered pairs among n lessons.
func pairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}
