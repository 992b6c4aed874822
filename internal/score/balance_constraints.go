package score

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// Load-balancing bands. Batch load is nudged toward the midpoint of the
// acceptable weekly band; faculty load toward a nominal teaching load.
const (
	batchLoadMin    = 20
	batchLoadMax    = 25
	batchLoadTarget = 22

	facultyLoadTarget    = 15
	facultyLoadTolerance = 2
)

// balanceRules spreads lessons evenly across days, rooms, and people, and
// enforces the per-day course and lab limits.
func balanceRules() []bucketRule {
	return []bucketRule{
		{
			name: "Only one lab per batch per day",
			dim:  dimBatchDay,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				labs := 0
				for _, l := range lessons {
					if l.Course != nil && l.Course.IsLabCourse() {
						labs++
					}
				}
				if labs <= 1 {
					return Score{}
				}
				return hardPenalty(WeightHigh, (labs-1)*2)
			},
		},
		{
			name: "Single course per day for batch",
			dim:  dimBatchCourseDay,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				if len(lessons) <= 1 {
					return Score{}
				}
				return hardPenalty(WeightMedium, (len(lessons)-1)*2)
			},
		},
		{
			name: "Max two classes per day for a teacher per batch",
			dim:  dimFacultyBatchDay,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				if len(lessons) <= 2 {
					return Score{}
				}
				return softPenalty(WeightSoftLow, (len(lessons)-2)*2)
			},
		},
		{
			name: "Balance batch load",
			dim:  dimBatch,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				n := len(lessons)
				if n >= batchLoadMin && n <= batchLoadMax {
					return Score{}
				}
				return softPenalty(WeightSoftHigh, absInt(n-batchLoadTarget))
			},
		},
		{
			name: "Balance faculty load",
			dim:  dimFaculty,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				drift := absInt(len(lessons) - facultyLoadTarget)
				if drift <= facultyLoadTolerance {
					return Score{}
				}
				return softPenalty(WeightSoftHigh, drift)
			},
		},
		{
			name: "Balance room load",
			dim:  dimRoom,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				if len(lessons) == 0 {
					return Score{}
				}
				ideal := lessons[0].Room.IdealDailyUsage
				low := ideal - 1
				if low < 1 {
					low = 1
				}
				n := len(lessons)
				if n >= low && n <= ideal {
					return Score{}
				}
				return softPenalty(WeightSoftLow, absInt(n-ideal))
			},
		},
		{
			name: "Balance daily batch load",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				target := ctx.TargetDailyLessonsPerBatch()
				variance := ctx.AllowedDailyLessonsVariance()
				drift := absInt(len(lessons) - target)
				if drift <= variance {
					return Score{}
				}
				return softPenalty(WeightSoftHigh, drift)
			},
		},
		{
			name: "Weekly lab scheduling",
			dim:  dimBatch,
			eval: func(_ *timeslot.Context, lessons []*domain.Lesson) Score {
				days := map[string]struct{}{}
				labs := 0
				var batch *domain.StudentBatch
				for _, l := range lessons {
					batch = l.Batch
					if l.Course == nil || !l.Course.IsLabCourse() || l.Slot == nil {
						continue
					}
					labs++
					days[l.Slot.Day] = struct{}{}
				}
				if labs == 0 || batch == nil {
					return Score{}
				}
				if missing := batch.RequiredLabsPerWeek - len(days); missing > 0 {
					return hardPenalty(WeightHigh, missing)
				}
				return Score{}
			},
		},
	}
}
