package score

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// gapRules shapes the within-day rhythm of a schedule: penalizing dead time
// for batches and faculty, rewarding back-to-back sessions, and keeping
// consecutive sessions in the same room.
func gapRules() []bucketRule {
	return []bucketRule{
		{
			name: "Minimize gaps in schedule",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				maxGap := ctx.MaxGapMinutes()
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					gap := gapMinutes(first, second)
					if gap > maxGap {
						total = total.Add(softPenalty(WeightSoftMedium, gap/15))
					}
				})
				return total
			},
		},
		{
			name: "Limit teacher idle gaps",
			dim:  dimFacultyDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				maxGap := ctx.MaxTeacherGapMinutes()
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					gap := gapMinutes(first, second)
					if gap > maxGap {
						total = total.Add(softPenalty(WeightSoftMedium, gap/10))
					}
				})
				return total
			},
		},
		{
			name: "Prefer contiguous lessons",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					if isConsecutive(ctx, first, second) {
						total = total.Add(softReward(WeightSoftMedium, 1))
					}
				})
				return total
			},
		},
		{
			name: "Contiguous lessons",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				maxGap := ctx.MaxGapMinutes()
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					gap := absInt(gapMinutes(first, second))
					if !isConsecutive(ctx, first, second) && gap <= maxGap {
						total = total.Add(softPenalty(WeightSoftLow, gap/10))
					}
				})
				return total
			},
		},
		{
			name: "Room stability",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					if first.Room == nil || second.Room == nil {
						return
					}
					if isConsecutive(ctx, first, second) && first.Room.ID != second.Room.ID {
						total = total.Add(softPenalty(WeightSoftLow, 1))
					}
				})
				return total
			},
		},
		{
			name: "Minimize room changes",
			dim:  dimBatchDay,
			eval: func(ctx *timeslot.Context, lessons []*domain.Lesson) Score {
				maxGap := ctx.MaxGapMinutes()
				total := Score{}
				eachPair(lessons, func(first, second *domain.Lesson) {
					if first.Room == nil || second.Room == nil {
						return
					}
					if first.Room.ID != second.Room.ID && absInt(gapMinutes(first, second)) <= maxGap {
						total = total.Add(softPenalty(WeightSoftLow, 1))
					}
				})
				return total
			},
		},
	}
}
