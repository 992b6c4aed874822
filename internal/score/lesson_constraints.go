package score

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// lessonRules lists every constraint scored from a single lesson's own
// fields. Nil guards mirror the partially-assigned states the solver walks
// through during construction.
func lessonRules() []lessonRule {
	return []lessonRule{
		{
			name: "Ensure lesson assignments",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				missing := 0
				if l.Slot == nil {
					missing++
				}
				if l.Room == nil {
					missing++
				}
				return hardPenalty(WeightCritical, missing)
			},
		},
		{
			name: "Room capacity",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Batch == nil || l.Room == nil || l.Batch.Strength <= l.Room.Capacity {
					return Score{}
				}
				return hardPenalty(WeightHigh, l.Batch.Strength-l.Room.Capacity)
			},
		},
		{
			name: "Teacher qualification",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Faculty == nil || l.Course == nil || l.Course.IsEligible(l.Faculty) {
					return Score{}
				}
				return hardPenalty(WeightHigh, 1)
			},
		},
		{
			name: "Lab room assignment",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Course == nil || l.Room == nil {
					return Score{}
				}
				if l.Course.IsLabCourse() && !l.Room.IsLabRoom() {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Only lab courses in lab rooms",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Course == nil || l.Room == nil {
					return Score{}
				}
				if !l.Course.IsLabCourse() && l.Room.IsLabRoom() {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			// Fires alongside "Only lab courses in lab rooms"; a lecture
			// placed in a lab room is penalized by both.
			name: "Lecture in regular rooms",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Course == nil || l.Room == nil {
					return Score{}
				}
				if !l.Course.IsLabCourse() && l.Room.IsLabRoom() {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "No classes during lunch hour per year group",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Batch == nil {
					return Score{}
				}
				if ctx.IsLunchHourForYear(l.Batch.Year, l.Slot.Start) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Lecture classes should be in lecture time slots",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Type != domain.SlotTypeLecture {
					return Score{}
				}
				if l.Slot.Type != domain.SlotTypeLecture {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Lab classes must be in lab time slots",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Type != domain.SlotTypeLab {
					return Score{}
				}
				if l.Slot.Type != domain.SlotTypeLab {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Lab slots must host lab lessons in practical rooms",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Room == nil || l.Batch == nil {
					return Score{}
				}
				if l.Slot.Type != domain.SlotTypeLab {
					return Score{}
				}
				if l.Type != domain.SlotTypeLab || !l.Batch.AllowsPracticalRoom(l.Room.ID) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Lecture slots must host lecture lessons in lecture rooms",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Room == nil || l.Batch == nil {
					return Score{}
				}
				if l.Slot.Type != domain.SlotTypeLecture {
					return Score{}
				}
				if l.Type != domain.SlotTypeLecture || !l.Batch.AllowsLectureRoom(l.Room.ID) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Predefined room assignment",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Room == nil || l.Batch == nil {
					return Score{}
				}
				var allowed bool
				switch {
				case l.Room.IsLectureRoom():
					allowed = l.Batch.AllowsLectureRoom(l.Room.ID)
				case l.Room.IsLabRoom():
					allowed = l.Batch.AllowsPracticalRoom(l.Room.ID)
				}
				if !allowed {
					return hardPenalty(WeightMedium, 1)
				}
				return Score{}
			},
		},
		{
			name: "Lab classes in designated time slots per batch",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Type != domain.SlotTypeLab || l.Slot == nil || l.Batch == nil {
					return Score{}
				}
				if !ctx.IsLabTimeSlotValidForBatch(l.Batch.Year, l.Slot.Start, l.Slot.End) {
					return hardPenalty(WeightMedium, 1)
				}
				return Score{}
			},
		},
		{
			name: "Batch time slot compatibility",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil || l.Batch == nil || l.Type == domain.SlotTypeMinor {
					return Score{}
				}
				if !ctx.IsTimeSlotValidForBatch(l.Batch.Year, l.Slot.Start, l.Slot.End, l.Slot.Type) {
					return hardPenalty(WeightMedium, 1)
				}
				return Score{}
			},
		},
		{
			name: "Minors must be assigned to valid rooms",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Course == nil || l.Room == nil || !l.Course.IsMinor() {
					return Score{}
				}
				if !l.Course.AllowsLectureRoom(l.Room.ID) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Minor course room compatibility",
			eval: func(_ *timeslot.Context, l *domain.Lesson) Score {
				if l.Type != domain.SlotTypeMinor || l.Room == nil {
					return Score{}
				}
				if l.Course == nil || !l.Course.AllowsLectureRoom(l.Room.ID) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Minor courses in configured minor slots",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Course == nil || l.Slot == nil || !l.Course.IsMinor() {
					return Score{}
				}
				if !ctx.IsMinorTimeSlotValid(l.Slot.Start, l.Slot.End, l.Slot.Type) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Minor time slot compatibility",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Type != domain.SlotTypeMinor || l.Slot == nil {
					return Score{}
				}
				if !ctx.IsMinorTimeSlotValid(l.Slot.Start, l.Slot.End, l.Slot.Type) {
					return hardPenalty(WeightHigh, 1)
				}
				return Score{}
			},
		},
		{
			name: "Preferred start time",
			eval: func(ctx *timeslot.Context, l *domain.Lesson) Score {
				if l.Slot == nil {
					return Score{}
				}
				preferred, ok := ctx.PreferredStartTime()
				if !ok || l.Slot.Start == preferred {
					return Score{}
				}
				drift := absInt(preferred.MinutesUntil(l.Slot.Start))
				return softPenalty(WeightSoftLow, drift/30)
			},
		},
	}
}
