package domain

import "fmt"

// TimeSlot is a concrete, schedulable window on a weekday. Slots are
// generated per batch year (and once globally for minors), so two distinct
// instances may share the same (day, start, end) triple; identity is the ID.
type TimeSlot struct {
	ID    int64
	Day   string
	Start TimeOfDay
	End   TimeOfDay
	Type  SlotType
}

// Overlaps reports whether the two slots' time ranges touch or intersect.
// Adjacent ranges (end == start) count as overlapping.
func (ts *TimeSlot) Overlaps(other *TimeSlot) bool {
	return !(ts.End.Before(other.Start) || ts.Start.After(other.End))
}

// Interleaves reports whether either slot's boundary falls strictly inside
// the other's range.
func (ts *TimeSlot) Interleaves(other *TimeSlot) bool {
	return strictlyInside(other.Start, ts) || strictlyInside(other.End, ts) ||
		strictlyInside(ts.Start, other) || strictlyInside(ts.End, other)
}

func strictlyInside(t TimeOfDay, slot *TimeSlot) bool {
	return t.After(slot.Start) && t.Before(slot.End)
}

func (ts *TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", ts.Day, ts.Start, ts.End)
}

// Lesson is the schedulable unit: one weekly occurrence of a course for a
// batch (or of a minor course). Room and Slot are the two fields the solver
// mutates; everything else is fixed at build time, including Faculty.
type Lesson struct {
	ID      int64
	Course  *Course
	Batch   *StudentBatch // nil for minor lessons
	Type    LessonType
	Faculty *Faculty // nil when the course has no eligible faculty

	Room *Room     // nil until assigned
	Slot *TimeSlot // nil until assigned

	CandidateRooms []*Room
	CandidateSlots []*TimeSlot
}

// IsAssigned reports whether both optimizable fields are set.
func (l *Lesson) IsAssigned() bool {
	return l.Room != nil && l.Slot != nil
}

// IsMinor reports whether the lesson belongs to a minor course.
func (l *Lesson) IsMinor() bool {
	return l.Type == SlotTypeMinor
}

func (l *Lesson) String() string {
	course := "?"
	if l.Course != nil {
		course = l.Course.Code
	}
	batch := "-"
	if l.Batch != nil {
		batch = l.Batch.Name
	}
	room := "-"
	if l.Room != nil {
		room = l.Room.Number
	}
	slot := "-"
	if l.Slot != nil {
		slot = l.Slot.String()
	}
	return fmt.Sprintf("lesson %d %s/%s %s @ %s in %s", l.ID, course, batch, l.Type, slot, room)
}
