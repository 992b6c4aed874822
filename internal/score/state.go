package score

import (
	"strconv"
	"strings"

	"github.com/noah-isme/timetable-engine/internal/domain"
)

// dimension identifies one way of grouping lessons into buckets. Every
// pairwise or aggregate constraint reads exactly one dimension, so a move
// touching a lesson only dirties the buckets the lesson keys into.
type dimension int

const (
	dimRoomSlot dimension = iota
	dimFacultySlot
	dimBatchSlot
	dimBatchDay
	dimFacultyDay
	dimFacultyBatchDay
	dimBatchCourseDay
	dimBatch
	dimFaculty
	dimRoom
	dimMinorCourseDay
	numDimensions
)

// bucketKey computes the key of lesson l in dim under the hypothetical
// assignment (room, slot). The second return is false when the lesson does
// not key into the dimension at all, e.g. an unassigned slot or a lesson
// without a faculty.
func bucketKey(dim dimension, l *domain.Lesson, room *domain.Room, slot *domain.TimeSlot) (string, bool) {
	switch dim {
	case dimRoomSlot:
		if room == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(room.ID), itoa(slot.ID)), true
	case dimFacultySlot:
		if l.Faculty == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Faculty.ID), itoa(slot.ID)), true
	case dimBatchSlot:
		if l.Batch == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Batch.ID), itoa(slot.ID)), true
	case dimBatchDay:
		if l.Batch == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Batch.ID), slot.Day), true
	case dimFacultyDay:
		if l.Faculty == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Faculty.ID), slot.Day), true
	case dimFacultyBatchDay:
		if l.Faculty == nil || l.Batch == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Faculty.ID), itoa(l.Batch.ID), slot.Day), true
	case dimBatchCourseDay:
		if l.Batch == nil || l.Course == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Batch.ID), itoa(l.Course.ID), slot.Day), true
	case dimBatch:
		if l.Batch == nil {
			return "", false
		}
		return itoa(l.Batch.ID), true
	case dimFaculty:
		if l.Faculty == nil {
			return "", false
		}
		return itoa(l.Faculty.ID), true
	case dimRoom:
		if room == nil {
			return "", false
		}
		return itoa(room.ID), true
	case dimMinorCourseDay:
		if l.Type != domain.SlotTypeMinor || l.Course == nil || slot == nil {
			return "", false
		}
		return joinKey(itoa(l.Course.ID), slot.Day), true
	}
	return "", false
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func joinKey(parts ...string) string { return strings.Join(parts, "|") }

// Assignment is a room/slot placement for one lesson. Solver moves are
// expressed as a batch of assignments, applied and reverted through State.
type Assignment struct {
	Lesson *domain.Lesson
	Room   *domain.Room
	Slot   *domain.TimeSlot
}

// Inverse captures the current placement of the assignment's lesson, so the
// assignment can be undone after a rejected move.
func (a Assignment) Inverse() Assignment {
	return Assignment{Lesson: a.Lesson, Room: a.Lesson.Room, Slot: a.Lesson.Slot}
}

// State holds the working set of lessons indexed into constraint buckets.
// All placement mutations must go through Apply so the indexes stay
// consistent with the lessons.
type State struct {
	Lessons []*domain.Lesson

	buckets [numDimensions]map[string][]*domain.Lesson
}

// NewState indexes the given lessons. The lessons are mutated in place by
// subsequent Apply calls.
func NewState(lessons []*domain.Lesson) *State {
	st := &State{Lessons: lessons}
	for d := dimension(0); d < numDimensions; d++ {
		st.buckets[d] = make(map[string][]*domain.Lesson)
	}
	for _, l := range lessons {
		st.index(l)
	}
	return st
}

// Apply places every assignment and reindexes the touched lessons.
func (st *State) Apply(changes []Assignment) {
	for _, ch := range changes {
		st.unindex(ch.Lesson)
		ch.Lesson.Room = ch.Room
		ch.Lesson.Slot = ch.Slot
		st.index(ch.Lesson)
	}
}

// Bucket returns the lessons currently keyed under key in dim. A missing
// key yields an empty bucket.
func (st *State) bucket(dim dimension, key string) []*domain.Lesson {
	return st.buckets[dim][key]
}

func (st *State) index(l *domain.Lesson) {
	for d := dimension(0); d < numDimensions; d++ {
		if key, ok := bucketKey(d, l, l.Room, l.Slot); ok {
			st.buckets[d][key] = append(st.buckets[d][key], l)
		}
	}
}

func (st *State) unindex(l *domain.Lesson) {
	for d := dimension(0); d < numDimensions; d++ {
		key, ok := bucketKey(d, l, l.Room, l.Slot)
		if !ok {
			continue
		}
		bucket := st.buckets[d][key]
		for i, other := range bucket {
			if other == l {
				bucket[i] = bucket[len(bucket)-1]
				st.buckets[d][key] = bucket[:len(bucket)-1]
				break
			}
		}
		if len(st.buckets[d][key]) == 0 {
			delete(st.buckets[d], key)
		}
	}
}
