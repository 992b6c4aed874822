// Package problem expands the loaded catalogs into a concrete optimization
// problem: one lesson per required weekly session per course per batch, plus
// the generated pool of time slots each lesson may occupy.
package problem

import (
	"github.com/noah-isme/timetable-engine/internal/domain"
)

// Problem is a fixed snapshot handed to the solver. The problem owns the
// lesson and slot instances for the run; the reference catalogs are shared
// read-only.
type Problem struct {
	Faculty      []*domain.Faculty
	Rooms        []*domain.Room
	Courses      []*domain.Course
	MinorCourses []*domain.Course
	Batches      []*domain.StudentBatch

	TimeSlots      []*domain.TimeSlot
	MinorTimeSlots []*domain.TimeSlot

	Lessons      []*domain.Lesson
	MinorLessons []*domain.Lesson
}

// AllLessons returns regular and minor lessons as one slice, regular first.
func (p *Problem) AllLessons() []*domain.Lesson {
	all := make([]*domain.Lesson, 0, len(p.Lessons)+len(p.MinorLessons))
	all = append(all, p.Lessons...)
	all = append(all, p.MinorLessons...)
	return all
}
