// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/score"
	"github.com/noah-isme/timetable-engine/internal/solver"
)

// LessonView is one scheduled (or pending) lesson.
type LessonView struct {
	ID         int64  `json:"id"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Type       string `json:"type"`
	BatchName  string `json:"batchName,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	Room       string `json:"room,omitempty"`
	Day        string `json:"day,omitempty"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Assigned   bool   `json:"assigned"`
}

// TimetableView is the full generated timetable plus its score.
type TimetableView struct {
	GeneratedAt time.Time               `json:"generatedAt"`
	Score       score.Score             `json:"score"`
	Feasible    bool                    `json:"feasible"`
	Lessons     []LessonView            `json:"lessons"`
	Breakdown   []score.ConstraintScore `json:"scoreBreakdown,omitempty"`
}

// RunView describes a queued or running solve.
type RunView struct {
	RunID     string       `json:"runId"`
	Phase     solver.Phase `json:"phase"`
	BestScore score.Score  `json:"bestScore"`
	Moves     int64        `json:"moves"`
	StartedAt time.Time    `json:"startedAt,omitempty"`
}

// NewLessonView flattens a lesson for transport.
func NewLessonView(l *domain.Lesson) LessonView {
	view := LessonView{
		ID:       l.ID,
		Type:     string(l.Type),
		Assigned: l.IsAssigned(),
	}
	if l.Course != nil {
		view.CourseCode = l.Course.Code
		view.CourseName = l.Course.Name
	}
	if l.Batch != nil {
		view.BatchName = l.Batch.Name
	}
	if l.Faculty != nil {
		view.Faculty = l.Faculty.Name
	}
	if l.Room != nil {
		view.Room = l.Room.Number
	}
	if l.Slot != nil {
		view.Day = l.Slot.Day
		view.Start = l.Slot.Start.String()
		view.End = l.Slot.End.String()
	}
	return view
}

// NewLessonViews maps a lesson slice.
func NewLessonViews(lessons []*domain.Lesson) []LessonView {
	out := make([]LessonView, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, NewLessonView(l))
	}
	return out
}

// FacultyView is a catalog faculty entry; credentials never leave the CSV.
type FacultyView struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Subjects       []string `json:"subjects,omitempty"`
	MaxHoursPerDay int      `json:"maxHoursPerDay"`
}

// RoomView is a catalog room entry.
type RoomView struct {
	ID       int64  `json:"id"`
	Number   string `json:"roomNumber"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"`
}

// BatchView is a catalog student batch entry.
type BatchView struct {
	ID       int64  `json:"id"`
	Name     string `json:"batchName"`
	Year     int    `json:"year"`
	Strength int    `json:"strength"`
}

// CourseView is a catalog course entry.
type CourseView struct {
	ID           int64   `json:"id"`
	Code         string  `json:"courseCode"`
	Name         string  `json:"name"`
	Type         string  `json:"courseType"`
	HoursPerWeek int     `json:"hoursPerWeek"`
	BatchIDs     []int64 `json:"batchIds,omitempty"`
}

func NewFacultyView(f *domain.Faculty) FacultyView {
	return FacultyView{ID: f.ID, Name: f.Name, Email: f.Email, Subjects: f.Subjects, MaxHoursPerDay: f.MaxHoursPerDay}
}

func NewRoomView(r *domain.Room) RoomView {
	return RoomView{ID: r.ID, Number: r.Number, Capacity: r.Capacity, Type: string(r.Type)}
}

func NewBatchView(b *domain.StudentBatch) BatchView {
	return BatchView{ID: b.ID, Name: b.Name, Year: b.Year, Strength: b.Strength}
}

func NewCourseView(c *domain.Course) CourseView {
	return CourseView{ID: c.ID, Code: c.Code, Name: c.Name, Type: string(c.Type), HoursPerWeek: c.HoursPerWeek, BatchIDs: c.BatchIDs}
}
