package domain

// Reference entities are immutable after load: the problem builder, score
// calculator and solver only ever read them. Lessons reference them by
// pointer so identity comparisons are cheap.

// Faculty is a teaching staff member.
type Faculty struct {
	ID             int64
	Name           string
	Email          string
	Subjects       []string
	MaxHoursPerDay int
}

// Room is a physical room with a capacity and a usage target the soft
// balancing constraint steers towards.
type Room struct {
	ID              int64
	Number          string
	Capacity        int
	Type            RoomType
	IdealDailyUsage int
}

// IsLabRoom reports whether the room is equipped for practical sessions.
func (r *Room) IsLabRoom() bool {
	return r.Type == RoomTypeComputerLab || r.Type == RoomTypeHardwareLab
}

// IsLectureRoom reports whether the room is a regular lecture room.
func (r *Room) IsLectureRoom() bool {
	return r.Type == RoomTypeLecture
}

// Course is a unit of curriculum served to one or more batches.
type Course struct {
	ID              int64
	Code            string
	Name            string
	Type            CourseType
	LectureHours    int
	PracticalHours  int
	Credits         int
	HoursPerWeek    int
	EligibleFaculty []*Faculty
	LectureRoomIDs  []int64
	BatchIDs        []int64
}

// IsLabCourse reports whether the course carries practical sessions.
func (c *Course) IsLabCourse() bool {
	return c.Type == CourseTypeLab || c.PracticalHours > 0
}

// IsMinor reports whether the course is scheduled in the shared minor slots.
func (c *Course) IsMinor() bool {
	return c.Type == CourseTypeMinor
}

// IsEligible reports whether f may teach the course.
func (c *Course) IsEligible(f *Faculty) bool {
	if f == nil {
		return false
	}
	for _, eligible := range c.EligibleFaculty {
		if eligible.ID == f.ID {
			return true
		}
	}
	return false
}

// AllowsLectureRoom reports whether id is in the course's lecture room set.
// Minor courses use this set as their only valid rooms.
func (c *Course) AllowsLectureRoom(id int64) bool {
	return containsID(c.LectureRoomIDs, id)
}

// StudentBatch is a cohort of students taking the same curriculum.
type StudentBatch struct {
	ID                  int64
	Name                string
	Year                int
	Strength            int
	RequiredLabsPerWeek int
	LectureRoomIDs      []int64
	PracticalRoomIDs    []int64
}

// AllowsLectureRoom reports whether id is an approved lecture room.
func (b *StudentBatch) AllowsLectureRoom(id int64) bool {
	return containsID(b.LectureRoomIDs, id)
}

// AllowsPracticalRoom reports whether id is an approved practical room.
func (b *StudentBatch) AllowsPracticalRoom(id int64) bool {
	return containsID(b.PracticalRoomIDs, id)
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
