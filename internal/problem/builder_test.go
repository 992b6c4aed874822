package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

func builderInput() Input {
	faculty := &domain.Faculty{ID: 1, Name: "Dr. A", MaxHoursPerDay: 6}
	rooms := []*domain.Room{
		{ID: 1, Number: "LR-101", Capacity: 70, Type: domain.RoomTypeLecture},
		{ID: 2, Number: "CL-201", Capacity: 60, Type: domain.RoomTypeComputerLab},
	}
	batch := &domain.StudentBatch{ID: 1, Name: "CSE_2024_A", Year: 2024, Strength: 50}
	course := &domain.Course{
		ID: 1, Code: "CS101", Name: "Programming", Type: domain.CourseTypeRegular,
		HoursPerWeek: 3, BatchIDs: []int64{1},
		EligibleFaculty: []*domain.Faculty{faculty},
	}
	lab := &domain.Course{
		ID: 2, Code: "CS103", Name: "Programming Lab", Type: domain.CourseTypeLab,
		PracticalHours: 2, HoursPerWeek: 1, BatchIDs: []int64{1},
		EligibleFaculty: []*domain.Faculty{faculty},
	}
	minor := &domain.Course{
		ID: 9, Code: "MN101", Name: "Economics Minor", Type: domain.CourseTypeMinor,
		HoursPerWeek: 2, LectureRoomIDs: []int64{1},
		EligibleFaculty: []*domain.Faculty{faculty},
	}
	return Input{
		Faculty:      []*domain.Faculty{faculty},
		Rooms:        rooms,
		Courses:      []*domain.Course{course, lab},
		MinorCourses: []*domain.Course{minor},
		Batches:      []*domain.StudentBatch{batch},
	}
}

func TestBuildExpandsHoursIntoLessons(t *testing.T) {
	prob, err := NewBuilder(nil).Build(builderInput(), timeslot.DefaultConfiguration())
	require.NoError(t, err)

	// 3 regular hours + 1 lab hour, plus 2 minor hours.
	assert.Len(t, prob.Lessons, 4)
	assert.Len(t, prob.MinorLessons, 2)

	for _, l := range prob.Lessons {
		assert.NotNil(t, l.Batch)
		assert.NotNil(t, l.Faculty)
		assert.NotEmpty(t, l.CandidateRooms)
		assert.NotEmpty(t, l.CandidateSlots)
		assert.Nil(t, l.Room)
		assert.Nil(t, l.Slot)
	}
	for _, l := range prob.MinorLessons {
		assert.Nil(t, l.Batch)
		assert.Equal(t, domain.SlotTypeMinor, l.Type)
		for _, s := range l.CandidateSlots {
			assert.Equal(t, domain.SlotTypeMinor, s.Type)
		}
	}
}

func TestBuildLabCourseLessonType(t *testing.T) {
	prob, err := NewBuilder(nil).Build(builderInput(), timeslot.DefaultConfiguration())
	require.NoError(t, err)

	var labLessons int
	for _, l := range prob.Lessons {
		if l.Course.IsLabCourse() {
			assert.Equal(t, domain.SlotTypeLab, l.Type)
			labLessons++
		}
	}
	assert.Equal(t, 1, labLessons)
}

func TestBuildGeneratesSlotsPerBatch(t *testing.T) {
	in := builderInput()
	in.Batches = append(in.Batches, &domain.StudentBatch{ID: 2, Name: "CSE_2023_A", Year: 2023, Strength: 55})
	in.Courses[0].BatchIDs = []int64{1, 2}

	prob, err := NewBuilder(nil).Build(in, timeslot.DefaultConfiguration())
	require.NoError(t, err)

	// Each batch gets its own slot instances, so IDs never collide.
	seen := map[int64]bool{}
	for _, s := range prob.TimeSlots {
		assert.False(t, seen[s.ID], "slot ID %d duplicated", s.ID)
		seen[s.ID] = true
	}

	// The shared course now yields lessons for both batches.
	byBatch := map[int64]int{}
	for _, l := range prob.Lessons {
		byBatch[l.Batch.ID]++
	}
	assert.Equal(t, 4, byBatch[1])
	assert.Equal(t, 3, byBatch[2])
}

func TestBuildSetsIdealRoomUsage(t *testing.T) {
	prob, err := NewBuilder(nil).Build(builderInput(), timeslot.DefaultConfiguration())
	require.NoError(t, err)

	for _, r := range prob.Rooms {
		assert.Greater(t, r.IdealDailyUsage, 0)
	}
}

func TestBuildRejectsMissingEssentialData(t *testing.T) {
	cfg := timeslot.DefaultConfiguration()

	in := builderInput()
	in.Faculty = nil
	_, err := NewBuilder(nil).Build(in, cfg)
	assert.ErrorContains(t, err, "essential data missing")

	in = builderInput()
	in.MinorCourses = nil
	_, err = NewBuilder(nil).Build(in, cfg)
	assert.ErrorContains(t, err, "essential data missing")

	_, err = NewBuilder(nil).Build(builderInput(), nil)
	assert.Error(t, err)
}

func TestBuildSkipsUnknownBatchReference(t *testing.T) {
	in := builderInput()
	in.Courses[0].BatchIDs = []int64{1, 99}

	prob, err := NewBuilder(nil).Build(in, timeslot.DefaultConfiguration())
	require.NoError(t, err)
	assert.Len(t, prob.Lessons, 4)
}
