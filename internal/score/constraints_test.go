package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

func testContext() *timeslot.Context {
	return timeslot.NewContext(timeslot.DefaultConfiguration())
}

func testRoom(id int64, capacity int, typ domain.RoomType) *domain.Room {
	return &domain.Room{ID: id, Number: "R", Capacity: capacity, Type: typ, IdealDailyUsage: 4}
}

func testBatch(id int64, year, strength int) *domain.StudentBatch {
	return &domain.StudentBatch{ID: id, Name: "CSE_2024_A", Year: year, Strength: strength}
}

func testCourse(id int64, typ domain.CourseType, practicalHours int) *domain.Course {
	return &domain.Course{ID: id, Code: "CS101", Name: "Course", Type: typ, PracticalHours: practicalHours, HoursPerWeek: 3}
}

func testSlot(id int64, day, start, end string, typ domain.SlotType) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:    id,
		Day:   day,
		Start: domain.MustParseTimeOfDay(start),
		End:   domain.MustParseTimeOfDay(end),
		Type:  typ,
	}
}

// contributions evaluates the lessons and returns the non-zero score per
// constraint name.
func contributions(ctx *timeslot.Context, lessons ...*domain.Lesson) map[string]Score {
	_, breakdown := NewCalculator(ctx).Explain(NewState(lessons))
	byName := make(map[string]Score, len(breakdown))
	for _, cs := range breakdown {
		byName[cs.Name] = cs.Score
	}
	return byName
}

func TestSameRoomSameSlotConflicts(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60)
	room := testRoom(1, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}
	slot := testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture)

	a := &domain.Lesson{ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch, Type: domain.SlotTypeLecture, Room: room, Slot: slot}
	b := &domain.Lesson{ID: 2, Course: testCourse(2, domain.CourseTypeRegular, 0), Batch: batch, Type: domain.SlotTypeLecture, Room: room, Slot: slot}

	got := contributions(ctx, a, b)
	assert.Equal(t, Score{Hard: -WeightCritical}, got["Room conflict"])
	assert.Equal(t, Score{Hard: -WeightCritical}, got["Student group conflict"])
	assert.Equal(t, Score{Hard: -WeightCritical}, got["Student batch time conflict"])
	assert.NotContains(t, got, "Ensure lesson assignments")
}

func TestUnassignedLessonPenalty(t *testing.T) {
	ctx := testContext()
	l := &domain.Lesson{ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: testBatch(1, 2024, 60), Type: domain.SlotTypeLecture}

	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -2 * WeightCritical}, got["Ensure lesson assignments"])

	l.Room = testRoom(1, 70, domain.RoomTypeLecture)
	got = contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightCritical}, got["Ensure lesson assignments"])
}

func TestRoomCapacityOverflow(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 70)
	room := testRoom(1, 60, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}
	l := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: room,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}

	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -10 * WeightHigh}, got["Room capacity"])
}

func TestTeacherQualification(t *testing.T) {
	ctx := testContext()
	qualified := &domain.Faculty{ID: 1, Name: "Dr. A"}
	outsider := &domain.Faculty{ID: 2, Name: "Dr. B"}
	course := testCourse(1, domain.CourseTypeRegular, 0)
	course.EligibleFaculty = []*domain.Faculty{qualified}

	l := &domain.Lesson{
		ID: 1, Course: course, Batch: testBatch(1, 2024, 60), Type: domain.SlotTypeLecture,
		Faculty: outsider,
		Room:    testRoom(1, 70, domain.RoomTypeLecture),
		Slot:    testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Teacher qualification"])

	l.Faculty = qualified
	got = contributions(ctx, l)
	assert.NotContains(t, got, "Teacher qualification")
}

func TestLectureInLabRoomPenalizedTwice(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 30)
	lab := testRoom(1, 40, domain.RoomTypeComputerLab)
	batch.PracticalRoomIDs = []int64{lab.ID}

	l := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: lab,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Only lab courses in lab rooms"])
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Lecture in regular rooms"])
	assert.NotContains(t, got, "Lab room assignment")
}

func TestLunchHourViolation(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60) // maps to year level 1, junior lunch
	room := testRoom(1, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}

	l := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: room,
		Slot: testSlot(1001, "Monday", "13:30", "14:30", domain.SlotTypeLecture),
	}
	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["No classes during lunch hour per year group"])

	// Unmapped batch years never trigger the lunch rule.
	batch.Year = 1999
	got = contributions(ctx, l)
	assert.NotContains(t, got, "No classes during lunch hour per year group")
}

func TestFacultyTimeConflictInsufficientBreak(t *testing.T) {
	ctx := testContext()
	fac := &domain.Faculty{ID: 1, Name: "Dr. A"}
	batchA := testBatch(1, 2024, 60)
	batchB := testBatch(2, 2024, 60)
	roomA := testRoom(1, 70, domain.RoomTypeLecture)
	roomB := testRoom(2, 70, domain.RoomTypeLecture)
	batchA.LectureRoomIDs = []int64{roomA.ID}
	batchB.LectureRoomIDs = []int64{roomB.ID}

	// 10 minute turnaround, below the 15 minute minimum break.
	a := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batchA,
		Type: domain.SlotTypeLecture, Faculty: fac, Room: roomA,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	b := &domain.Lesson{
		ID: 2, Course: testCourse(2, domain.CourseTypeRegular, 0), Batch: batchB,
		Type: domain.SlotTypeLecture, Faculty: fac, Room: roomB,
		Slot: testSlot(2001, "Monday", "10:40", "12:10", domain.SlotTypeLecture),
	}

	got := contributions(ctx, a, b)
	assert.Equal(t, Score{Hard: -WeightCritical}, got["Faculty time conflict"])

	// Scoring must not depend on lesson order.
	calc := NewCalculator(ctx)
	require.Equal(t,
		calc.Evaluate(NewState([]*domain.Lesson{a, b})),
		calc.Evaluate(NewState([]*domain.Lesson{b, a})))
}

func TestScheduleGapPenalties(t *testing.T) {
	ctx := testContext()
	fac := &domain.Faculty{ID: 1, Name: "Dr. A"}
	batch := testBatch(1, 2024, 60)
	room := testRoom(1, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}

	// Two hour dead gap between sessions.
	a := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Faculty: fac, Room: room,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	b := &domain.Lesson{
		ID: 2, Course: testCourse(2, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Faculty: fac, Room: room,
		Slot: testSlot(1002, "Monday", "12:30", "14:00", domain.SlotTypeLecture),
	}

	got := contributions(ctx, a, b)
	// 120 minute gap: batch penalty per started 15 minutes, teacher per 10.
	assert.Equal(t, Score{Soft: -8 * WeightSoftMedium}, got["Minimize gaps in schedule"])
	assert.Equal(t, Score{Soft: -12 * WeightSoftMedium}, got["Limit teacher idle gaps"])
	assert.NotContains(t, got, "Faculty time conflict")
}

func TestContiguousLessonPreferences(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60)
	roomA := testRoom(1, 70, domain.RoomTypeLecture)
	roomB := testRoom(2, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{roomA.ID, roomB.ID}

	// One minute turnaround: consecutive within the five minute buffer.
	a := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: roomA,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	b := &domain.Lesson{
		ID: 2, Course: testCourse(2, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: roomB,
		Slot: testSlot(1002, "Monday", "10:31", "12:01", domain.SlotTypeLecture),
	}

	got := contributions(ctx, a, b)
	assert.Equal(t, Score{Soft: WeightSoftMedium}, got["Prefer contiguous lessons"])
	assert.Equal(t, Score{Soft: -WeightSoftLow}, got["Room stability"])
	assert.Equal(t, Score{Soft: -WeightSoftLow}, got["Minimize room changes"])

	// Same room removes the stability penalties but keeps the reward.
	b.Room = roomA
	got = contributions(ctx, a, b)
	assert.Equal(t, Score{Soft: WeightSoftMedium}, got["Prefer contiguous lessons"])
	assert.NotContains(t, got, "Room stability")
	assert.NotContains(t, got, "Minimize room changes")
}

func TestWeeklyLabScheduling(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60)
	batch.RequiredLabsPerWeek = 2
	lab := testRoom(1, 70, domain.RoomTypeComputerLab)
	batch.PracticalRoomIDs = []int64{lab.ID}
	course := testCourse(1, domain.CourseTypeLab, 2)

	a := &domain.Lesson{
		ID: 1, Course: course, Batch: batch, Type: domain.SlotTypeLab, Room: lab,
		Slot: testSlot(1001, "Monday", "11:15", "13:15", domain.SlotTypeLab),
	}
	b := &domain.Lesson{
		ID: 2, Course: course, Batch: batch, Type: domain.SlotTypeLab, Room: lab,
		Slot: testSlot(1002, "Monday", "14:30", "16:30", domain.SlotTypeLab),
	}

	// Both labs land on Monday: one distinct day against two required, and
	// two labs share the day.
	got := contributions(ctx, a, b)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Weekly lab scheduling"])
	assert.Equal(t, Score{Hard: -2 * WeightHigh}, got["Only one lab per batch per day"])

	// Spreading onto a second day clears both.
	b.Slot = testSlot(1003, "Tuesday", "14:30", "16:30", domain.SlotTypeLab)
	got = contributions(ctx, a, b)
	assert.NotContains(t, got, "Weekly lab scheduling")
	assert.NotContains(t, got, "Only one lab per batch per day")
}

func TestMinorCourseDaySpread(t *testing.T) {
	ctx := testContext()
	roomA := testRoom(1, 40, domain.RoomTypeLecture)
	roomB := testRoom(2, 40, domain.RoomTypeLecture)
	course := testCourse(9, domain.CourseTypeMinor, 0)
	course.LectureRoomIDs = []int64{roomA.ID, roomB.ID}

	a := &domain.Lesson{
		ID: 1, Course: course, Type: domain.SlotTypeMinor, Room: roomA,
		Slot: testSlot(10001, "Monday", "08:00", "09:00", domain.SlotTypeMinor),
	}
	b := &domain.Lesson{
		ID: 2, Course: course, Type: domain.SlotTypeMinor, Room: roomB,
		Slot: testSlot(10002, "Monday", "18:00", "19:30", domain.SlotTypeMinor),
	}

	got := contributions(ctx, a, b)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Minor course day spread"])
	assert.NotContains(t, got, "Minor course room compatibility")
	assert.NotContains(t, got, "Minor time slot compatibility")

	b.Slot = testSlot(10003, "Tuesday", "18:00", "19:30", domain.SlotTypeMinor)
	got = contributions(ctx, a, b)
	assert.NotContains(t, got, "Minor course day spread")
}

func TestMinorSlotAndRoomCompatibility(t *testing.T) {
	ctx := testContext()
	room := testRoom(1, 40, domain.RoomTypeLecture)
	course := testCourse(9, domain.CourseTypeMinor, 0)

	// Room not on the course's allowed list, slot outside the minor windows.
	l := &domain.Lesson{
		ID: 1, Course: course, Type: domain.SlotTypeMinor, Room: room,
		Slot: testSlot(10001, "Monday", "09:00", "10:30", domain.SlotTypeMinor),
	}
	got := contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Minors must be assigned to valid rooms"])
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Minor course room compatibility"])
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Minor courses in configured minor slots"])
	assert.Equal(t, Score{Hard: -WeightHigh}, got["Minor time slot compatibility"])
}

func TestBatchTimeSlotCompatibility(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60)
	room := testRoom(1, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}

	l := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: room,
		Slot: testSlot(1001, "Monday", "09:00", "10:30", domain.SlotTypeLecture),
	}
	got := contributions(ctx, l)
	assert.NotContains(t, got, "Batch time slot compatibility")

	// A window missing from the year catalog is incompatible.
	l.Slot = testSlot(1002, "Monday", "08:00", "09:30", domain.SlotTypeLecture)
	got = contributions(ctx, l)
	assert.Equal(t, Score{Hard: -WeightMedium}, got["Batch time slot compatibility"])
}

func TestPreferredStartTimeDrift(t *testing.T) {
	ctx := testContext()
	batch := testBatch(1, 2024, 60)
	room := testRoom(1, 70, domain.RoomTypeLecture)
	batch.LectureRoomIDs = []int64{room.ID}

	l := &domain.Lesson{
		ID: 1, Course: testCourse(1, domain.CourseTypeRegular, 0), Batch: batch,
		Type: domain.SlotTypeLecture, Room: room,
		Slot: testSlot(1001, "Monday", "10:45", "12:15", domain.SlotTypeLecture),
	}
	// 105 minutes past the preferred 09:00 start, three started half hours.
	got := contributions(ctx, l)
	assert.Equal(t, Score{Soft: -3 * WeightSoftLow}, got["Preferred start time"])

	l.Slot = testSlot(1002, "Monday", "09:00", "10:30", domain.SlotTypeLecture)
	got = contributions(ctx, l)
	assert.NotContains(t, got, "Preferred start time")
}
