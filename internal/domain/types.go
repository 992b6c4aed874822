package domain

// CourseType classifies a course within the curriculum.
type CourseType string

const (
	CourseTypeRegular  CourseType = "regular"
	CourseTypeElective CourseType = "elective"
	CourseTypeLab      CourseType = "lab"
	CourseTypeMinor    CourseType = "minor"
)

// RoomType classifies the physical room inventory.
type RoomType string

const (
	RoomTypeLecture     RoomType = "LECTURE_ROOM"
	RoomTypeComputerLab RoomType = "COMPUTER_LAB"
	RoomTypeHardwareLab RoomType = "HARDWARE_LAB"
)

// SlotType marks what kind of session a time slot is carved out for.
type SlotType string

const (
	SlotTypeLecture SlotType = "LECTURE"
	SlotTypeLab     SlotType = "LAB"
	SlotTypeMinor   SlotType = "MINOR"
)

// LessonType mirrors SlotType for the schedulable unit; a lesson is valid
// when its type agrees with its slot's type.
type LessonType = SlotType

// Weekdays lists the schedulable days in catalog order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
