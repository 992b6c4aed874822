// Package csvio loads and manages the CSV catalogs the timetable engine
// feeds on: batches, faculty, rooms, courses and minor courses. Files are
// parsed with gocsv into flat records, then resolved into the linked domain
// catalog.
package csvio

import (
	"strconv"
	"strings"

	"github.com/noah-isme/timetable-engine/internal/domain"
)

// Catalog file names inside the data directory.
const (
	FileBatches = "batches.csv"
	FileFaculty = "faculty.csv"
	FileRooms   = "rooms.csv"
	FileCourses = "courses.csv"
	FileMinors  = "minor.csv"
)

// KnownFiles lists every managed catalog file.
var KnownFiles = []string{FileBatches, FileFaculty, FileRooms, FileCourses, FileMinors}

// BatchRecord is one row of batches.csv.
type BatchRecord struct {
	ID       int64  `csv:"id"`
	Name     string `csv:"batchName"`
	Year     int    `csv:"year"`
	Strength int    `csv:"strength"`
}

// FacultyRecord is one row of faculty.csv. Password is carried through for
// compatibility with the upstream file format but never used here.
type FacultyRecord struct {
	ID             int64  `csv:"id"`
	Name           string `csv:"name"`
	Email          string `csv:"email"`
	Password       string `csv:"password"`
	Subjects       string `csv:"subjects"`
	MaxHoursPerDay int    `csv:"maxHoursPerDay"`
}

// RoomRecord is one row of rooms.csv.
type RoomRecord struct {
	ID       int64  `csv:"id"`
	Number   string `csv:"roomNumber"`
	Capacity int    `csv:"capacity"`
	Type     string `csv:"type"`
}

// CourseRecord is one row of courses.csv. BatchIDs and EligibleFacultyIDs
// are semicolon-separated lists.
type CourseRecord struct {
	ID                 int64  `csv:"id"`
	Code               string `csv:"courseCode"`
	Name               string `csv:"name"`
	Type               string `csv:"courseType"`
	BatchIDs           string `csv:"batchId"`
	LectureHours       int    `csv:"lecture"`
	TheoryHours        int    `csv:"theory"`
	PracticalHours     int    `csv:"practical"`
	Credits            int    `csv:"credits"`
	HoursPerWeek       int    `csv:"hoursPerWeek"`
	EligibleFacultyIDs string `csv:"eligibleFacultyIds"`
}

// MinorCourseRecord is one row of minor.csv. Minor courses are batchless;
// instead they carry the rooms they may be taught in.
type MinorCourseRecord struct {
	ID                 int64  `csv:"id"`
	Code               string `csv:"courseCode"`
	Name               string `csv:"name"`
	HoursPerWeek       int    `csv:"hoursPerWeek"`
	LectureRoomIDs     string `csv:"lectureRoomIds"`
	EligibleFacultyIDs string `csv:"eligibleFacultyIds"`
}

// splitIDs parses a semicolon-separated ID list, tolerating pipes and
// surrounding whitespace. Unparseable entries are skipped.
func splitIDs(s string) []int64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '|'
	})
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func roomTypeFrom(s string) domain.RoomType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(domain.RoomTypeComputerLab):
		return domain.RoomTypeComputerLab
	case string(domain.RoomTypeHardwareLab):
		return domain.RoomTypeHardwareLab
	default:
		return domain.RoomTypeLecture
	}
}

func courseTypeFrom(s string) domain.CourseType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(domain.CourseTypeElective):
		return domain.CourseTypeElective
	case string(domain.CourseTypeLab):
		return domain.CourseTypeLab
	case string(domain.CourseTypeMinor):
		return domain.CourseTypeMinor
	default:
		return domain.CourseTypeRegular
	}
}
