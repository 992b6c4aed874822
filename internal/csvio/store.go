package csvio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/domain"
)

// Catalog is the fully-resolved input data for a scheduling run: records
// linked into domain objects, batch room permissions and weekly lab
// requirements derived.
type Catalog struct {
	Faculty      []*domain.Faculty
	Rooms        []*domain.Room
	Courses      []*domain.Course
	MinorCourses []*domain.Course
	Batches      []*domain.StudentBatch
}

// Store reads and manages the catalog files in one data directory.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore returns a store over dir. A nil logger defaults to a no-op.
func NewStore(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dir: dir, log: log}
}

// Dir is the managed data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(file string) string { return filepath.Join(s.dir, file) }

func readRecords[T any](s *Store, file string) ([]*T, error) {
	f, err := os.Open(s.path(file))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	var records []*T
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return records, nil
}

// LoadCatalog reads all five catalog files and resolves cross references:
// eligible faculty onto courses, room permissions and lab requirements onto
// batches. Dangling references are dropped with a warning rather than
// failing the load.
func (s *Store) LoadCatalog() (*Catalog, error) {
	batchRecords, err := readRecords[BatchRecord](s, FileBatches)
	if err != nil {
		return nil, err
	}
	facultyRecords, err := readRecords[FacultyRecord](s, FileFaculty)
	if err != nil {
		return nil, err
	}
	roomRecords, err := readRecords[RoomRecord](s, FileRooms)
	if err != nil {
		return nil, err
	}
	courseRecords, err := readRecords[CourseRecord](s, FileCourses)
	if err != nil {
		return nil, err
	}
	minorRecords, err := readRecords[MinorCourseRecord](s, FileMinors)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{}
	for _, r := range facultyRecords {
		cat.Faculty = append(cat.Faculty, &domain.Faculty{
			ID:             r.ID,
			Name:           r.Name,
			Email:          r.Email,
			Subjects:       splitList(r.Subjects),
			MaxHoursPerDay: r.MaxHoursPerDay,
		})
	}
	facultyByID := lo.KeyBy(cat.Faculty, func(f *domain.Faculty) int64 { return f.ID })

	var lectureRoomIDs, practicalRoomIDs []int64
	for _, r := range roomRecords {
		room := &domain.Room{
			ID:       r.ID,
			Number:   r.Number,
			Capacity: r.Capacity,
			Type:     roomTypeFrom(r.Type),
		}
		cat.Rooms = append(cat.Rooms, room)
		if room.IsLabRoom() {
			practicalRoomIDs = append(practicalRoomIDs, room.ID)
		} else {
			lectureRoomIDs = append(lectureRoomIDs, room.ID)
		}
	}

	for _, r := range batchRecords {
		cat.Batches = append(cat.Batches, &domain.StudentBatch{
			ID:               r.ID,
			Name:             r.Name,
			Year:             r.Year,
			Strength:         r.Strength,
			LectureRoomIDs:   lectureRoomIDs,
			PracticalRoomIDs: practicalRoomIDs,
		})
	}
	batchByID := lo.KeyBy(cat.Batches, func(b *domain.StudentBatch) int64 { return b.ID })

	labCoursesPerBatch := map[int64]int{}
	for _, r := range courseRecords {
		course := &domain.Course{
			ID:             r.ID,
			Code:           r.Code,
			Name:           r.Name,
			Type:           courseTypeFrom(r.Type),
			LectureHours:   r.LectureHours,
			PracticalHours: r.PracticalHours,
			Credits:        r.Credits,
			HoursPerWeek:   r.HoursPerWeek,
			BatchIDs:       splitIDs(r.BatchIDs),
		}
		course.EligibleFaculty = s.resolveFaculty(r.Code, splitIDs(r.EligibleFacultyIDs), facultyByID)
		for _, batchID := range course.BatchIDs {
			if _, ok := batchByID[batchID]; !ok {
				s.log.Warn("course references unknown batch",
					zap.String("course", course.Code), zap.Int64("batch_id", batchID))
				continue
			}
			if course.IsLabCourse() {
				labCoursesPerBatch[batchID]++
			}
		}
		cat.Courses = append(cat.Courses, course)
	}

	for _, b := range cat.Batches {
		b.RequiredLabsPerWeek = labCoursesPerBatch[b.ID]
	}

	for _, r := range minorRecords {
		course := &domain.Course{
			ID:             r.ID,
			Code:           r.Code,
			Name:           r.Name,
			Type:           domain.CourseTypeMinor,
			HoursPerWeek:   r.HoursPerWeek,
			LectureRoomIDs: splitIDs(r.LectureRoomIDs),
		}
		course.EligibleFaculty = s.resolveFaculty(r.Code, splitIDs(r.EligibleFacultyIDs), facultyByID)
		cat.MinorCourses = append(cat.MinorCourses, course)
	}

	s.log.Info("catalog loaded",
		zap.Int("batches", len(cat.Batches)),
		zap.Int("faculty", len(cat.Faculty)),
		zap.Int("rooms", len(cat.Rooms)),
		zap.Int("courses", len(cat.Courses)),
		zap.Int("minor_courses", len(cat.MinorCourses)))
	return cat, nil
}

func (s *Store) resolveFaculty(courseCode string, ids []int64, byID map[int64]*domain.Faculty) []*domain.Faculty {
	out := make([]*domain.Faculty, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			s.log.Warn("course references unknown faculty",
				zap.String("course", courseCode), zap.Int64("faculty_id", id))
			continue
		}
		out = append(out, f)
	}
	return out
}
