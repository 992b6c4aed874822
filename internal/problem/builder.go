package problem

import (
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// Slot id namespaces. Each batch gets a block of ids starting at
// batchID*1000 so regenerated catalogs stay collision-free; minor slots live
// in their own block.
const (
	batchSlotIDStride = 1000
	minorSlotIDBase   = 10000
)

// Builder expands catalogs into a Problem.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder constructs a builder; a nil logger is replaced with a nop.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Input carries the already-validated in-memory catalogs a build consumes.
type Input struct {
	Faculty      []*domain.Faculty
	Rooms        []*domain.Room
	Courses      []*domain.Course
	MinorCourses []*domain.Course
	Batches      []*domain.StudentBatch
}

// Build generates lessons and time slots for one optimization run. Any empty
// essential catalog fails the build before construction starts.
func (b *Builder) Build(in Input, cfg *timeslot.Configuration) (*Problem, error) {
	if cfg == nil {
		return nil, fmt.Errorf("time slot configuration is required")
	}
	switch {
	case len(in.Faculty) == 0:
		return nil, fmt.Errorf("essential data missing: no faculty loaded")
	case len(in.Rooms) == 0:
		return nil, fmt.Errorf("essential data missing: no rooms loaded")
	case len(in.Courses) == 0:
		return nil, fmt.Errorf("essential data missing: no courses loaded")
	case len(in.MinorCourses) == 0:
		return nil, fmt.Errorf("essential data missing: no minor courses loaded")
	case len(in.Batches) == 0:
		return nil, fmt.Errorf("essential data missing: no batches loaded")
	}

	p := &Problem{
		Faculty:      in.Faculty,
		Rooms:        in.Rooms,
		Courses:      in.Courses,
		MinorCourses: in.MinorCourses,
		Batches:      in.Batches,
	}

	slotsByBatch := make(map[int64][]*domain.TimeSlot, len(in.Batches))
	for _, batch := range in.Batches {
		slots := b.buildBatchSlots(batch, cfg)
		slotsByBatch[batch.ID] = slots
		p.TimeSlots = append(p.TimeSlots, slots...)
	}
	p.MinorTimeSlots = b.buildMinorSlots(cfg)

	batchByID := lo.KeyBy(in.Batches, func(batch *domain.StudentBatch) int64 { return batch.ID })

	var lessonID int64 = 1
	for _, course := range in.Courses {
		for _, batchID := range course.BatchIDs {
			batch, ok := batchByID[batchID]
			if !ok {
				b.logger.Warn("course references unknown batch",
					zap.String("course", course.Code),
					zap.Int64("batch_id", batchID))
				continue
			}
			for i := 0; i < course.HoursPerWeek; i++ {
				lesson := &domain.Lesson{
					ID:             lessonID,
					Course:         course,
					Batch:          batch,
					Type:           lessonTypeFor(course, i),
					CandidateRooms: in.Rooms,
					CandidateSlots: slotsByBatch[batchID],
				}
				if len(course.EligibleFaculty) > 0 {
					lesson.Faculty = course.EligibleFaculty[0]
				}
				p.Lessons = append(p.Lessons, lesson)
				lessonID++
			}
		}
	}

	for _, course := range in.MinorCourses {
		for i := 0; i < course.HoursPerWeek; i++ {
			lesson := &domain.Lesson{
				ID:             lessonID,
				Course:         course,
				Type:           domain.SlotTypeMinor,
				CandidateRooms: in.Rooms,
				CandidateSlots: p.MinorTimeSlots,
			}
			if len(course.EligibleFaculty) > 0 {
				lesson.Faculty = course.EligibleFaculty[0]
			}
			p.MinorLessons = append(p.MinorLessons, lesson)
			lessonID++
		}
	}

	ideal := idealDailyRoomUsage(len(p.Lessons)+len(p.MinorLessons), len(in.Rooms))
	for _, room := range in.Rooms {
		if room.IdealDailyUsage == 0 {
			room.IdealDailyUsage = ideal
		}
	}

	b.logger.Info("problem built",
		zap.Int("lessons", len(p.Lessons)),
		zap.Int("minor_lessons", len(p.MinorLessons)),
		zap.Int("time_slots", len(p.TimeSlots)),
		zap.Int("minor_time_slots", len(p.MinorTimeSlots)))
	return p, nil
}

// idealDailyRoomUsage spreads the weekly lesson volume evenly over the room
// inventory and the five teaching days, rounding up.
func idealDailyRoomUsage(lessons, rooms int) int {
	if rooms == 0 {
		return 1
	}
	perRoomPerDay := (lessons + rooms*len(domain.Weekdays) - 1) / (rooms * len(domain.Weekdays))
	if perRoomPerDay < 1 {
		return 1
	}
	return perRoomPerDay
}

// lessonTypeFor marks session i of a course as LAB once the lecture-hour
// indices are exhausted, provided the course has practical hours at all.
func lessonTypeFor(course *domain.Course, i int) domain.LessonType {
	if course.PracticalHours > 0 && i >= course.LectureHours {
		return domain.SlotTypeLab
	}
	return domain.SlotTypeLecture
}

func (b *Builder) buildBatchSlots(batch *domain.StudentBatch, cfg *timeslot.Configuration) []*domain.TimeSlot {
	defs := cfg.SlotsForBatchName(batch.Name)
	slots := make([]*domain.TimeSlot, 0, len(defs)*len(domain.Weekdays))
	id := batch.ID * batchSlotIDStride
	for _, day := range domain.Weekdays {
		for _, def := range defs {
			slot, err := slotFromDefinition(id, day, def)
			if err != nil {
				b.logger.Warn("skipping malformed slot definition",
					zap.String("batch", batch.Name), zap.Error(err))
				continue
			}
			slots = append(slots, slot)
			id++
		}
	}
	return slots
}

func (b *Builder) buildMinorSlots(cfg *timeslot.Configuration) []*domain.TimeSlot {
	slots := make([]*domain.TimeSlot, 0, len(cfg.MinorSlots)*len(domain.Weekdays))
	id := int64(minorSlotIDBase)
	for _, day := range domain.Weekdays {
		for _, def := range cfg.MinorSlots {
			slot, err := slotFromDefinition(id, day, def)
			if err != nil {
				b.logger.Warn("skipping malformed minor slot definition", zap.Error(err))
				continue
			}
			slots = append(slots, slot)
			id++
		}
	}
	return slots
}

func slotFromDefinition(id int64, day string, def timeslot.Definition) (*domain.TimeSlot, error) {
	start, err := def.Start()
	if err != nil {
		return nil, err
	}
	end, err := def.End()
	if err != nil {
		return nil, err
	}
	return &domain.TimeSlot{ID: id, Day: day, Start: start, End: end, Type: def.SlotType}, nil
}
