package export

import (
	"sort"

	"github.com/noah-isme/timetable-engine/internal/domain"
)

var timetableHeaders = []string{"Day", "Start", "End", "Course", "Type", "Batch", "Faculty", "Room"}

var dayOrder = func() map[string]int {
	order := make(map[string]int, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		order[d] = i
	}
	return order
}()

// TimetableDataset flattens assigned lessons into an export dataset, ordered
// by day, start time and batch. Unassigned lessons are skipped.
func TimetableDataset(lessons []*domain.Lesson) Dataset {
	assigned := make([]*domain.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.IsAssigned() {
			assigned = append(assigned, l)
		}
	}
	sort.SliceStable(assigned, func(i, j int) bool {
		a, b := assigned[i], assigned[j]
		if dayOrder[a.Slot.Day] != dayOrder[b.Slot.Day] {
			return dayOrder[a.Slot.Day] < dayOrder[b.Slot.Day]
		}
		if a.Slot.Start != b.Slot.Start {
			return a.Slot.Start.Before(b.Slot.Start)
		}
		return batchName(a) < batchName(b)
	})

	ds := Dataset{Headers: timetableHeaders}
	for _, l := range assigned {
		row := map[string]string{
			"Day":     l.Slot.Day,
			"Start":   l.Slot.Start.String(),
			"End":     l.Slot.End.String(),
			"Type":    string(l.Type),
			"Batch":   batchName(l),
			"Room":    l.Room.Number,
			"Course":  "",
			"Faculty": "",
		}
		if l.Course != nil {
			row["Course"] = l.Course.Code
		}
		if l.Faculty != nil {
			row["Faculty"] = l.Faculty.Name
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func batchName(l *domain.Lesson) string {
	if l.Batch == nil {
		return "-"
	}
	return l.Batch.Name
}
