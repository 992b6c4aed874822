package solver

import (
	"math/rand"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/score"
)

// A move proposes a change to one or two lessons' placements. Moves are
// expressed as score.Assignment batches so the calculator can preview and
// revert them.
type move struct {
	kind    string
	changes []score.Assignment
}

func (m move) inverse() []score.Assignment {
	inv := make([]score.Assignment, len(m.changes))
	for i, ch := range m.changes {
		inv[i] = ch.Inverse()
	}
	return inv
}

// randomMove picks one of the three move kinds over the movable lessons:
// reassign a room, reassign a slot, or swap two lessons' placements.
// It returns false when no move can be formed.
func randomMove(rng *rand.Rand, lessons []*domain.Lesson) (move, bool) {
	if len(lessons) == 0 {
		return move{}, false
	}
	for attempt := 0; attempt < 8; attempt++ {
		l := lessons[rng.Intn(len(lessons))]
		switch rng.Intn(3) {
		case 0:
			if m, ok := roomMove(rng, l); ok {
				return m, true
			}
		case 1:
			if m, ok := slotMove(rng, l); ok {
				return m, true
			}
		default:
			if m, ok := swapMove(rng, l, lessons); ok {
				return m, true
			}
		}
	}
	return move{}, false
}

func roomMove(rng *rand.Rand, l *domain.Lesson) (move, bool) {
	if len(l.CandidateRooms) < 2 {
		return move{}, false
	}
	room := l.CandidateRooms[rng.Intn(len(l.CandidateRooms))]
	if l.Room != nil && room.ID == l.Room.ID {
		return move{}, false
	}
	return move{
		kind:    "room",
		changes: []score.Assignment{{Lesson: l, Room: room, Slot: l.Slot}},
	}, true
}

func slotMove(rng *rand.Rand, l *domain.Lesson) (move, bool) {
	if len(l.CandidateSlots) < 2 {
		return move{}, false
	}
	slot := l.CandidateSlots[rng.Intn(len(l.CandidateSlots))]
	if l.Slot != nil && slot.ID == l.Slot.ID {
		return move{}, false
	}
	return move{
		kind:    "slot",
		changes: []score.Assignment{{Lesson: l, Room: l.Room, Slot: slot}},
	}, true
}

// swapMove exchanges the full placements of two lessons. Minor lessons only
// swap with minor lessons; their slot catalogs are disjoint from batch
// slots, so a cross swap could never be valid.
func swapMove(rng *rand.Rand, l *domain.Lesson, lessons []*domain.Lesson) (move, bool) {
	other := lessons[rng.Intn(len(lessons))]
	if other == l || other.IsMinor() != l.IsMinor() {
		return move{}, false
	}
	if l.Room == nil && l.Slot == nil && other.Room == nil && other.Slot == nil {
		return move{}, false
	}
	return move{
		kind: "swap",
		changes: []score.Assignment{
			{Lesson: l, Room: other.Room, Slot: other.Slot},
			{Lesson: other, Room: l.Room, Slot: l.Slot},
		},
	}, true
}
