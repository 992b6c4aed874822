package solver

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/problem"
	"github.com/noah-isme/timetable-engine/internal/score"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

// Result summarizes a finished run. The problem's lessons hold the best
// placements found.
type Result struct {
	Score      score.Score `json:"score"`
	Feasible   bool        `json:"feasible"`
	Unassigned int         `json:"unassigned"`

	Moves        int64         `json:"moves"`
	Accepted     int64         `json:"accepted"`
	Improvements int64         `json:"improvements"`
	Duration     time.Duration `json:"duration"`
	Termination  string        `json:"termination"`
}

// Status is a point-in-time snapshot of a running solve.
type Status struct {
	Phase Phase       `json:"phase"`
	Best  score.Score `json:"bestScore"`
	Moves int64       `json:"moves"`
}

// Solver runs late-acceptance hill climbing over a problem's lessons.
// A Solver is single-use: construct one per run.
type Solver struct {
	cfg Config
	log *zap.Logger

	mu     sync.Mutex
	phase  Phase
	best   score.Score
	moves  int64
	solved bool
}

// New returns a solver for one run under the given config.
func New(cfg Config, log *zap.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{cfg: cfg, log: log, phase: PhaseUnsolved}, nil
}

// Status reports the current phase and best score; safe to call from other
// goroutines while Solve runs.
func (s *Solver) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Phase: s.phase, Best: s.best, Moves: s.moves}
}

func (s *Solver) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Solver) publish(best score.Score, moves int64) {
	s.mu.Lock()
	s.best = best
	s.moves = moves
	s.mu.Unlock()
}

var errSolverReused = errors.New("solver: already used; construct a new solver per run")

type placement struct {
	room *domain.Room
	slot *domain.TimeSlot
}

// Solve mutates the problem's lessons toward the best placements it can
// find within the configured budget, then leaves the best solution applied.
// Cancelling ctx stops the run early with the best found so far.
func (s *Solver) Solve(ctx context.Context, prob *problem.Problem, tctx *timeslot.Context) (*Result, error) {
	s.mu.Lock()
	if s.solved || s.phase != PhaseUnsolved {
		s.mu.Unlock()
		return nil, errSolverReused
	}
	s.phase = PhaseConstructing
	s.mu.Unlock()

	start := time.Now()
	deadline := start.Add(s.cfg.Budget())

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	lessons := prob.AllLessons()
	st := score.NewState(lessons)
	calc := score.NewCalculator(tctx)

	s.setPhase(PhaseConstructing)
	current := s.construct(ctx, deadline, st, calc, lessons)

	best := current
	bestPlacements := snapshot(lessons)
	lastImproved := time.Now()

	s.log.Info("construction finished",
		zap.String("score", current.String()),
		zap.Int("lessons", len(lessons)),
		zap.Int("unassigned", score.Unassigned(lessons)))

	ring := make([]score.Score, s.cfg.LateAcceptanceSize)
	for i := range ring {
		ring[i] = current
	}

	s.setPhase(PhaseImproving)
	var moves, accepted, improvements int64
	reason := "budget"

loop:
	for i := int64(0); ; i++ {
		if i%64 == 0 {
			select {
			case <-ctx.Done():
				reason = "cancelled"
				break loop
			default:
			}
			now := time.Now()
			if now.After(deadline) {
				break loop
			}
			if s.cfg.UnimprovedSecondsLimit != nil &&
				now.Sub(lastImproved) >= time.Duration(*s.cfg.UnimprovedSecondsLimit)*time.Second {
				reason = "unimproved"
				break loop
			}
			s.publish(best, moves)
		}
		if s.cfg.BestScoreLimit != nil && best.Hard >= *s.cfg.BestScoreLimit {
			reason = "score-limit"
			break loop
		}

		m, ok := randomMove(rng, lessons)
		if !ok {
			reason = "no-moves"
			break loop
		}
		moves++

		undo := m.inverse()
		candidate := current.Add(calc.PreviewDelta(st, m.changes))
		ringIdx := i % int64(len(ring))
		if candidate.Compare(ring[ringIdx]) >= 0 || candidate.Compare(current) >= 0 {
			current = candidate
			accepted++
			ring[ringIdx] = current
			if current.Compare(best) > 0 {
				best = current
				bestPlacements = snapshot(lessons)
				improvements++
				lastImproved = time.Now()
			}
		} else {
			st.Apply(undo)
		}
	}

	restore(st, lessons, bestPlacements)
	s.setPhase(PhaseTerminated)
	s.publish(best, moves)
	s.mu.Lock()
	s.solved = true
	s.mu.Unlock()

	res := &Result{
		Score:        best,
		Feasible:     best.Feasible(),
		Unassigned:   score.Unassigned(lessons),
		Moves:        moves,
		Accepted:     accepted,
		Improvements: improvements,
		Duration:     time.Since(start),
		Termination:  reason,
	}
	s.log.Info("solve finished",
		zap.String("score", best.String()),
		zap.Int64("moves", moves),
		zap.Int64("accepted", accepted),
		zap.Duration("duration", res.Duration),
		zap.String("termination", reason))
	return res, nil
}

// construct greedily places every unassigned lesson at its best-scoring
// candidate placement, in lesson order. The termination budget applies here
// too: once the deadline passes, the remaining lessons stay unassigned and
// the partial score is returned.
func (s *Solver) construct(ctx context.Context, deadline time.Time, st *score.State, calc *score.Calculator, lessons []*domain.Lesson) score.Score {
	current := calc.Evaluate(st)
	for _, l := range lessons {
		if l.IsAssigned() {
			continue
		}
		select {
		case <-ctx.Done():
			return current
		default:
		}
		if time.Now().After(deadline) {
			return current
		}

		bestDelta := score.Score{}
		var bestChange *score.Assignment
		for _, slot := range l.CandidateSlots {
			for _, room := range l.CandidateRooms {
				change := []score.Assignment{{Lesson: l, Room: room, Slot: slot}}
				undo := []score.Assignment{{Lesson: l, Room: l.Room, Slot: l.Slot}}
				delta := calc.PreviewDelta(st, change)
				if bestChange == nil || delta.Compare(bestDelta) > 0 {
					bestDelta = delta
					bestChange = &score.Assignment{Lesson: l, Room: room, Slot: slot}
				}
				st.Apply(undo)
			}
		}
		if bestChange != nil {
			current = current.Add(calc.PreviewDelta(st, []score.Assignment{*bestChange}))
		}
	}
	return current
}

func snapshot(lessons []*domain.Lesson) map[int64]placement {
	snap := make(map[int64]placement, len(lessons))
	for _, l := range lessons {
		snap[l.ID] = placement{room: l.Room, slot: l.Slot}
	}
	return snap
}

func restore(st *score.State, lessons []*domain.Lesson, snap map[int64]placement) {
	changes := make([]score.Assignment, 0, len(lessons))
	for _, l := range lessons {
		p, ok := snap[l.ID]
		if !ok {
			continue
		}
		if l.Room != p.room || l.Slot != p.slot {
			changes = append(changes, score.Assignment{Lesson: l, Room: p.room, Slot: p.slot})
		}
	}
	if len(changes) > 0 {
		st.Apply(changes)
	}
}
