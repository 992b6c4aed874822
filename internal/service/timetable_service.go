package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/csvio"
	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/problem"
	"github.com/noah-isme/timetable-engine/internal/score"
	"github.com/noah-isme/timetable-engine/internal/solver"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
	"github.com/noah-isme/timetable-engine/pkg/jobs"
)

// TimetableService orchestrates the full generation lifecycle: catalog
// loading, problem construction, background solving, and read access to the
// latest generated timetable. One solve runs at a time; generation requests
// are serialized through a single-worker job queue.
type TimetableService struct {
	log        *zap.Logger
	store      *csvio.Store
	metrics    *MetricsService
	runTimeout time.Duration

	queue *jobs.Queue

	mu        sync.RWMutex
	solverCfg solver.Config
	slotCfg   *timeslot.Configuration

	runID     string
	running   bool
	active    *solver.Solver
	startedAt time.Time

	result      *solver.Result
	problem     *problem.Problem
	breakdown   []score.ConstraintScore
	generatedAt time.Time
}

type solveJob struct {
	prob *problem.Problem
	slv  *solver.Solver
	tctx *timeslot.Context
}

// NewTimetableService wires the service and its generation queue. Call
// Start before accepting generation requests and Stop on shutdown.
func NewTimetableService(store *csvio.Store, metrics *MetricsService, solverCfg solver.Config, runTimeout time.Duration, log *zap.Logger) *TimetableService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &TimetableService{
		log:        log,
		store:      store,
		metrics:    metrics,
		runTimeout: runTimeout,
		solverCfg:  solverCfg,
		slotCfg:    timeslot.DefaultConfiguration(),
	}
	s.queue = jobs.NewQueue("timetable-generation", s.handleGenerateJob, jobs.QueueConfig{
		Workers:    1,
		BufferSize: 1,
		Logger:     log,
	})
	return s
}

// Start launches the generation worker.
func (s *TimetableService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the generation worker, cancelling any in-flight solve.
func (s *TimetableService) Stop() {
	s.queue.Stop()
}

// Generate validates inputs, builds the optimization problem and queues a
// solver run. It fails fast when a run is already in progress or the
// catalogs cannot produce a problem.
func (s *TimetableService) Generate(ctx context.Context) (*dto.RunView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, apperrors.ErrSolverRunning
	}

	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrEssentialData.Code,
			apperrors.ErrEssentialData.Status, "catalog load failed")
	}

	slotCfg := s.slotCfg
	prob, err := problem.NewBuilder(s.log).Build(problem.Input{
		Faculty:      catalog.Faculty,
		Rooms:        catalog.Rooms,
		Courses:      catalog.Courses,
		MinorCourses: catalog.MinorCourses,
		Batches:      catalog.Batches,
	}, slotCfg)
	if err != nil {
		if strings.Contains(err.Error(), "essential data missing") {
			return nil, apperrors.Wrap(err, apperrors.ErrEssentialData.Code,
				apperrors.ErrEssentialData.Status, err.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}

	slv, err := solver.New(s.solverCfg, s.log)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code,
			apperrors.ErrValidation.Status, err.Error())
	}

	runID := uuid.NewString()
	job := jobs.Job{
		ID:      runID,
		Type:    "generate",
		Payload: solveJob{prob: prob, slv: slv, tctx: timeslot.NewContext(slotCfg)},
	}
	if err := s.queue.Enqueue(job); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code,
			apperrors.ErrInternal.Status, "enqueue generation run")
	}

	s.runID = runID
	s.running = true
	s.active = slv
	s.startedAt = time.Now().UTC()
	s.log.Info("generation run queued",
		zap.String("run_id", runID),
		zap.Int("lessons", len(prob.AllLessons())))

	return &dto.RunView{
		RunID:     runID,
		Phase:     solver.PhaseUnsolved,
		StartedAt: s.startedAt,
	}, nil
}

func (s *TimetableService) handleGenerateJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(solveJob)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	runCtx := ctx
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	res, err := payload.slv.Solve(runCtx, payload.prob, payload.tctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.active = nil
	if err != nil {
		s.log.Error("generation run failed", zap.String("run_id", job.ID), zap.Error(err))
		return err
	}

	lessons := payload.prob.AllLessons()
	total, breakdown := score.NewCalculator(payload.tctx).Explain(score.NewState(lessons))
	if total != res.Score {
		// Should never diverge; recompute wins if it does.
		s.log.Warn("solver score disagrees with full evaluation",
			zap.String("solver", res.Score.String()), zap.String("full", total.String()))
		res.Score = total
		res.Feasible = total.Feasible()
	}

	s.result = res
	s.problem = payload.prob
	s.breakdown = breakdown
	s.generatedAt = time.Now().UTC()
	s.metrics.ObserveSolveRun(res.Termination, res.Score, res.Moves, len(lessons), res.Duration)
	s.log.Info("generation run finished",
		zap.String("run_id", job.ID),
		zap.String("score", res.Score.String()),
		zap.Bool("feasible", res.Feasible),
		zap.String("termination", res.Termination))
	return nil
}

// Status reports the current or most recent run.
func (s *TimetableService) Status() *dto.RunView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := &dto.RunView{RunID: s.runID, Phase: solver.PhaseUnsolved, StartedAt: s.startedAt}
	if s.active != nil {
		st := s.active.Status()
		view.Phase = st.Phase
		view.BestScore = st.Best
		view.Moves = st.Moves
		return view
	}
	if s.result != nil {
		view.Phase = solver.PhaseTerminated
		view.BestScore = s.result.Score
		view.Moves = s.result.Moves
	}
	return view
}

// Timetable returns the latest generated timetable with its score
// breakdown.
func (s *TimetableService) Timetable() (*dto.TimetableView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, apperrors.ErrNoTimetable
	}
	return &dto.TimetableView{
		GeneratedAt: s.generatedAt,
		Score:       s.result.Score,
		Feasible:    s.result.Feasible,
		Lessons:     dto.NewLessonViews(s.problem.AllLessons()),
		Breakdown:   s.breakdown,
	}, nil
}

// TimetableForBatch filters the latest timetable down to one batch.
func (s *TimetableService) TimetableForBatch(batchID int64) (*dto.TimetableView, error) {
	return s.filtered(func(l *domain.Lesson) bool {
		return l.Batch != nil && l.Batch.ID == batchID
	})
}

// TimetableForFaculty filters the latest timetable down to one faculty
// member.
func (s *TimetableService) TimetableForFaculty(facultyID int64) (*dto.TimetableView, error) {
	return s.filtered(func(l *domain.Lesson) bool {
		return l.Faculty != nil && l.Faculty.ID == facultyID
	})
}

// TimetableForRoom filters the latest timetable down to one room.
func (s *TimetableService) TimetableForRoom(roomID int64) (*dto.TimetableView, error) {
	return s.filtered(func(l *domain.Lesson) bool {
		return l.Room != nil && l.Room.ID == roomID
	})
}

func (s *TimetableService) filtered(keep func(*domain.Lesson) bool) (*dto.TimetableView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, apperrors.ErrNoTimetable
	}
	var lessons []*domain.Lesson
	for _, l := range s.problem.AllLessons() {
		if keep(l) {
			lessons = append(lessons, l)
		}
	}
	return &dto.TimetableView{
		GeneratedAt: s.generatedAt,
		Score:       s.result.Score,
		Feasible:    s.result.Feasible,
		Lessons:     dto.NewLessonViews(lessons),
	}, nil
}

// AssignedLessons exposes the latest solution's lessons for exporting.
func (s *TimetableService) AssignedLessons() ([]*domain.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, apperrors.ErrNoTimetable
	}
	return s.problem.AllLessons(), nil
}

// Catalog accessors re-read the CSV store so edits show up without a
// restart.

func (s *TimetableService) Faculty() ([]dto.FacultyView, error) {
	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return nil, apperrors.FromError(err)
	}
	out := make([]dto.FacultyView, 0, len(catalog.Faculty))
	for _, f := range catalog.Faculty {
		out = append(out, dto.NewFacultyView(f))
	}
	return out, nil
}

func (s *TimetableService) Rooms() ([]dto.RoomView, error) {
	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return nil, apperrors.FromError(err)
	}
	out := make([]dto.RoomView, 0, len(catalog.Rooms))
	for _, r := range catalog.Rooms {
		out = append(out, dto.NewRoomView(r))
	}
	return out, nil
}

func (s *TimetableService) Batches() ([]dto.BatchView, error) {
	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return nil, apperrors.FromError(err)
	}
	out := make([]dto.BatchView, 0, len(catalog.Batches))
	for _, b := range catalog.Batches {
		out = append(out, dto.NewBatchView(b))
	}
	return out, nil
}

func (s *TimetableService) Courses() ([]dto.CourseView, error) {
	catalog, err := s.store.LoadCatalog()
	if err != nil {
		return nil, apperrors.FromError(err)
	}
	out := make([]dto.CourseView, 0, len(catalog.Courses)+len(catalog.MinorCourses))
	for _, c := range catalog.Courses {
		out = append(out, dto.NewCourseView(c))
	}
	for _, c := range catalog.MinorCourses {
		out = append(out, dto.NewCourseView(c))
	}
	return out, nil
}
