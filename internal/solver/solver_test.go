package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-engine/internal/domain"
	"github.com/noah-isme/timetable-engine/internal/problem"
	"github.com/noah-isme/timetable-engine/internal/score"
	"github.com/noah-isme/timetable-engine/internal/timeslot"
)

func buildProblem(t *testing.T) (*problem.Problem, *timeslot.Context) {
	t.Helper()
	cfg := timeslot.DefaultConfiguration()

	facA := &domain.Faculty{ID: 1, Name: "Dr. A", MaxHoursPerDay: 6}
	facB := &domain.Faculty{ID: 2, Name: "Dr. B", MaxHoursPerDay: 6}

	lecture := &domain.Room{ID: 1, Number: "LR-1", Capacity: 70, Type: domain.RoomTypeLecture}
	lab := &domain.Room{ID: 2, Number: "CL-1", Capacity: 60, Type: domain.RoomTypeComputerLab}

	batch := &domain.StudentBatch{
		ID: 1, Name: "CSE_2024_A", Year: 2024, Strength: 60,
		RequiredLabsPerWeek: 1,
		LectureRoomIDs:      []int64{lecture.ID},
		PracticalRoomIDs:    []int64{lab.ID},
	}

	courses := []*domain.Course{
		{ID: 1, Code: "CS101", Name: "Programming", Type: domain.CourseTypeRegular,
			LectureHours: 2, HoursPerWeek: 2, BatchIDs: []int64{1},
			EligibleFaculty: []*domain.Faculty{facA}},
		{ID: 2, Code: "CS102", Name: "Discrete Math", Type: domain.CourseTypeRegular,
			LectureHours: 2, HoursPerWeek: 2, BatchIDs: []int64{1},
			EligibleFaculty: []*domain.Faculty{facB}},
		{ID: 3, Code: "CS103", Name: "Programming Lab", Type: domain.CourseTypeLab,
			PracticalHours: 2, HoursPerWeek: 1, BatchIDs: []int64{1},
			EligibleFaculty: []*domain.Faculty{facA}},
	}
	minors := []*domain.Course{
		{ID: 9, Code: "MN101", Name: "Economics Minor", Type: domain.CourseTypeMinor,
			HoursPerWeek: 1, LectureRoomIDs: []int64{lecture.ID},
			EligibleFaculty: []*domain.Faculty{facB}},
	}

	prob, err := problem.NewBuilder(zap.NewNop()).Build(problem.Input{
		Faculty:      []*domain.Faculty{facA, facB},
		Rooms:        []*domain.Room{lecture, lab},
		Courses:      courses,
		MinorCourses: minors,
		Batches:      []*domain.StudentBatch{batch},
	}, cfg)
	require.NoError(t, err)
	return prob, timeslot.NewContext(cfg)
}

func TestSolveAssignsAllLessons(t *testing.T) {
	prob, tctx := buildProblem(t)

	unimproved := 1
	s, err := New(Config{
		TerminationSeconds:     2,
		UnimprovedSecondsLimit: &unimproved,
		LateAcceptanceSize:     50,
		Seed:                   42,
	}, zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, tctx)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Unassigned)
	for _, l := range prob.AllLessons() {
		assert.True(t, l.IsAssigned(), l.String())
	}
	assert.Equal(t, PhaseTerminated, s.Status().Phase)

	// The applied placements must score exactly what the result reports.
	calc := score.NewCalculator(tctx)
	assert.Equal(t, res.Score, calc.Evaluate(score.NewState(prob.AllLessons())))
	assert.Equal(t, res.Score.Feasible(), res.Feasible)
}

func TestSolveStopsOnBestScoreLimit(t *testing.T) {
	prob, tctx := buildProblem(t)

	limit := -1 << 40 // any score clears this immediately
	s, err := New(Config{
		TerminationMinutes: 1,
		BestScoreLimit:     &limit,
		LateAcceptanceSize: 50,
		Seed:               1,
	}, nil)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), prob, tctx)
	require.NoError(t, err)
	assert.Equal(t, "score-limit", res.Termination)
}

func TestSolveStaysWithinBudget(t *testing.T) {
	prob, tctx := buildProblem(t)

	s, err := New(Config{TerminationSeconds: 1, LateAcceptanceSize: 50, Seed: 1}, nil)
	require.NoError(t, err)

	start := time.Now()
	res, err := s.Solve(context.Background(), prob, tctx)
	require.NoError(t, err)
	assert.Equal(t, "budget", res.Termination)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestConstructStopsAtDeadline(t *testing.T) {
	prob, tctx := buildProblem(t)

	s, err := New(Config{TerminationSeconds: 1, LateAcceptanceSize: 50, Seed: 1}, nil)
	require.NoError(t, err)

	lessons := prob.AllLessons()
	st := score.NewState(lessons)
	calc := score.NewCalculator(tctx)

	// An already-expired deadline must leave every lesson unplaced.
	s.construct(context.Background(), time.Now().Add(-time.Second), st, calc, lessons)
	assert.Equal(t, len(lessons), score.Unassigned(lessons))
}

func TestSolveHonorsCancellation(t *testing.T) {
	prob, tctx := buildProblem(t)

	s, err := New(Config{TerminationMinutes: 10, LateAcceptanceSize: 50, Seed: 1}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	res, err := s.Solve(ctx, prob, tctx)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", res.Termination)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestSolverIsSingleUse(t *testing.T) {
	prob, tctx := buildProblem(t)

	limit := -1 << 40
	s, err := New(Config{TerminationSeconds: 1, BestScoreLimit: &limit, LateAcceptanceSize: 10, Seed: 1}, nil)
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), prob, tctx)
	require.NoError(t, err)

	_, err = s.Solve(context.Background(), prob, tctx)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	zero := Config{LateAcceptanceSize: 10}
	assert.Error(t, zero.Validate())

	bad := DefaultConfig()
	bad.LateAcceptanceSize = 0
	assert.Error(t, bad.Validate())

	negative := DefaultConfig()
	negative.TerminationMinutes = -1
	assert.Error(t, negative.Validate())
}
