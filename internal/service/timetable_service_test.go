package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/csvio"
	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/solver"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

const (
	testBatchesCSV = `id,batchName,year,strength
1,CSE_2024_A,2024,50
`
	testFacultyCSV = `id,name,email,password,subjects,maxHoursPerDay
1,Dr. A,a@example.edu,x,Programming,6
2,Dr. B,b@example.edu,x,Algorithms,6
`
	testRoomsCSV = `id,roomNumber,capacity,type
1,LR-101,70,LECTURE_ROOM
2,CL-201,60,COMPUTER_LAB
`
	testCoursesCSV = `id,courseCode,name,courseType,batchId,lecture,theory,practical,credits,hoursPerWeek,eligibleFacultyIds
1,CS101,Programming,regular,1,3,0,0,4,2,1
2,CS103,Programming Lab,lab,1,0,0,2,2,1,2
`
	testMinorCSV = `id,courseCode,name,hoursPerWeek,lectureRoomIds,eligibleFacultyIds
9,MN101,Economics Minor,1,1,2
`
)

func newTestService(t *testing.T, budgetSeconds int) *TimetableService {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		csvio.FileBatches: testBatchesCSV,
		csvio.FileFaculty: testFacultyCSV,
		csvio.FileRooms:   testRoomsCSV,
		csvio.FileCourses: testCoursesCSV,
		csvio.FileMinors:  testMinorCSV,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	unimproved := 1
	cfg := solver.Config{
		TerminationSeconds:     budgetSeconds,
		UnimprovedSecondsLimit: &unimproved,
		LateAcceptanceSize:     50,
		Seed:                   7,
	}
	store := csvio.NewStore(dir, nil)
	return NewTimetableService(store, nil, cfg, time.Minute, nil)
}

func waitForRun(t *testing.T, svc *TimetableService) {
	t.Helper()
	require.Eventually(t, func() bool {
		return svc.Status().Phase == solver.PhaseTerminated
	}, 30*time.Second, 50*time.Millisecond, "generation run did not finish")
}

func TestGenerateProducesTimetable(t *testing.T) {
	svc := newTestService(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	run, err := svc.Generate(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, solver.PhaseUnsolved, run.Phase)

	waitForRun(t, svc)

	view, err := svc.Timetable()
	require.NoError(t, err)
	assert.NotEmpty(t, view.Lessons)
	assert.NotEmpty(t, view.Breakdown)
	assert.False(t, view.GeneratedAt.IsZero())

	for _, l := range view.Lessons {
		assert.NotEmpty(t, l.Day)
		assert.NotEmpty(t, l.Room)
	}
}

func TestGenerateRejectsConcurrentRuns(t *testing.T) {
	svc := newTestService(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	_, err := svc.Generate(ctx)
	require.NoError(t, err)

	_, err = svc.Generate(ctx)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrSolverRunning.Code, appErr.Code)

	waitForRun(t, svc)
}

func TestTimetableBeforeGenerate(t *testing.T) {
	svc := newTestService(t, 1)

	_, err := svc.Timetable()
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNoTimetable.Code, appErr.Code)

	_, err = svc.TimetableForBatch(1)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNoTimetable.Code, appErr.Code)
}

func TestTimetableFilters(t *testing.T) {
	svc := newTestService(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	_, err := svc.Generate(ctx)
	require.NoError(t, err)
	waitForRun(t, svc)

	byBatch, err := svc.TimetableForBatch(1)
	require.NoError(t, err)
	for _, l := range byBatch.Lessons {
		assert.Equal(t, "CSE_2024_A", l.BatchName)
	}

	byFaculty, err := svc.TimetableForFaculty(2)
	require.NoError(t, err)
	for _, l := range byFaculty.Lessons {
		assert.Equal(t, "Dr. B", l.Faculty)
	}

	byRoom, err := svc.TimetableForRoom(999)
	require.NoError(t, err)
	assert.Empty(t, byRoom.Lessons)
}

func TestCatalogAccessors(t *testing.T) {
	svc := newTestService(t, 1)

	faculty, err := svc.Faculty()
	require.NoError(t, err)
	assert.Len(t, faculty, 2)

	rooms, err := svc.Rooms()
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	batches, err := svc.Batches()
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	// Minor courses are folded into the course list.
	courses, err := svc.Courses()
	require.NoError(t, err)
	assert.Len(t, courses, 3)
}

func TestUpdateSolverConfig(t *testing.T) {
	svc := newTestService(t, 1)

	size := 200
	cfg, err := svc.UpdateSolverConfig(dto.SolverConfigRequest{
		TerminationMinutes: 1,
		LateAcceptanceSize: &size,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.TerminationMinutes)
	assert.Equal(t, 200, cfg.LateAcceptanceSize)
	assert.Equal(t, cfg, svc.SolverConfig())
}

func TestUpdateSolverConfigRejectsEmptyBudget(t *testing.T) {
	svc := newTestService(t, 1)

	_, err := svc.UpdateSolverConfig(dto.SolverConfigRequest{})
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrValidation.Code, appErr.Code)
}
