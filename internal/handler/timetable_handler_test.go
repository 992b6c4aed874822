package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-engine/internal/dto"
	"github.com/noah-isme/timetable-engine/internal/solver"
	apperrors "github.com/noah-isme/timetable-engine/pkg/errors"
)

type timetableServiceMock struct {
	generateErr error
	timetable   *dto.TimetableView
	batchCalls  []int64
}

func (m *timetableServiceMock) Generate(ctx context.Context) (*dto.RunView, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &dto.RunView{RunID: "run-1", Phase: solver.PhaseUnsolved, StartedAt: time.Now()}, nil
}

func (m *timetableServiceMock) Status() *dto.RunView {
	return &dto.RunView{RunID: "run-1", Phase: solver.PhaseImproving}
}

func (m *timetableServiceMock) Timetable() (*dto.TimetableView, error) {
	if m.timetable == nil {
		return nil, apperrors.ErrNoTimetable
	}
	return m.timetable, nil
}

func (m *timetableServiceMock) TimetableForBatch(batchID int64) (*dto.TimetableView, error) {
	m.batchCalls = append(m.batchCalls, batchID)
	return m.Timetable()
}

func (m *timetableServiceMock) TimetableForFaculty(facultyID int64) (*dto.TimetableView, error) {
	return m.Timetable()
}

func (m *timetableServiceMock) TimetableForRoom(roomID int64) (*dto.TimetableView, error) {
	return m.Timetable()
}

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestTimetableHandlerGenerate(t *testing.T) {
	handler := NewTimetableHandler(&timetableServiceMock{})
	c, w := testContext(t, http.MethodPost, "/timetable/generate")

	handler.Generate(c)
	require.Equal(t, http.StatusAccepted, w.Code)

	var envelope struct {
		Data dto.RunView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "run-1", envelope.Data.RunID)
}

func TestTimetableHandlerGenerateConflict(t *testing.T) {
	handler := NewTimetableHandler(&timetableServiceMock{generateErr: apperrors.ErrSolverRunning})
	c, w := testContext(t, http.MethodPost, "/timetable/generate")

	handler.Generate(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTimetableHandlerGetNotFound(t *testing.T) {
	handler := NewTimetableHandler(&timetableServiceMock{})
	c, w := testContext(t, http.MethodGet, "/timetable")

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTimetableHandlerByBatch(t *testing.T) {
	mock := &timetableServiceMock{timetable: &dto.TimetableView{Feasible: true}}
	handler := NewTimetableHandler(mock)
	c, w := testContext(t, http.MethodGet, "/timetable/batch/7")
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.ByBatch(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{7}, mock.batchCalls)
}

func TestTimetableHandlerByBatchInvalidID(t *testing.T) {
	handler := NewTimetableHandler(&timetableServiceMock{})
	c, w := testContext(t, http.MethodGet, "/timetable/batch/abc")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.ByBatch(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerStatus(t *testing.T) {
	handler := NewTimetableHandler(&timetableServiceMock{})
	c, w := testContext(t, http.MethodGet, "/timetable/status")

	handler.Status(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.RunView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, solver.PhaseImproving, envelope.Data.Phase)
}
