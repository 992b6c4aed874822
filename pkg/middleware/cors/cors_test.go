package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/timetable", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestAllowsListedOrigin(t *testing.T) {
	r := newRouter([]string{"https://scheduler.example.edu/"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timetable", nil)
	req.Header.Set("Origin", "https://scheduler.example.edu")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://scheduler.example.edu", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRejectsUnlistedOrigin(t *testing.T) {
	r := newRouter([]string{"https://scheduler.example.edu"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timetable", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEmptyListAllowsAll(t *testing.T) {
	r := newRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/timetable", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightShortCircuits(t *testing.T) {
	r := newRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/timetable", nil)
	req.Header.Set("Origin", "https://scheduler.example.edu")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodOptions)
}
