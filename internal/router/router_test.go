package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-planner-api/internal/repository/memory"
	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/config"
)

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:         config.EnvDevelopment,
		APIPrefix:   "/api",
		StoreDriver: config.StoreDriverMemory,
		DemoUser:    config.DemoUserConfig{ID: "default-user-id", Email: "demo@example.com", Name: "Demo User"},
		Calendar:    config.CalendarConfig{Timezone: "UTC"},
		Dashboard:   config.DashboardConfig{UpcomingLimit: 5},
		Cache:       config.CacheConfig{TTL: time.Minute},
	}
	store := memory.NewStore()
	repos := service.Repositories{
		Users:       store.Users(),
		Terms:       store.Terms(),
		Courses:     store.Courses(),
		Assignments: store.Assignments(),
		Events:      store.Events(),
	}
	return &apiClient{t: t, engine: New(cfg, NewServices(cfg, repos, nil, nil), store, nil)}
}

func (a *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "/api"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") && rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func (a *apiClient) list(path string) []interface{} {
	a.t.Helper()
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api"+path, nil))
	require.Equal(a.t, http.StatusOK, rec.Code)
	var items []interface{}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &items))
	return items
}

func TestTermCourseAssignmentLifecycle(t *testing.T) {
	api := newAPI(t)

	rec, term := api.do(http.MethodPost, "/terms", map[string]string{"name": "Fall 2024", "startDate": "2024-09-01", "endDate": "2024-12-15"})
	require.Equal(t, http.StatusCreated, rec.Code)
	termID, _ := term["id"].(string)
	require.NotEmpty(t, termID)
	assert.Equal(t, []interface{}{}, term["courses"])

	rec, course := api.do(http.MethodPost, "/courses", map[string]string{"name": "CS101", "termId": termID})
	require.Equal(t, http.StatusCreated, rec.Code)
	courseID := course["id"].(string)
	nested := course["term"].(map[string]interface{})
	assert.Equal(t, termID, nested["id"])
	assert.Equal(t, "Fall 2024", nested["name"])

	rec, assignment := api.do(http.MethodPost, "/assignments", map[string]string{
		"title": "HW1", "dueDate": "2024-09-10T23:59:00Z", "termId": termID, "courseId": courseID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assignmentID := assignment["id"].(string)
	assert.Equal(t, "PENDING", assignment["status"])
	assert.Equal(t, float64(1), assignment["priority"])
	assert.Equal(t, courseID, assignment["course"].(map[string]interface{})["id"])

	rec, body := api.do(http.MethodDelete, "/terms/"+termID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Term deleted successfully", body["message"])

	rec, body = api.do(http.MethodGet, "/courses/"+courseID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Course not found", body["error"])

	rec, body = api.do(http.MethodGet, "/assignments/"+assignmentID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Assignment not found", body["error"])
}

func TestCreateTermWithoutNameCreatesNothing(t *testing.T) {
	api := newAPI(t)
	before := len(api.list("/terms"))

	rec, body := api.do(http.MethodPost, "/terms", map[string]string{"startDate": "2024-09-01", "endDate": "2024-12-15"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: name", body["error"])
	assert.Len(t, api.list("/terms"), before)
}

func TestMalformedJSONIsInternalError(t *testing.T) {
	api := newAPI(t)
	rec, body := api.do(http.MethodPost, "/terms", `{"name": "Fall"`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create term", body["error"])
}

func TestUnknownIDsReturnNotFound(t *testing.T) {
	api := newAPI(t)
	for _, path := range []string{"/terms/nope", "/courses/nope", "/assignments/nope", "/events/nope"} {
		rec, _ := api.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		rec, _ = api.do(http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	rec, _ := api.do(http.MethodPut, "/terms/nope", map[string]string{"name": "x", "startDate": "2024-01-01", "endDate": "2024-01-02"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOverdueFlagFollowsStatus(t *testing.T) {
	api := newAPI(t)
	now := time.Now().UTC()
	_, term := api.do(http.MethodPost, "/terms", map[string]string{
		"name": "Now", "startDate": now.AddDate(0, -1, 0).Format(time.RFC3339), "endDate": now.AddDate(0, 1, 0).Format(time.RFC3339),
	})
	termID := term["id"].(string)
	due := now.Add(-24 * time.Hour).Format(time.RFC3339)

	rec, assignment := api.do(http.MethodPost, "/assignments", map[string]string{"title": "Late", "dueDate": due, "status": "PENDING", "termId": termID})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, dashboard := api.do(http.MethodGet, "/dashboard", nil)
	upcoming := dashboard["upcomingAssignments"].([]interface{})
	require.Len(t, upcoming, 1)
	assert.Equal(t, true, upcoming[0].(map[string]interface{})["isOverdue"])
	assert.Equal(t, float64(1), dashboard["stats"].(map[string]interface{})["overdueAssignments"])

	rec, _ = api.do(http.MethodPut, "/assignments/"+assignment["id"].(string), map[string]string{"title": "Late", "dueDate": due, "status": "COMPLETED", "termId": termID})
	require.Equal(t, http.StatusOK, rec.Code)

	_, dashboard = api.do(http.MethodGet, "/dashboard", nil)
	stats := dashboard["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["overdueAssignments"])
	assert.Equal(t, float64(100), stats["completionRate"])
}

func TestRejectsUnknownStatusAndType(t *testing.T) {
	api := newAPI(t)
	_, term := api.do(http.MethodPost, "/terms", map[string]string{"name": "Fall", "startDate": "2024-09-01", "endDate": "2024-12-15"})
	termID := term["id"].(string)

	rec, body := api.do(http.MethodPost, "/assignments", map[string]string{"title": "HW", "dueDate": "2024-09-10", "status": "DONE", "termId": termID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "status must be one of")

	rec, _ = api.do(http.MethodPost, "/events", map[string]string{"title": "Party", "startDate": "2024-09-10", "endDate": "2024-09-10", "type": "PARTY", "termId": termID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, event := api.do(http.MethodPost, "/events", map[string]string{"title": "Midterm", "startDate": "2024-10-15T09:00:00Z", "endDate": "2024-10-15T11:00:00Z", "type": "EXAM", "termId": termID})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "EXAM", event["type"])
	assert.Len(t, api.list("/events"), 1)
}

func TestCalendarAndExport(t *testing.T) {
	api := newAPI(t)
	_, term := api.do(http.MethodPost, "/terms", map[string]string{"name": "Fall", "startDate": "2024-09-01", "endDate": "2024-12-15"})
	termID := term["id"].(string)
	api.do(http.MethodPost, "/assignments", map[string]interface{}{"title": "HW1", "dueDate": "2024-09-10T23:59:00Z", "priority": "3", "termId": termID})

	rec, calendar := api.do(http.MethodGet, "/calendar?month=2024-09&termId="+termID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	days := calendar["days"].([]interface{})
	require.Len(t, days, 30)
	assert.Len(t, days[9].(map[string]interface{})["assignments"], 1)

	rec, _ = api.do(http.MethodGet, "/calendar?month=nine", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodGet, "/assignments/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, rec.Body.String(), "HW1,,Fall,2024-09-10T23:59:00Z,High,PENDING,true")

	rec, _ = api.do(http.MethodGet, "/assignments/export?format=doc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOperationalEndpoints(t *testing.T) {
	api := newAPI(t)

	rec := httptest.NewRecorder()
	api.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	api.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"memory"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	api.engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
