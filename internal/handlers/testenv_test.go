package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/database"
	"github.com/yukikurage/annotation-workflow-api/internal/middleware"
	"github.com/yukikurage/annotation-workflow-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return setupTestEnvWithGenerator(t, nil)
}

func setupTestEnvWithGenerator(t *testing.T, generator services.CandidateGenerator) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), database.NewGormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(zap.NewNop()))
	r.Use(middleware.LimitRequestBody(constants.DefaultMaxBodyBytes))
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	RegisterRoutes(r, db, Services{
		Identity:    services.NewIdentityService(),
		Content:     services.NewContentService(generator),
		Tasks:       services.NewTaskService(),
		Assignments: services.NewAssignmentService(),
		Submissions: services.NewSubmissionService(zap.NewNop()),
		Metrics:     services.NewMetricsService(),
		Audit:       services.NewAuditService(),
	})

	return &testEnv{t: t, db: db, router: r}
}

// do sends a request with an optional JSON body (string or value) and cookies
func (e *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) decode(w *httptest.ResponseRecorder, v any) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// seed creates a user, a prompt with one output and a task assigned to the user
func (e *testEnv) seed(email string) (userID, promptID, taskID, assignmentID uint64) {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/users", map[string]any{"email": email, "name": "Reviewer"})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID uint64 `json:"id"`
	}
	e.decode(w, &user)

	w = e.do(http.MethodPost, "/api/prompts", `{"title":"Summarize","body":"Summarize the text.","model_outputs":[{"model_version":"model-a","response":"Answer"}]}`)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var prompt struct {
		ID uint64 `json:"id"`
	}
	e.decode(w, &prompt)

	w = e.do(http.MethodPost, "/api/tasks", map[string]any{
		"prompt_id":       prompt.ID,
		"annotation_type": "rubric",
		"assignee_ids":    []uint64{user.ID},
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	var task struct {
		ID          uint64 `json:"id"`
		Assignments []struct {
			ID uint64 `json:"id"`
		} `json:"assignments"`
	}
	e.decode(w, &task)
	require.Len(e.t, task.Assignments, 1)

	return user.ID, prompt.ID, task.ID, task.Assignments[0].ID
}
