package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillforge/drillforge/internal/api"
	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/repository/sqlite"
	"github.com/drillforge/drillforge/internal/services"
	"github.com/drillforge/drillforge/internal/testutil"
)

// newTestServer wires the full stack against an in-memory store,
// everything real except the listener.
func newTestServer(t *testing.T) *httptest.Server {
	db := testutil.NewTestDB(t)

	drillRepo := sqlite.NewDrillRepository(db)
	attemptRepo := sqlite.NewAttemptRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	statsService := services.NewStatsService(attemptRepo)
	srv := &api.Server{
		DrillService:   services.NewDrillService(drillRepo),
		AttemptService: services.NewAttemptService(drillRepo, attemptRepo, statsService, nil),
		StatsService:   statsService,
		UserService:    services.NewUserService(userRepo),
		Auth:           auth.NewService("test-secret", time.Hour),
		DB:             db,
		CORSOrigins:    []string{"http://localhost:3000"},
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func registerUser(t *testing.T, ts *httptest.Server, username string) string {
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/register", "", map[string]string{
		"username": username,
		"password": "longenoughpassword",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func createDrill(t *testing.T, ts *httptest.Server, token string) string {
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/drills", token, map[string]any{
		"title":      "HTTP basics",
		"difficulty": "easy",
		"tags":       []string{"web"},
		"questions": []map[string]any{
			{"id": 1, "prompt": "What does a 404 status mean?", "keywords": []string{"not found"}},
			{"id": 2, "prompt": "Name an idempotent HTTP method", "keywords": []string{"get", "put"}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	drill := data["drill"].(map[string]any)
	id, _ := drill["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthAndReady(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	registerUser(t, ts, "alice")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"username": "alice",
		"password": "longenoughpassword",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/drills", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/drills", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDrillCatalog(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")
	drillID := createDrill(t, ts, token)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/drills", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	drills := data["drills"].([]any)
	assert.Len(t, drills, 1)
	assert.Equal(t, float64(1), data["total"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/drills/"+drillID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	drill := data["drill"].(map[string]any)
	assert.Equal(t, "HTTP basics", drill["title"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/drills/does-not-exist", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestSubmitAttemptAndStats(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")
	drillID := createDrill(t, ts, token)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/attempts", token, map[string]any{
		"drill_id": drillID,
		"answers": []map[string]any{
			{"questionId": 1, "answer": "the resource was not found"},
			{"questionId": 2, "answer": "GET is idempotent"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	attempt := data["attempt"].(map[string]any)
	// 2 of 3 keywords matched: round(2/3*100) = 67.
	assert.Equal(t, float64(67), attempt["score"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/attempts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	attempts := data["attempts"].([]any)
	require.Len(t, attempts, 1)
	first := attempts[0].(map[string]any)
	assert.Equal(t, "HTTP basics", first["drill_title"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/attempts/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["totalAttempts"])
	assert.Equal(t, float64(67), stats["averageScore"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/attempts/stats/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["total_attempts"])
}

func TestSubmitAttemptValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerUser(t, ts, "alice")
	drillID := createDrill(t, ts, token)

	// Missing one of the two answers.
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/attempts", token, map[string]any{
		"drill_id": drillID,
		"answers": []map[string]any{
			{"questionId": 1, "answer": "only one"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	// Unknown drill.
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/attempts", token, map[string]any{
		"drill_id": "does-not-exist",
		"answers": []map[string]any{
			{"questionId": 1, "answer": "a"},
			{"questionId": 2, "answer": "b"},
		},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestMalformedJSONRejected(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/auth/register", "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "BAD_REQUEST", body["code"])
}
