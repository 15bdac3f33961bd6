package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nidhi-Chauhan111/Eco-App/internal/achievement"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/auth"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/database"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/emission"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/footprint"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/inspiration"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/metrics"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/sentiment"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/services"
	"github.com/Nidhi-Chauhan111/Eco-App/internal/streak"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.NewDB(database.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog, err := achievement.DefaultCatalog(nil)
	require.NoError(t, err)
	table, err := emission.Default()
	require.NoError(t, err)

	m := metrics.New(prometheus.NewRegistry())
	streaks := services.NewStreakService(db, streak.NewMachine(streak.DefaultConfig()), catalog, services.WithMetrics(m))
	analyzer := sentiment.NewAnalyzer(sentiment.NewLexiconClassifier(), sentiment.DefaultConfig())

	router := NewRouter(Deps{
		Users:      services.NewUserService(db),
		Journal:    services.NewJournalService(db, analyzer, inspiration.NewTemplateGenerator(), streaks, m),
		Streaks:    streaks,
		Footprints: services.NewFootprintService(db, footprint.NewEngine(table), m),
		Sessions:   auth.NewManager("test-secret", false),
		Metrics:    m,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, srv *httptest.Server) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func register(t *testing.T, c *client, name string) {
	t.Helper()
	status := c.do(http.MethodPost, "/register", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, newClient(t, srv).do(http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequiresSession(t *testing.T) {
	srv := newTestServer(t)
	var body errorBody
	status := newClient(t, srv).do(http.MethodGet, "/api/v1/streak", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", body.Error.Kind)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	register(t, c, "alice")

	var body errorBody
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "correct-horse",
	}, &body))
	assert.Equal(t, "conflict", body.Error.Kind)

	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/logout", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/v1/profile", nil, nil))

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "nope-nope"}, nil))
	assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/login",
		map[string]string{"username": "alice", "password": "correct-horse"}, nil))

	var profile struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/profile", nil, &profile))
	assert.Equal(t, "alice", profile.User.Username)
}

func TestJournalFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	register(t, c, "alice")

	var created services.ProcessResult
	status := c.do(http.MethodPost, "/api/v1/journal/entries",
		map[string]string{"content": "I felt so proud riding my bike to work instead of driving"}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Inspiration)
	require.NotNil(t, created.Streak)
	assert.Equal(t, 1, created.Streak.CurrentStreak)
	require.Len(t, created.Streak.NewAchievements, 1)

	var invalid services.ProcessResult
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/journal/entries",
		map[string]string{"content": " "}, &invalid))
	assert.False(t, invalid.Success)
	require.NotNil(t, invalid.Error)

	var badDate errorBody
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/journal/entries",
		map[string]string{"content": "hi", "entry_date": "03/03/2025"}, &badDate))
	assert.Equal(t, "validation", badDate.Error.Kind)

	var entry struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/journal/entries/"+created.EntryID, nil, &entry))
	assert.Equal(t, created.EntryID, entry.ID)

	var missing errorBody
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/journal/entries/nope", nil, &missing))
	assert.Equal(t, "not_found", missing.Error.Kind)

	var audio errorBody
	assert.Equal(t, http.StatusNotFound,
		c.do(http.MethodGet, "/api/v1/journal/entries/"+created.EntryID+"/inspiration/audio", nil, &audio))

	var list struct {
		Count int `json:"count"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/journal/entries?limit=5", nil, &list))
	assert.Equal(t, 1, list.Count)

	var dash services.Dashboard
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/journal/dashboard", nil, &dash))
	assert.Equal(t, 1, dash.RecentEntries.Count)
	assert.NotEmpty(t, dash.Recommendations)

	var mood services.MoodInspiration
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/journal/inspiration/sad", nil, &mood))
	assert.Len(t, mood.Suggestions, 3)
}

func TestStreakFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	register(t, c, "alice")

	for i := 0; i < 3; i++ {
		var res services.FreezeResult
		assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/v1/streak/freeze", nil, &res))
		assert.True(t, res.Success)
	}
	var res services.FreezeResult
	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, "/api/v1/streak/freeze", nil, &res))
	assert.False(t, res.Success)

	var status services.StreakStatus
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/streak", nil, &status))
	assert.True(t, status.StreakFrozen)
	assert.Zero(t, status.FreezesRemaining)

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/streak/analytics?days=7", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/v1/streak/analytics?days=0", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/v1/streak/analytics?days=x", nil, nil))

	var achievements struct {
		Achievements []map[string]interface{} `json:"achievements"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/achievements", nil, &achievements))
	assert.Len(t, achievements.Achievements, 5)
}

func TestFootprintFlow(t *testing.T) {
	srv := newTestServer(t)
	c := newClient(t, srv)
	register(t, c, "alice")

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/footprint/latest", nil, nil))

	var body errorBody
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/v1/footprint/calculate", map[string]interface{}{}, &body))
	assert.Equal(t, "validation", body.Error.Kind)

	var calc struct {
		ID      string `json:"id"`
		Summary struct {
			TotalWeeklyKgCO2 float64 `json:"total_weekly_kg_co2"`
			HighestCategory  string  `json:"highest_category"`
		} `json:"summary"`
	}
	status := c.do(http.MethodPost, "/api/v1/footprint/calculate", map[string]interface{}{
		"transportation": map[string]interface{}{
			"car": map[string]interface{}{"type": "Car (Petrol)", "km_per_week": 100},
		},
	}, &calc)
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, calc.ID)
	assert.InDelta(t, 23.0, calc.Summary.TotalWeeklyKgCO2, 1e-9)
	assert.Equal(t, "transportation", calc.Summary.HighestCategory)

	var history struct {
		History []services.FootprintHistoryPoint `json:"history"`
	}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/footprint/history", nil, &history))
	assert.Len(t, history.History, 1)

	var factors struct {
		Factors map[string][]struct {
			Activity string  `json:"activity"`
			Factor   float64 `json:"factor"`
		} `json:"factors"`
	}
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/v1/footprint/factors", nil, &factors))
	require.Contains(t, factors.Factors, "transportation")
	var petrol float64
	for _, f := range factors.Factors["transportation"] {
		if f.Activity == "Car (Petrol)" {
			petrol = f.Factor
		}
	}
	assert.InDelta(t, 0.23, petrol, 1e-9)
}
