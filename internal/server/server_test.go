package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/api"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/positions"
	"github.com/Davlen14/gameday-plus-predictor-sub000/internal/teams"
)

func newTestServer(t *testing.T, withBets bool) *Server {
	t.Helper()
	logger, _ := logtest.NewNullLogger()

	opts := Options{Roster: teams.DefaultRoster(), Logger: logger}
	if withBets {
		db, err := positions.NewDB(filepath.Join(t.TempDir(), "bets.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		opts.Bets = db
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestArbitrageEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/api/arbitrage", `{"total_stake":1000,"odds_a":200,"odds_b":-150}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	result := body["result"].(map[string]any)
	assert.Equal(t, true, result["arbitrage_exists"])
	assert.InDelta(t, 357.142857, result["stake_a"].(float64), 1e-5)
	assert.InDelta(t, 71.428571, result["guaranteed_profit"].(float64), 1e-5)

	display := body["display"].(map[string]any)
	assert.Equal(t, "$71.43", display["guaranteed_profit"])
}

func TestArbitrageEndpointRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t, false)

	cases := []struct {
		body  string
		field string
	}{
		{`{"total_stake":1000,"odds_a":0,"odds_b":-110}`, "odds_a"},
		{`{"total_stake":-5,"odds_a":150,"odds_b":150}`, "total_stake"},
		{`{"odds_a":150,"odds_b":150}`, "total_stake"},
	}
	for _, c := range cases {
		rec := do(t, s, http.MethodPost, "/api/arbitrage", c.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, c.body)
		assert.Equal(t, c.field, decode(t, rec)["field"], c.body)
	}

	rec := do(t, s, http.MethodPost, "/api/arbitrage", `{"total_stake":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/arbitrage", `{"total_stake":100,"odds_a":1,"odds_b":1,"extra":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHedgeEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodPost, "/api/hedge", `{"existing_stake":100,"existing_odds":300,"hedge_odds":-200}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	plan := decode(t, rec)["plan"].(map[string]any)
	assert.Equal(t, true, plan["locked"])
	assert.InDelta(t, 266.6667, plan["hedge_stake"].(float64), 1e-3)
}

func TestTeamsEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	rec := do(t, s, http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(len(teams.DefaultRoster())), decode(t, rec)["count"])

	rec = do(t, s, http.MethodGet, "/api/teams/resolve?q=Ohio+State+Buckeyes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["matched"])
	assert.Equal(t, "partial", body["match"])
	assert.Equal(t, "OSU", body["badge"].(map[string]any)["abbreviation"])

	rec = do(t, s, http.MethodGet, "/api/teams/resolve?q=Nonexistent+Team+XYZ", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["matched"])
	assert.Nil(t, body["team"])
	assert.Equal(t, teams.DefaultPrimaryColor, body["badge"].(map[string]any)["primary_color"])

	rec = do(t, s, http.MethodGet, "/api/teams/resolve", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchupEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	demo := do(t, s, http.MethodGet, "/api/matchup/demo", "")
	require.Equal(t, http.StatusOK, demo.Code)
	assert.Equal(t, "Ohio State", decode(t, demo)["home"].(map[string]any)["name"])

	empty := do(t, s, http.MethodPost, "/api/matchup", "")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.Equal(t, demo.Body.String(), empty.Body.String())

	rec := do(t, s, http.MethodPost, "/api/matchup", `{"home_team":"Alabama","away_team":"Auburn","predicted_spread":-3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "spread_model", body["win_prob_source"])

	bad := do(t, s, http.MethodPost, "/api/matchup", `{"home_team":`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestLiveMatchup(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("home") != "Alabama" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"home_team":"Alabama","away_team":"Auburn","home_win_prob":0.7}`))
	}))
	defer upstream.Close()

	disabled := newTestServer(t, false)
	assert.Equal(t, http.StatusServiceUnavailable,
		do(t, disabled, http.MethodGet, "/api/matchup/live?home=Alabama&away=Auburn", "").Code)

	logger, _ := logtest.NewNullLogger()
	s := New(Options{
		Roster:    teams.DefaultRoster(),
		Logger:    logger,
		Predictor: api.NewPredictorClient(upstream.URL, ""),
	})

	rec := do(t, s, http.MethodGet, "/api/matchup/live?home=Alabama&away=Auburn", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "payload", body["win_prob_source"])
	assert.InDelta(t, 0.7, body["home_win_prob"], 1e-9)

	missing := do(t, s, http.MethodGet, "/api/matchup/live?home=Nowhere&away=Auburn", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)

	noAway := do(t, s, http.MethodGet, "/api/matchup/live?home=Alabama", "")
	assert.Equal(t, http.StatusBadRequest, noAway.Code)
	assert.Equal(t, "away", decode(t, noAway)["field"])
}

func TestBetsDisabled(t *testing.T) {
	s := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/api/bets", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBetsLifecycle(t *testing.T) {
	s := newTestServer(t, true)

	rec := do(t, s, http.MethodPost, "/api/bets", `{"matchup":"Michigan @ Ohio State","team":"Michigan","odds":300,"stake":100}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decode(t, rec)["id"].(float64)

	rec = do(t, s, http.MethodPost, "/api/bets", `{"matchup":"Michigan @ Ohio State","team":"Michigan","odds":0,"stake":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/bets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["bets"], 1)

	rec = do(t, s, http.MethodPost, "/api/bets/hedges", `{"quotes":{"Michigan @ Ohio State":-200}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	hedges := decode(t, rec)["hedges"].([]any)
	require.Len(t, hedges, 1)
	assert.Equal(t, "lock", hedges[0].(map[string]any)["action"])

	rec = do(t, s, http.MethodPost, "/api/bets/hedges", `{"quotes":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	path := "/api/bets/" + jsonNumber(id)

	rec = do(t, s, http.MethodPatch, path, `{"stake":150}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 150.0, decode(t, rec)["stake"])

	rec = do(t, s, http.MethodPatch, path, `{"stake":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "stake", decode(t, rec)["field"])

	rec = do(t, s, http.MethodPatch, "/api/bets/9999", `{"stake":50}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPatch, "/api/bets/abc", `{"stake":50}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/bets/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackedBetsGaugeFollowsStorage(t *testing.T) {
	db, err := positions.NewDB(filepath.Join(t.TempDir(), "bets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var first int64
	for i := 0; i < 3; i++ {
		id, err := db.AddBet(positions.Bet{Matchup: "Auburn @ Alabama", Team: "Auburn", Odds: 190, Stake: 50})
		require.NoError(t, err)
		if i == 0 {
			first = id
		}
	}

	logger, _ := logtest.NewNullLogger()
	s := New(Options{Roster: teams.DefaultRoster(), Logger: logger, Bets: db})
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.TrackedBets))

	rec := do(t, s, http.MethodDelete, "/api/bets/"+jsonNumber(float64(first)), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.TrackedBets))

	rec = do(t, s, http.MethodPost, "/api/bets", `{"matchup":"Auburn @ Alabama","team":"Alabama","odds":-230,"stake":100}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 3.0, testutil.ToFloat64(s.metrics.TrackedBets))
}

func TestStorageErrorsAreLogged(t *testing.T) {
	db, err := positions.NewDB(filepath.Join(t.TempDir(), "bets.db"))
	require.NoError(t, err)

	logger, hook := logtest.NewNullLogger()
	s := New(Options{Roster: teams.DefaultRoster(), Logger: logger, Bets: db})
	require.NoError(t, db.Close())
	hook.Reset()

	rec := do(t, s, http.MethodGet, "/api/bets", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var logged *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			logged = e
		}
	}
	require.NotNil(t, logged, "expected an error entry")
	assert.Equal(t, "listing bets", logged.Data["context"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), logged.Data["request_id"])
	assert.NotNil(t, logged.Data[logrus.ErrorKey])
}

func TestRateLimit(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := New(Options{Roster: teams.DefaultRoster(), Logger: logger, RateLimitRPS: 0.001, RateLimitBurst: 1})

	first := do(t, s, http.MethodGet, "/api/teams", "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := do(t, s, http.MethodGet, "/api/teams", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	// health is never limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	s := newTestServer(t, false)
	do(t, s, http.MethodGet, "/health", "")

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte(`gameday_http_requests_total{code="200",route="GET /health"} 1`)), rec.Body.String())
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(int64(f))
	return string(b)
}
