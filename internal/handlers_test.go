package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KenanY/teemo-core/teemo"
)

type mockStatsAPI struct {
	err      error
	lastCall string
}

func (m *mockStatsAPI) respond(call string) (*teemo.Response, error) {
	m.lastCall = call
	if m.err != nil {
		return nil, m.err
	}
	return &teemo.Response{
		Success: true,
		Data:    map[string]interface{}{"call": call},
	}, nil
}

func (m *mockStatsAPI) Player(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("player")
}

func (m *mockStatsAPI) InGame(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("ingame")
}

func (m *mockStatsAPI) RecentGames(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("recent_games")
}

func (m *mockStatsAPI) InfluencePoints(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("influence_points")
}

func (m *mockStatsAPI) Runes(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("runes")
}

func (m *mockStatsAPI) Mastery(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("mastery")
}

func (m *mockStatsAPI) Leagues(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("leagues")
}

func (m *mockStatsAPI) Honor(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("honor")
}

func (m *mockStatsAPI) Teams(ctx context.Context, platform, summoner string) (*teemo.Response, error) {
	return m.respond("teams")
}

func (m *mockStatsAPI) RankedStats(ctx context.Context, platform, summoner, season string) (*teemo.Response, error) {
	return m.respond("ranked_stats/" + season)
}

func (m *mockStatsAPI) Team(ctx context.Context, platform, tag string) (*teemo.Response, error) {
	return m.respond("team")
}

func (m *mockStatsAPI) TeamLeagues(ctx context.Context, platform, guid string) (*teemo.Response, error) {
	return m.respond("team_leagues")
}

func (m *mockStatsAPI) FreeWeek(ctx context.Context, platform string) (*teemo.Response, error) {
	return m.respond("free_week")
}

type mockRateLimiter struct {
	shouldBlock bool
	shouldError bool
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if m.shouldError {
		return false, errors.New("rate limiter error")
	}
	return !m.shouldBlock, nil
}

type mockRecorder struct {
	events []LookupEvent
}

func (m *mockRecorder) Record(event LookupEvent) {
	m.events = append(m.events, event)
}

type mockAuditStore struct {
	stats *LookupStats
	err   error
}

func (m *mockAuditStore) RecordLookup(event LookupEvent) error { return m.err }

func (m *mockAuditStore) GetLookupStats() (*LookupStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockAuditStore) Close() {}

func createTestLogger() *Logger {
	return &Logger{
		level:       LogLevelError,
		service:     "test",
		environment: "test",
		logger:      log.New(bytes.NewBuffer(nil), "", 0),
	}
}

func doRequest(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	req = req.WithContext(context.WithValue(req.Context(), RequestIDKey, "test-request-id"))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHealthHandler(t *testing.T) {
	w := doRequest(HealthHandler(createTestLogger()), "/healthz")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "ok" {
		t.Errorf("expected status ok, got %v", response["status"])
	}
}

func TestPlayerHandler_Success(t *testing.T) {
	api := &mockStatsAPI{}
	audit := &mockRecorder{}
	handler := PlayerHandler(api, &mockRateLimiter{}, audit, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	if api.lastCall != "player" {
		t.Errorf("expected player call, got %s", api.lastCall)
	}

	if len(audit.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.events))
	}
	if audit.events[0].Endpoint != "player" || audit.events[0].Status != http.StatusOK {
		t.Errorf("unexpected audit event %+v", audit.events[0])
	}
}

func TestPlayerHandler_Views(t *testing.T) {
	tests := []struct {
		view     string
		expected string
	}{
		{"ingame", "ingame"},
		{"recent_games", "recent_games"},
		{"influence_points", "influence_points"},
		{"runes", "runes"},
		{"mastery", "mastery"},
		{"leagues", "leagues"},
		{"honor", "honor"},
		{"teams", "teams"},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			api := &mockStatsAPI{}
			handler := PlayerHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

			w := doRequest(handler, "/player?platform=na&summoner=Faker&view="+tt.view)

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			if api.lastCall != tt.expected {
				t.Errorf("expected %s call, got %s", tt.expected, api.lastCall)
			}
		})
	}
}

func TestPlayerHandler_RankedStatsSeason(t *testing.T) {
	api := &mockStatsAPI{}
	handler := PlayerHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker&view=ranked_stats&season=3")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if api.lastCall != "ranked_stats/3" {
		t.Errorf("expected season forwarded, got %s", api.lastCall)
	}
}

func TestPlayerHandler_UnknownView(t *testing.T) {
	handler := PlayerHandler(&mockStatsAPI{}, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker&view=bogus")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestPlayerHandler_MissingParams(t *testing.T) {
	handler := PlayerHandler(&mockStatsAPI{}, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestPlayerHandler_InvalidPlatform(t *testing.T) {
	api := &mockStatsAPI{err: teemo.ErrInvalidPlatform}
	audit := &mockRecorder{}
	handler := PlayerHandler(api, &mockRateLimiter{}, audit, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=oce&summoner=Faker")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	if len(audit.events) != 1 || audit.events[0].Status != http.StatusBadRequest {
		t.Errorf("expected failed lookup audited, got %+v", audit.events)
	}
}

func TestPlayerHandler_UpstreamFailure(t *testing.T) {
	api := &mockStatsAPI{err: teemo.ErrAPIFailure}
	handler := PlayerHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Unknown")

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestPlayerHandler_InvalidUpstreamBody(t *testing.T) {
	api := &mockStatsAPI{err: teemo.ErrInvalidJSON}
	handler := PlayerHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker")

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func TestPlayerHandler_RateLimit(t *testing.T) {
	handler := PlayerHandler(&mockStatsAPI{}, &mockRateLimiter{shouldBlock: true}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker")

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", w.Code)
	}
}

func TestPlayerHandler_RateLimiterError(t *testing.T) {
	handler := PlayerHandler(&mockStatsAPI{}, &mockRateLimiter{shouldError: true}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/player?platform=na&summoner=Faker")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestTeamHandler_Success(t *testing.T) {
	api := &mockStatsAPI{}
	handler := TeamHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/team?platform=euw&tag=abc")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if api.lastCall != "team" {
		t.Errorf("expected team call, got %s", api.lastCall)
	}
}

func TestTeamHandler_MissingTag(t *testing.T) {
	handler := TeamHandler(&mockStatsAPI{}, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/team?platform=euw")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestTeamLeaguesHandler_Success(t *testing.T) {
	api := &mockStatsAPI{}
	handler := TeamLeaguesHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/team/leagues?platform=euw&guid=abc")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if api.lastCall != "team_leagues" {
		t.Errorf("expected team_leagues call, got %s", api.lastCall)
	}
}

func TestFreeWeekHandler_Success(t *testing.T) {
	api := &mockStatsAPI{}
	handler := FreeWeekHandler(api, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/free-week?platform=br")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if api.lastCall != "free_week" {
		t.Errorf("expected free_week call, got %s", api.lastCall)
	}
}

func TestFreeWeekHandler_MissingPlatform(t *testing.T) {
	handler := FreeWeekHandler(&mockStatsAPI{}, &mockRateLimiter{}, nil, createTestLogger(), nil)

	w := doRequest(handler, "/free-week")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	store := &mockAuditStore{
		stats: &LookupStats{
			Total:      42,
			Recent:     7,
			ByEndpoint: map[string]int64{"player": 40, "team": 2},
		},
	}
	handler := StatsHandler(store, createTestLogger())

	w := doRequest(handler, "/stats")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response LookupStats
	json.Unmarshal(w.Body.Bytes(), &response)

	if response.Total != 42 {
		t.Errorf("expected total 42, got %d", response.Total)
	}
	if response.ByEndpoint["player"] != 40 {
		t.Errorf("expected 40 player lookups, got %d", response.ByEndpoint["player"])
	}
}

func TestStatsHandler_StoreError(t *testing.T) {
	store := &mockAuditStore{err: errors.New("db down")}
	handler := StatsHandler(store, createTestLogger())

	w := doRequest(handler, "/stats")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError("test error", 400)

	if err.Message != "test error" {
		t.Errorf("expected message 'test error', got %s", err.Message)
	}
	if err.Status != 400 {
		t.Errorf("expected status 400, got %d", err.Status)
	}
	if err.Error() != "test error" {
		t.Errorf("expected error string 'test error', got %s", err.Error())
	}
}
