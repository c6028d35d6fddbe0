package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KenanY/teemo-core/teemo"
)

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, status int) APIError {
	return APIError{Message: message, Status: status}
}

func writeError(w http.ResponseWriter, err error, logger *Logger, r *http.Request) {
	var apiErr APIError
	if e, ok := err.(APIError); ok {
		apiErr = e
	} else {
		apiErr = NewAPIError("Internal server error", http.StatusInternalServerError)
	}

	requestID := GetRequestID(r.Context())

	logger.Error("api_error").
		Component("http").
		Operation("write_error").
		HTTP(r.Method, r.URL.Path, apiErr.Status).
		Request(r.UserAgent(), r.RemoteAddr, requestID).
		Err(err).
		ErrorCode(strconv.Itoa(apiErr.Status)).
		Log()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":     apiErr.Message,
		"status":    apiErr.Status,
		"timestamp": time.Now().Unix(),
		"requestId": requestID,
	})
}

func writeJSON(w http.ResponseWriter, data interface{}, logger *Logger, r *http.Request) {
	requestID := GetRequestID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("json_encode_failed").
			Component("http").
			Operation("write_json").
			Request("", "", requestID).
			Err(err).
			Log()
		writeError(w, NewAPIError("Failed to encode response", http.StatusInternalServerError), logger, r)
	}
}

func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func withRateLimit(rateLimiter RateLimiterInterface, key string, logger *Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			allowed, err := rateLimiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate_limiter_error").
					Component("rate_limiter").
					Operation("check_limit").
					Request("", "", requestID).
					Err(err).
					Meta("key", key).
					Log()
				writeError(w, NewAPIError("Rate limiter error", http.StatusInternalServerError), logger, r)
				return
			}

			if !allowed {
				logger.Warn("rate_limit_exceeded").
					Component("rate_limiter").
					Operation("check_limit").
					Request("", "", requestID).
					Meta("key", key).
					Log()
				writeError(w, NewAPIError("Rate limit exceeded", http.StatusTooManyRequests), logger, r)
				return
			}

			next(w, r)
		}
	}
}

// statusForLookupError maps library errors onto gateway responses.
func statusForLookupError(err error) APIError {
	switch {
	case errors.Is(err, teemo.ErrInvalidPlatform):
		return NewAPIError("Unknown platform", http.StatusBadRequest)
	case errors.Is(err, teemo.ErrAPIFailure):
		return NewAPIError("Lookup failed upstream", http.StatusNotFound)
	case errors.Is(err, teemo.ErrInvalidJSON):
		return NewAPIError("Invalid upstream response", http.StatusBadGateway)
	default:
		return NewAPIError("Upstream request failed", http.StatusBadGateway)
	}
}

func recordLookup(audit LookupRecorder, metrics *MetricsCollector, r *http.Request, endpoint, platform, summoner, team string, status int) {
	if metrics != nil {
		metrics.RecordUpstream(status >= 400)
	}
	if audit == nil {
		return
	}

	audit.Record(LookupEvent{
		RequestID:  GetRequestID(r.Context()),
		Endpoint:   endpoint,
		Platform:   platform,
		Summoner:   summoner,
		Team:       team,
		Status:     status,
		DurationMs: time.Since(GetStartTime(r.Context())).Milliseconds(),
		Timestamp:  time.Now().UTC(),
	})
}

// playerCall selects the player sub-operation for a view parameter.
func playerCall(ctx context.Context, api StatsAPI, view, platform, summoner, season string) (*teemo.Response, error) {
	switch view {
	case "":
		return api.Player(ctx, platform, summoner)
	case "ingame":
		return api.InGame(ctx, platform, summoner)
	case "recent_games":
		return api.RecentGames(ctx, platform, summoner)
	case "influence_points":
		return api.InfluencePoints(ctx, platform, summoner)
	case "runes":
		return api.Runes(ctx, platform, summoner)
	case "mastery":
		return api.Mastery(ctx, platform, summoner)
	case "leagues":
		return api.Leagues(ctx, platform, summoner)
	case "honor":
		return api.Honor(ctx, platform, summoner)
	case "teams":
		return api.Teams(ctx, platform, summoner)
	case "ranked_stats":
		return api.RankedStats(ctx, platform, summoner, season)
	default:
		return nil, NewAPIError("Unknown view", http.StatusBadRequest)
	}
}

func HealthHandler(logger *Logger) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("health_check").
			Component("health").
			Operation("check").
			Log()

		writeJSON(w, map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		}, logger, r)
	})
}

func PlayerHandler(api StatsAPI, rateLimiter RateLimiterInterface, audit LookupRecorder, logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(withRateLimit(rateLimiter, "player", logger)(func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")
		summoner := r.URL.Query().Get("summoner")
		view := r.URL.Query().Get("view")
		season := r.URL.Query().Get("season")
		requestID := GetRequestID(r.Context())

		if platform == "" || summoner == "" {
			logger.Warn("missing_player_parameters").
				Component("player").
				Operation("get_player").
				Request("", "", requestID).
				Log()
			writeError(w, NewAPIError("platform and summoner are required", http.StatusBadRequest), logger, r)
			return
		}

		logger.Info("player_request").
			Component("player").
			Operation("get_player").
			Request("", "", requestID).
			Lookup(platform, summoner, "player").
			Meta("view", view).
			Log()

		result, err := playerCall(r.Context(), api, view, platform, summoner, season)
		if err != nil {
			var apiErr APIError
			if !errors.As(err, &apiErr) {
				apiErr = statusForLookupError(err)
			}
			logger.Warn("player_fetch_failed").
				Component("player").
				Operation("get_player").
				Request("", "", requestID).
				Lookup(platform, summoner, "player").
				Meta("view", view).
				Err(err).
				Log()
			recordLookup(audit, metrics, r, "player", platform, summoner, "", apiErr.Status)
			writeError(w, apiErr, logger, r)
			return
		}

		logger.Info("player_success").
			Component("player").
			Operation("get_player").
			Request("", "", requestID).
			Lookup(platform, summoner, "player").
			Meta("view", view).
			Log()

		recordLookup(audit, metrics, r, "player", platform, summoner, "", http.StatusOK)
		writeJSON(w, result, logger, r)
	}))
}

func TeamHandler(api StatsAPI, rateLimiter RateLimiterInterface, audit LookupRecorder, logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(withRateLimit(rateLimiter, "team", logger)(func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")
		tag := r.URL.Query().Get("tag")
		requestID := GetRequestID(r.Context())

		if platform == "" || tag == "" {
			logger.Warn("missing_team_parameters").
				Component("team").
				Operation("get_team").
				Request("", "", requestID).
				Log()
			writeError(w, NewAPIError("platform and tag are required", http.StatusBadRequest), logger, r)
			return
		}

		logger.Info("team_request").
			Component("team").
			Operation("get_team").
			Request("", "", requestID).
			Lookup(platform, "", "team").
			Meta("tag", tag).
			Log()

		result, err := api.Team(r.Context(), platform, tag)
		if err != nil {
			apiErr := statusForLookupError(err)
			logger.Warn("team_fetch_failed").
				Component("team").
				Operation("get_team").
				Request("", "", requestID).
				Lookup(platform, "", "team").
				Meta("tag", tag).
				Err(err).
				Log()
			recordLookup(audit, metrics, r, "team", platform, "", tag, apiErr.Status)
			writeError(w, apiErr, logger, r)
			return
		}

		recordLookup(audit, metrics, r, "team", platform, "", tag, http.StatusOK)
		writeJSON(w, result, logger, r)
	}))
}

func TeamLeaguesHandler(api StatsAPI, rateLimiter RateLimiterInterface, audit LookupRecorder, logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(withRateLimit(rateLimiter, "team-leagues", logger)(func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")
		guid := r.URL.Query().Get("guid")
		requestID := GetRequestID(r.Context())

		if platform == "" || guid == "" {
			logger.Warn("missing_team_leagues_parameters").
				Component("team").
				Operation("get_team_leagues").
				Request("", "", requestID).
				Log()
			writeError(w, NewAPIError("platform and guid are required", http.StatusBadRequest), logger, r)
			return
		}

		logger.Info("team_leagues_request").
			Component("team").
			Operation("get_team_leagues").
			Request("", "", requestID).
			Lookup(platform, "", "team-leagues").
			Meta("guid", guid).
			Log()

		result, err := api.TeamLeagues(r.Context(), platform, guid)
		if err != nil {
			apiErr := statusForLookupError(err)
			logger.Warn("team_leagues_fetch_failed").
				Component("team").
				Operation("get_team_leagues").
				Request("", "", requestID).
				Lookup(platform, "", "team-leagues").
				Meta("guid", guid).
				Err(err).
				Log()
			recordLookup(audit, metrics, r, "team-leagues", platform, "", guid, apiErr.Status)
			writeError(w, apiErr, logger, r)
			return
		}

		recordLookup(audit, metrics, r, "team-leagues", platform, "", guid, http.StatusOK)
		writeJSON(w, result, logger, r)
	}))
}

func FreeWeekHandler(api StatsAPI, rateLimiter RateLimiterInterface, audit LookupRecorder, logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(withRateLimit(rateLimiter, "free-week", logger)(func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")
		requestID := GetRequestID(r.Context())

		if platform == "" {
			logger.Warn("missing_platform_parameter").
				Component("free_week").
				Operation("get_free_week").
				Request("", "", requestID).
				Log()
			writeError(w, NewAPIError("platform is required", http.StatusBadRequest), logger, r)
			return
		}

		logger.Info("free_week_request").
			Component("free_week").
			Operation("get_free_week").
			Request("", "", requestID).
			Lookup(platform, "", "free-week").
			Log()

		result, err := api.FreeWeek(r.Context(), platform)
		if err != nil {
			apiErr := statusForLookupError(err)
			logger.Warn("free_week_fetch_failed").
				Component("free_week").
				Operation("get_free_week").
				Request("", "", requestID).
				Lookup(platform, "", "free-week").
				Err(err).
				Log()
			recordLookup(audit, metrics, r, "free-week", platform, "", "", apiErr.Status)
			writeError(w, apiErr, logger, r)
			return
		}

		recordLookup(audit, metrics, r, "free-week", platform, "", "", http.StatusOK)
		writeJSON(w, result, logger, r)
	}))
}

func StatsHandler(store AuditStore, logger *Logger) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		stats, err := store.GetLookupStats()
		if err != nil {
			logger.Error("lookup_stats_failed").
				Component("stats").
				Operation("get_stats").
				Request("", "", requestID).
				Err(err).
				Log()
			writeError(w, NewAPIError("Failed to fetch lookup stats", http.StatusInternalServerError), logger, r)
			return
		}

		writeJSON(w, stats, logger, r)
	})
}

func MetricsHandler(logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		logger.Debug("metrics_request").
			Component("metrics").
			Operation("get_metrics").
			Request("", "", requestID).
			Log()

		writeJSON(w, metrics.GetMetrics(), logger, r)
	})
}
