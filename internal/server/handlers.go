package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/desimealsnow/auspicious-time/internal/alternatives"
	"github.com/desimealsnow/auspicious-time/internal/cache"
	"github.com/desimealsnow/auspicious-time/internal/chart"
	"github.com/desimealsnow/auspicious-time/internal/scoring"
	"github.com/desimealsnow/auspicious-time/internal/scoring/activity"
	"github.com/desimealsnow/auspicious-time/internal/stabilize"
	"github.com/desimealsnow/auspicious-time/internal/windows"
)

// ScoreRequest is the body of POST /api/score.
type ScoreRequest struct {
	BirthDate string   `json:"birthDate"`
	BirthTime string   `json:"birthTime,omitempty"`
	BirthLat  *float64 `json:"birthLat,omitempty"`
	BirthLon  *float64 `json:"birthLon,omitempty"`
	EventTime string   `json:"eventTime"`
	EventLat  *float64 `json:"eventLat"`
	EventLon  *float64 `json:"eventLon"`
	Timezone  string   `json:"timezone,omitempty"`
	Activity  string   `json:"activity"`
}

// ScoreResponse is the body of POST /api/score.
type ScoreResponse struct {
	RequestID       string                `json:"requestId"`
	Score           float64               `json:"score"`
	Breakdown       scoring.Breakdown     `json:"breakdown"`
	Reasons         []string              `json:"reasons"`
	ScoreID         string                `json:"scoreId"`
	Level           chart.Level           `json:"level"`
	Recommendation  string                `json:"recommendation"`
	StableIntervals []stabilize.Interval  `json:"stableIntervals"`
	Alternatives    []stabilize.Interval  `json:"alternatives"`
	Windows         *windows.DayWindows   `json:"windows,omitempty"`
}

// DetailedScoreResponse adds the transit aspect list and the textual
// analysis on top of the standard response.
type DetailedScoreResponse struct {
	ScoreResponse
	TransitAspects []scoring.TransitAspect `json:"transitAspects"`
	Analysis       scoring.Analysis        `json:"analysis"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "auspicious-time",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleScore handles POST /api/score
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	resp, status, errMsg := s.score(r)
	if errMsg != "" {
		s.writeError(w, r, status, errMsg)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleScoreDetailed handles POST /api/score/detailed
func (s *Server) handleScoreDetailed(w http.ResponseWriter, r *http.Request) {
	resp, status, errMsg := s.score(r)
	if errMsg != "" {
		s.writeError(w, r, status, errMsg)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// score runs the full pipeline for both score endpoints. The detailed
// endpoint gets the extended response shape.
func (s *Server) score(r *http.Request) (interface{}, int, string) {
	detailed := r.URL.Path == "/api/score/detailed"
	requestID := middleware.GetReqID(r.Context())

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, http.StatusBadRequest, "invalid JSON body"
	}

	if req.EventTime == "" {
		return nil, http.StatusBadRequest, "eventTime is required"
	}
	eventTime, err := time.Parse(time.RFC3339, req.EventTime)
	if err != nil {
		return nil, http.StatusBadRequest, "eventTime must be RFC3339"
	}

	if req.EventLat == nil || req.EventLon == nil {
		return nil, http.StatusBadRequest, "eventLat and eventLon are required"
	}
	lat, lon := *req.EventLat, *req.EventLon
	if lat < -90 || lat > 90 {
		return nil, http.StatusBadRequest, "eventLat must be within [-90, 90]"
	}
	if lon < -180 || lon > 180 {
		return nil, http.StatusBadRequest, "eventLon must be within [-180, 180]"
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, http.StatusBadRequest, "unknown timezone"
	}

	natal, err := s.engine.Charts().ResolveNatal(chart.BirthInput{
		Date: req.BirthDate,
		Time: req.BirthTime,
		Lat:  req.BirthLat,
		Lon:  req.BirthLon,
	}, loc)
	if err != nil {
		if errors.Is(err, chart.ErrMissingBirthDate) {
			return nil, http.StatusBadRequest, "birthDate is required"
		}
		if chart.IsEphemerisError(err) {
			return nil, http.StatusBadGateway, "ephemeris unavailable"
		}
		return nil, http.StatusBadRequest, err.Error()
	}

	act := activity.Normalize(req.Activity)
	scoreID := scoring.ScoreID(eventTime, lat, lon, tz, act)
	key := cacheKey(scoreID, birthKey(req), detailed)
	if cached := s.cachedResponse(key); cached != nil {
		return cached, http.StatusOK, ""
	}

	result, err := s.engine.ScoreInstant(eventTime, lat, lon, natal, act, tz)
	if err != nil {
		if chart.IsEphemerisError(err) {
			return nil, http.StatusBadGateway, "ephemeris unavailable"
		}
		return nil, http.StatusInternalServerError, "scoring failed"
	}

	searchReq := alternatives.Request{
		Candidate:      eventTime,
		CandidateScore: result.Score,
		Lat:            lat,
		Lon:            lon,
		Natal:          natal,
		Activity:       act,
		Timezone:       tz,
	}
	stableIntervals := s.finder.StableIntervals(r.Context(), searchReq)
	alts := s.finder.Find(r.Context(), searchReq)

	dayWindows, _ := windows.Compute(eventTime, lat, lon)

	base := ScoreResponse{
		RequestID:       requestID,
		Score:           result.Score,
		Breakdown:       result.Breakdown,
		Reasons:         result.Reasons,
		ScoreID:         result.ScoreID,
		Level:           result.Level,
		Recommendation:  scoring.Recommendation(result.Score),
		StableIntervals: stableIntervals,
		Alternatives:    alts,
		Windows:         dayWindows,
	}

	var resp interface{} = base
	if detailed {
		resp = DetailedScoreResponse{
			ScoreResponse:  base,
			TransitAspects: scoring.TransitAspects(result.Chart, natal),
			Analysis:       scoring.Analyze(result),
		}
	}

	s.storeCached(key, resp)
	return resp, http.StatusOK, ""
}

// cachedResponse returns a previously computed response body, if fresh.
func (s *Server) cachedResponse(key string) json.RawMessage {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.GetIfFresh(key)
	if err != nil {
		s.log.Warn().Err(err).Msg("Score cache lookup failed")
		return nil
	}
	return raw
}

func (s *Server) storeCached(key string, resp interface{}) {
	if s.cache == nil {
		return
	}
	ttl := cache.DefaultTTL
	if s.cfg.CacheTTLMinutes > 0 {
		ttl = time.Duration(s.cfg.CacheTTLMinutes) * time.Minute
	}
	if err := s.cache.Store(key, resp, ttl); err != nil {
		s.log.Warn().Err(err).Msg("Score cache store failed")
	}
}

// cacheKey combines the score identifier with the birth fingerprint,
// since the cached response carries natal-dependent fields (level,
// natal-aware sub-scores, transit aspects). Plain and detailed
// responses cache under distinct keys.
func cacheKey(scoreID, birth string, detailed bool) string {
	key := scoreID + ":" + birth
	if detailed {
		key += ":detailed"
	}
	return key
}

// birthKey fingerprints the birth inputs that shape the natal chart.
// Coordinates round to 1e-6 degrees, matching the score identifier.
func birthKey(req ScoreRequest) string {
	in := struct {
		Date string   `json:"date"`
		Time string   `json:"time"`
		Lat  *float64 `json:"lat,omitempty"`
		Lon  *float64 `json:"lon,omitempty"`
	}{
		Date: req.BirthDate,
		Time: req.BirthTime,
		Lat:  roundCoord(req.BirthLat),
		Lon:  roundCoord(req.BirthLon),
	}
	raw, _ := json.Marshal(in)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}

func roundCoord(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*1e6) / 1e6
	return &r
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	requestID := middleware.GetReqID(r.Context())
	s.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID})
}
