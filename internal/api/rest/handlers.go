package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Haynesmodel/DarlingDraft/internal/history"
	"github.com/Haynesmodel/DarlingDraft/internal/stats"
	"github.com/gorilla/mux"
)

const (
	serviceName         = "h2h-api"
	defaultBlowoutLimit = 10
	blowoutCacheControl = "s-maxage=3600"
)

// GameSource supplies the current H2H records.
type GameSource interface {
	Games() []history.GameRecord
	LoadedAt() time.Time
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	games GameSource
	now   func() time.Time
}

// NewHandler creates a new handler
func NewHandler(games GameSource) *Handler {
	return &Handler{games: games, now: time.Now}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"ts":      h.now().UnixMilli(),
		"service": serviceName,
		"games":   len(h.games.Games()),
		"loaded":  h.games.LoadedAt().UTC().Format(time.RFC3339),
	})
}

// GetGames returns records, optionally narrowed by season and team.
func (h *Handler) GetGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	season := 0
	if s := query.Get("season"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid season", err)
			return
		}
		season = v
	}
	team := query.Get("team")

	games := make([]history.GameRecord, 0)
	for _, g := range h.games.Games() {
		if season != 0 && g.Season != season {
			continue
		}
		if team != "" && g.TeamA != team && g.TeamB != team {
			continue
		}
		games = append(games, g)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetStandings returns the regular-season table for one season
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(mux.Vars(r)["season"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	respondJSON(w, http.StatusOK, stats.SeasonStandings(h.games.Games(), season))
}

// GetHeadToHead returns the all-time record between teamA and teamB
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	teamA, teamB := query.Get("teamA"), query.Get("teamB")
	if teamA == "" || teamB == "" {
		respondError(w, http.StatusBadRequest, "teamA and teamB are required", nil)
		return
	}

	regularOnly, err := boolParam(r, "regularOnly", true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid regularOnly", err)
		return
	}

	respondJSON(w, http.StatusOK, stats.HeadToHead(h.games.Games(), teamA, teamB, regularOnly))
}

// GetLongestStreak returns a team's longest winning streak
func (h *Handler) GetLongestStreak(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]

	regularOnly, err := boolParam(r, "regularOnly", true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid regularOnly", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":   team,
		"streak": stats.LongestWinStreak(h.games.Games(), team, regularOnly),
	})
}

// GetRecords returns the single-game scoring records
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	regularOnly, err := boolParam(r, "regularOnly", true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid regularOnly", err)
		return
	}

	games := h.games.Games()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"highestCombined": stats.HighestCombinedScore(games, regularOnly),
		"highestSingle":   stats.HighestSingleScore(games, regularOnly),
	})
}

// GetBlowouts returns the largest regular-season winning margins
func (h *Handler) GetBlowouts(w http.ResponseWriter, r *http.Request) {
	limit := defaultBlowoutLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = v
	}

	w.Header().Set("Cache-Control", blowoutCacheControl)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows": stats.TopRegularBlowouts(h.games.Games(), limit),
	})
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s=%q: %w", name, s, err)
	}
	return v, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
