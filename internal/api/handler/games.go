package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rinkstat/rinkstat-data/internal/api/respond"
	"github.com/rinkstat/rinkstat-data/internal/cache"
	"github.com/rinkstat/rinkstat-data/internal/schedule"
	"github.com/rinkstat/rinkstat-data/internal/store"
)

// gameJSON is the wire shape for a scheduled game.
type gameJSON struct {
	Season    int    `json:"season"`
	GameID    int    `json:"game_id"`
	GamePk    int64  `json:"game_pk"`
	Type      string `json:"type"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	HomeID    int    `json:"home_id"`
	HomeName  string `json:"home_name"`
	RoadID    int    `json:"road_id"`
	RoadName  string `json:"road_name"`
	HomeScore int    `json:"home_score"`
	RoadScore int    `json:"road_score"`
	Venue     string `json:"venue,omitempty"`
}

func toGameJSON(g schedule.Game) gameJSON {
	return gameJSON{
		Season:    g.Season,
		GameID:    g.ID,
		GamePk:    g.GamePk,
		Type:      g.Type,
		Date:      g.Date,
		Status:    g.Status,
		HomeID:    g.HomeID,
		HomeName:  g.HomeName,
		RoadID:    g.RoadID,
		RoadName:  g.RoadName,
		HomeScore: g.HomeScore,
		RoadScore: g.RoadScore,
		Venue:     g.Venue,
	}
}

func parseSeason(s string) (int, error) {
	season, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("season must be an integer")
	}
	if season < 2005 || season > time.Now().Year()+1 {
		return 0, fmt.Errorf("season must be between 2005 and %d", time.Now().Year()+1)
	}
	return season, nil
}

// GetSchedule returns all stored games for a season.
// @Summary Get season schedule
// @Description Returns all regular-season and playoff games stored for a season, with status and scores.
// @Tags games
// @Produce json
// @Param season path int true "Season start year (e.g. 2017 for 2017-18)"
// @Success 200 {array} handler.gameJSON
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /schedule/{season} [get]
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("schedule:%d", season)
	ttl := cache.TTLSchedule

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	games, err := store.GamesBySeason(r.Context(), h.pool.Pool, season)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Schedule query failed")
		return
	}
	if len(games) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No games stored for season %d", season))
		return
	}

	out := make([]gameJSON, len(games))
	for i, g := range games {
		out[i] = toGameJSON(g)
	}
	raw, err := json.Marshal(out)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetGame returns one stored game.
// @Summary Get game
// @Description Returns schedule metadata for a single game.
// @Tags games
// @Produce json
// @Param season path int true "Season start year"
// @Param gameID path int true "Game ID (short form, e.g. 20001)"
// @Success 200 {object} handler.gameJSON
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{season}/{gameID} [get]
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil || gameID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GAME", "Game ID must be a positive integer")
		return
	}

	cacheKey := fmt.Sprintf("game:%d:%d", season, gameID)
	ttl := cache.TTLSchedule

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	game, err := store.GameByID(r.Context(), h.pool.Pool, season, gameID)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Game %d/%d not found", season, gameID))
		return
	}

	raw, err := json.Marshal(toGameJSON(game))
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetIngestStatus returns ingest progress for a season.
// @Summary Get ingest status
// @Description Returns counts of stored, final, and ingested games for a season.
// @Tags games
// @Produce json
// @Param season path int true "Season start year"
// @Success 200 {object} store.IngestStatus
// @Failure 400 {object} respond.ErrorResponse
// @Router /status/{season} [get]
func (h *Handler) GetIngestStatus(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}

	st, err := store.SeasonIngestStatus(r.Context(), h.pool.Pool, season)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Status query failed")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, st)
}

// GetGameEvents returns enriched play-by-play events for a game.
// @Summary Get game events
// @Description Returns play-by-play events with on-ice player lists attached to each event.
// @Tags games
// @Produce json
// @Param season path int true "Season start year"
// @Param gameID path int true "Game ID (short form)"
// @Success 200 {array} store.EventRow
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{season}/{gameID}/events [get]
func (h *Handler) GetGameEvents(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil || gameID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GAME", "Game ID must be a positive integer")
		return
	}

	cacheKey := fmt.Sprintf("events:%d:%d", season, gameID)
	ttl := cache.TTLGameData

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	events, err := store.EventsByGame(r.Context(), h.pool.Pool, season, gameID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Event query failed")
		return
	}
	if len(events) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No events stored for game %d/%d", season, gameID))
		return
	}

	raw, err := json.Marshal(events)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetGameShifts returns parsed shifts for a game.
// @Summary Get game shifts
// @Description Returns shift intervals for all players in a game, in period-relative seconds.
// @Tags games
// @Produce json
// @Param season path int true "Season start year"
// @Param gameID path int true "Game ID (short form)"
// @Success 200 {array} store.ShiftRow
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /games/{season}/{gameID}/shifts [get]
func (h *Handler) GetGameShifts(w http.ResponseWriter, r *http.Request) {
	season, err := parseSeason(chi.URLParam(r, "season"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_SEASON", err.Error())
		return
	}
	gameID, err := strconv.Atoi(chi.URLParam(r, "gameID"))
	if err != nil || gameID <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_GAME", "Game ID must be a positive integer")
		return
	}

	cacheKey := fmt.Sprintf("shifts:%d:%d", season, gameID)
	ttl := cache.TTLGameData

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	shifts, err := store.ShiftsByGame(r.Context(), h.pool.Pool, season, gameID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Shift query failed")
		return
	}
	if len(shifts) == 0 {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No shifts stored for game %d/%d", season, gameID))
		return
	}

	raw, err := json.Marshal(shifts)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Response encoding failed")
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}
