package handlers

import (
	"database/sql"
	"net/http"

	"bistro-server/internal/services"

	"github.com/rs/zerolog"
)

type StatsHandler struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

func NewStatsHandler(db *sql.DB, logger zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: services.NewStatsService(db, logger),
		logger:       logger,
	}
}

func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.AdminStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to compute admin stats")
		respondWithError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.OrderStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to compute order stats")
		respondWithError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute stats")
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
