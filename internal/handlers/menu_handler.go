package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"bistro-server/internal/models"
	"bistro-server/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type MenuHandler struct {
	menuService *services.MenuService
	logger      zerolog.Logger
}

func NewMenuHandler(db *sql.DB, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		menuService: services.NewMenuService(db, logger),
		logger:      logger,
	}
}

func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuService.ListMenu(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list menu")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch menu")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_menu_item_id", "Invalid menu item ID")
		return
	}

	item, err := h.menuService.GetMenuItem(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Failed to fetch menu item")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch menu item")
		return
	}

	// Absent items read as null rather than 404.
	respondWithJSON(w, http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	insertedID, err := h.menuService.CreateMenuItem(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to create menu item")
		respondWithError(w, http.StatusInternalServerError, "create_failed", "Failed to create menu item")
		return
	}

	respondWithJSON(w, http.StatusOK, models.InsertResult{InsertedID: &insertedID})
}

func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_menu_item_id", "Invalid menu item ID")
		return
	}

	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	modified, err := h.menuService.UpdateMenuItem(r.Context(), id, &req)
	if err != nil {
		h.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Failed to update menu item")
		respondWithError(w, http.StatusInternalServerError, "update_failed", "Failed to update menu item")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_menu_item_id", "Invalid menu item ID")
		return
	}

	deleted, err := h.menuService.DeleteMenuItem(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Failed to delete menu item")
		respondWithError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete menu item")
		return
	}

	respondWithJSON(w, http.StatusOK, models.DeleteResult{DeletedCount: deleted})
}

func (h *MenuHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.menuService.ListReviews(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reviews")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}
