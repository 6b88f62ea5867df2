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

type CartHandler struct {
	cartService *services.CartService
	logger      zerolog.Logger
}

func NewCartHandler(db *sql.DB, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cartService: services.NewCartService(db, logger),
		logger:      logger,
	}
}

func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	items, err := h.cartService.CartByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("Failed to list cart")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch cart")
		return
	}

	respondWithJSON(w, http.StatusOK, items)
}

func (h *CartHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req models.CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	insertedID, err := h.cartService.AddCartItem(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to add cart item")
		respondWithError(w, http.StatusInternalServerError, "create_failed", "Failed to add cart item")
		return
	}

	respondWithJSON(w, http.StatusOK, models.InsertResult{InsertedID: &insertedID})
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_cart_item_id", "Invalid cart item ID")
		return
	}

	deleted, err := h.cartService.RemoveCartItem(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("cart_item_id", id).Msg("Failed to remove cart item")
		respondWithError(w, http.StatusInternalServerError, "delete_failed", "Failed to remove cart item")
		return
	}

	respondWithJSON(w, http.StatusOK, models.DeleteResult{DeletedCount: deleted})
}
