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

type UserHandler struct {
	userService *services.UserService
	logger      zerolog.Logger
}

func NewUserHandler(db *sql.DB, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: services.NewUserService(db, logger),
		logger:      logger,
	}
}

// Register creates the user on first sign-in. Duplicate emails are a normal
// outcome, not an error.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	insertedID, err := h.userService.RegisterIfAbsent(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Registration failed")
		respondWithError(w, http.StatusInternalServerError, "registration_failed", "Failed to register user")
		return
	}

	if insertedID == nil {
		respondWithJSON(w, http.StatusOK, models.InsertResult{
			Message:    "user already exists",
			InsertedID: nil,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, models.InsertResult{InsertedID: insertedID})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list users")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch users")
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

// CheckAdmin reports whether the requested email holds the admin role. The
// identity-match guard already guarantees the email is the caller's own.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	isAdmin, err := h.userService.IsAdmin(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("Admin check failed")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to check admin role")
		return
	}

	respondWithJSON(w, http.StatusOK, models.AdminCheckResponse{Admin: isAdmin})
}

func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	modified, err := h.userService.PromoteToAdmin(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("Promotion failed")
		respondWithError(w, http.StatusInternalServerError, "update_failed", "Failed to promote user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"modifiedCount": modified})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_user_id", "Invalid user ID")
		return
	}

	deleted, err := h.userService.DeleteUser(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("User deletion failed")
		respondWithError(w, http.StatusInternalServerError, "delete_failed", "Failed to delete user")
		return
	}

	respondWithJSON(w, http.StatusOK, models.DeleteResult{DeletedCount: deleted})
}
