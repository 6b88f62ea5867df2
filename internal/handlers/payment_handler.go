package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"bistro-server/internal/models"
	"bistro-server/internal/payments/stripe"
	"bistro-server/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	gateway        *stripe.Client
	logger         zerolog.Logger
}

func NewPaymentHandler(db *sql.DB, gateway *stripe.Client, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: services.NewPaymentService(db, logger),
		gateway:        gateway,
		logger:         logger,
	}
}

// CreateIntent asks the payment provider for a card-payable intent and hands
// the client secret back for client-side confirmation.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req models.IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	clientSecret, err := h.gateway.CreateIntent(r.Context(), req.Price)
	if err != nil {
		var providerErr *stripe.ProviderError
		if errors.As(err, &providerErr) {
			h.logger.Warn().Err(err).Float64("price", req.Price).Msg("Payment provider rejected intent")
			respondWithError(w, providerErr.StatusCode, "payment_gateway_error", providerErr.Message)
			return
		}
		h.logger.Error().Err(err).Msg("Payment intent creation failed")
		respondWithError(w, http.StatusInternalServerError, "payment_gateway_error", "Failed to create payment intent")
		return
	}

	respondWithJSON(w, http.StatusOK, models.IntentResponse{ClientSecret: clientSecret})
}

// Settle records the completed payment and clears the originating cart.
func (h *PaymentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	var req models.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.paymentService.Settle(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateTransaction) {
			respondWithError(w, http.StatusConflict, "duplicate_transaction", "Payment with this transaction ID already recorded")
			return
		}
		h.logger.Error().Err(err).Str("transaction_id", req.TransactionID).Msg("Settlement failed")
		respondWithError(w, http.StatusInternalServerError, "settlement_failed", "Failed to record payment")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *PaymentHandler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	payments, err := h.paymentService.PaymentsByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error().Err(err).Str("email", email).Msg("Failed to list payments")
		respondWithError(w, http.StatusInternalServerError, "fetch_failed", "Failed to fetch payments")
		return
	}

	respondWithJSON(w, http.StatusOK, payments)
}
