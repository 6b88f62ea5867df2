package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro-server/internal/models"
	"bistro-server/internal/payments/stripe"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntent(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2000", r.PostForm.Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"client_secret": "pi_secret_abc"})
	}))
	defer provider.Close()

	gateway := stripe.NewClient(stripe.Config{APIURL: provider.URL, SecretKey: "sk_test"})
	h := NewPaymentHandler(nil, gateway, zerolog.Nop())

	body, _ := json.Marshal(models.IntentRequest{Price: 19.999})
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.CreateIntent(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.IntentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "pi_secret_abc", resp.ClientSecret)
}

func TestCreateIntent_ProviderRejection(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {"type": "card_error", "message": "Your card was declined."},
		})
	}))
	defer provider.Close()

	gateway := stripe.NewClient(stripe.Config{APIURL: provider.URL, SecretKey: "sk_test"})
	h := NewPaymentHandler(nil, gateway, zerolog.Nop())

	body, _ := json.Marshal(models.IntentRequest{Price: 42.00})
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.CreateIntent(w, req)

	// The provider's own classification propagates.
	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "payment_gateway_error", resp["error"])
	assert.Equal(t, "Your card was declined.", resp["message"])
}

func TestCreateIntent_BadBody(t *testing.T) {
	gateway := stripe.NewClient(stripe.Config{APIURL: "http://unused", SecretKey: "sk_test"})
	h := NewPaymentHandler(nil, gateway, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	h.CreateIntent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
