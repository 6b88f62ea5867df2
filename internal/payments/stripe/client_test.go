package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{19.999, 2000}, // truncation would undercharge to 1999
		{10.5, 1050},
		{5.00, 500},
		{0.999, 100},
		{0.01, 1},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MinorUnits(tt.price), "price %v", tt.price)
	}
}

func TestCreateIntent_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[]"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_456",
		})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL, SecretKey: "sk_test_123"})

	secret, err := client.CreateIntent(context.Background(), 19.999)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)
}

func TestCreateIntent_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {
				"type":    "invalid_request_error",
				"message": "Amount must be at least 50 cents",
			},
		})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL, SecretKey: "sk_test_123"})

	_, err := client.CreateIntent(context.Background(), 0.01)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadRequest, providerErr.StatusCode)
	assert.Equal(t, "invalid_request_error", providerErr.Type)
	assert.Equal(t, "Amount must be at least 50 cents", providerErr.Message)
}

func TestCreateIntent_OpaqueProviderFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL, SecretKey: "sk_test_123"})

	_, err := client.CreateIntent(context.Background(), 10)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusServiceUnavailable, providerErr.StatusCode)
}

func TestCreateIntent_Unreachable(t *testing.T) {
	client := NewClient(Config{APIURL: "http://127.0.0.1:1", SecretKey: "sk_test_123"})

	_, err := client.CreateIntent(context.Background(), 10)
	require.Error(t, err)

	// Transport failures carry no provider classification.
	var providerErr *ProviderError
	assert.False(t, errors.As(err, &providerErr))
}
