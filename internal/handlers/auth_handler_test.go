package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bistro-server/internal/models"
	"bistro-server/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken(t *testing.T) {
	authService := services.NewAuthService("test-secret", zerolog.Nop())
	h := NewAuthHandler(authService, zerolog.Nop())

	body, _ := json.Marshal(models.TokenRequest{Email: "alice@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/jwt", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	h.IssueToken(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)

	// The token must verify back to the same email.
	email, err := authService.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestIssueToken_MissingEmail(t *testing.T) {
	authService := services.NewAuthService("test-secret", zerolog.Nop())
	h := NewAuthHandler(authService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.IssueToken(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIssueToken_BadBody(t *testing.T) {
	authService := services.NewAuthService("test-secret", zerolog.Nop())
	h := NewAuthHandler(authService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.IssueToken(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
