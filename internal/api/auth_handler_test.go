package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loginRequest(t *testing.T, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	seedUser := &domain.User{
		ID:             userID,
		Username:       "sara",
		Email:          "sara@example.com",
		HashedPassword: "bcrypt-hash",
		FullName:       "Sara Lim",
		Role:           "member",
		CreatedAt:      time.Now().UTC(),
	}

	newHandler := func(verifierOK bool) (*AuthHandler, *mocks.MockJWTService) {
		userStore := mocks.NewMockUserStore()
		userStore.Users["sara"] = seedUser

		jwtService := &mocks.MockJWTService{Token: "signed.jwt.token"}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: verifierOK}

		return NewAuthHandler(userStore, jwtService, verifier, 24*time.Hour, testLogger()), jwtService
	}

	t.Run("successful login returns token and user", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(true)

		rr := httptest.NewRecorder()
		handler.Login(rr, loginRequest(t, map[string]string{
			"username": "sara",
			"password": "correct-password",
		}))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "signed.jwt.token", resp.Token)
		assert.Equal(t, userID, resp.User.ID)
		assert.Equal(t, "sara", resp.User.Username)
		assert.NotEmpty(t, resp.ExpiresAt)

		// Credential fields must never appear in the payload
		assert.NotContains(t, rr.Body.String(), "bcrypt-hash")
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("unknown username yields generic unauthorized", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(true)

		rr := httptest.NewRecorder()
		handler.Login(rr, loginRequest(t, map[string]string{
			"username": "nobody",
			"password": "whatever",
		}))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid username or password")
	})

	t.Run("wrong password yields the same unauthorized message", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(false)

		rr := httptest.NewRecorder()
		handler.Login(rr, loginRequest(t, map[string]string{
			"username": "sara",
			"password": "wrong-password",
		}))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid username or password")
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(true)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{not json")))
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		t.Parallel()
		handler, _ := newHandler(true)

		rr := httptest.NewRecorder()
		handler.Login(rr, loginRequest(t, map[string]string{"username": "sara"}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("token generation failure yields 500", func(t *testing.T) {
		t.Parallel()
		handler, jwtService := newHandler(true)
		jwtService.GenerateTokenFn = func(ctx context.Context, userID uuid.UUID, username string) (string, error) {
			return "", errors.New("signing failed")
		}

		rr := httptest.NewRecorder()
		handler.Login(rr, loginRequest(t, map[string]string{
			"username": "sara",
			"password": "correct-password",
		}))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "signing failed")
	})
}
