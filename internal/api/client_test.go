package api

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

type staticTokens struct {
	token string
}

func (s staticTokens) AccessToken() string { return s.token }

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": []any{}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens{token: "tok-123"})
	_, err := c.Orchids(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": []any{}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, staticTokens{})
	_, err := c.Categories(context.Background())
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestClient_ServerFailureBecomesError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil)
	_, err := c.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listens anymore

	c := NewClient(ts.URL, nil)
	_, err := c.Orchids(context.Background())
	require.Error(t, err)

	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_LoginDecodesEnvelope(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"message": "login success",
			"data": map[string]any{
				"token": map[string]any{
					"access_token":  "acc",
					"refresh_token": "ref",
					"token_type":    "Bearer",
					"expires":       "2099-01-01T00:00:00Z",
				},
				"account": map[string]any{"id": 3, "email": "user@example.com", "role": "ADMIN"},
			},
		})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil)
	resp, err := c.Login(context.Background(), "user@example.com", "password")
	require.NoError(t, err)

	assert.Equal(t, "acc", resp.Data.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Data.Token.TokenType)
	assert.Equal(t, 3, resp.Data.Account.ID)
	assert.Equal(t, "ADMIN", resp.Data.Account.Role)
}
