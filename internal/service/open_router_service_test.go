package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestOpenRouterService_Explain(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(raw)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"summary\":\"Solid.\",\"strengths\":[\"Go\"],\"gaps\":[]}"}}]}`))
	}))
	defer srv.Close()

	s := newOpenRouterService("secret", "test-model", srv.URL)
	got, err := s.Explain(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "test-model", gjson.Get(body, "model").String())
	assert.Equal(t, "user", gjson.Get(body, "messages.1.role").String())
	assert.Equal(t, "Solid.", got.Summary)
	assert.Equal(t, []string{"Go"}, got.Strengths)
	assert.Equal(t, "openrouter", got.Provider)
}

func TestOpenRouterService_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	_, err := newOpenRouterService("wrong", "m", srv.URL).Explain(context.Background(), sampleInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad key")
}

func TestOpenRouterService_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newOpenRouterService("k", "m", srv.URL).Explain(context.Background(), sampleInput())
	assert.Error(t, err)
}

func TestOpenRouterService_Enabled(t *testing.T) {
	assert.False(t, newOpenRouterService("", "m", "u").Enabled())
	assert.True(t, newOpenRouterService("k", "m", "u").Enabled())
}
