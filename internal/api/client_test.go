package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health/liveness", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.NoError(t, c.Liveness(context.Background()))
}

func TestReadinessDecodes503Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{
			"status": "unhealthy",
			"checks": {
				"websocket": {"status": "degraded", "mod_connected": false},
				"llm": {"status": "healthy", "api_key_present": true}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	report, err := c.Readiness(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Healthy())
	assert.Equal(t, "degraded", report.Checks["websocket"].Status)
	require.NotNil(t, report.Checks["llm"].APIKeyPresent)
	assert.True(t, *report.Checks["llm"].APIKeyPresent)
}

func TestTokenTrend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats/token-trend", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"trend": [
				{"hour": "11:00", "tokens": 300, "timestamp": "2026-08-26T11:00:00Z"},
				{"hour": "12:00", "tokens": 120, "timestamp": "2026-08-26T12:00:00Z"}
			],
			"total_tokens": 420,
			"last_updated": "2026-08-26T12:30:00Z"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	trend, err := c.TokenTrend(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 420, trend.TotalTokens)
	require.Len(t, trend.Trend, 2)
	assert.Equal(t, "11:00", trend.Trend[0].Hour)
	assert.Equal(t, 300, trend.Trend[0].Tokens)
}

func TestInjectTestTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/stats/token-trend/test", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("tokens"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","tokens_added":250}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.NoError(t, c.InjectTestTokens(context.Background(), 250))
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.TokenTrend(context.Background())
	assert.ErrorContains(t, err, "502")
}
