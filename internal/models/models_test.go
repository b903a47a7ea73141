package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorEventDecodesBackendJSON(t *testing.T) {
	// both timestamp spellings the backend emits
	for _, ts := range []string{"2026-08-26T12:00:00Z", "2026-08-26T12:00:00+00:00"} {
		raw := `{
			"id": "4f2c9a",
			"type": "llm_response",
			"timestamp": "` + ts + `",
			"data": {"provider": "openai", "tokens": 128},
			"severity": "info"
		}`

		var event MonitorEvent
		require.NoError(t, json.Unmarshal([]byte(raw), &event))
		assert.Equal(t, EventLLMResponse, event.Type)
		assert.Equal(t, SeverityInfo, event.Severity)
		assert.Equal(t, time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), event.Timestamp.UTC())
		assert.Equal(t, "openai", event.Data["provider"])
	}
}

func TestConnectionStatusOptionalFields(t *testing.T) {
	var status ConnectionStatus
	require.NoError(t, json.Unmarshal([]byte(`{"llm_ready": false}`), &status))
	assert.Empty(t, status.ModClientID)
	assert.Nil(t, status.ModConnectedAt)
	assert.False(t, status.LLMReady)
}

func TestHealthReportHealthy(t *testing.T) {
	var report HealthReport
	require.NoError(t, json.Unmarshal([]byte(`{
		"status": "healthy",
		"checks": {"websocket": {"status": "healthy", "mod_connected": true}}
	}`), &report))
	assert.True(t, report.Healthy())

	report.Status = "unhealthy"
	assert.False(t, report.Healthy())

	var nilReport *HealthReport
	assert.False(t, nilReport.Healthy())
}
