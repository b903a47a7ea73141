package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modwatch/modwatch/internal/models"
)

func TestFormatEventDataStableOrder(t *testing.T) {
	data := map[string]any{"tokens": 128, "provider": "openai", "cached": true}
	assert.Equal(t, "cached=true provider=openai tokens=128", formatEventData(data))
	assert.Equal(t, "", formatEventData(nil))
}

func TestMatchesFilter(t *testing.T) {
	event := models.MonitorEvent{
		Type: models.EventLLMRequest,
		Data: map[string]any{"provider": "OpenAI"},
	}
	assert.True(t, matchesFilter(event, "llm"))
	assert.True(t, matchesFilter(event, "openai"))
	assert.False(t, matchesFilter(event, "websocket"))
}

func TestEventsViewFilterHidesNonMatching(t *testing.T) {
	v := NewEventsView(80, 10)
	v.SetEvents([]models.MonitorEvent{
		{Type: models.EventChatMessage, Timestamp: time.Now(), Data: map[string]any{"text": "hi"}},
		{Type: models.EventLLMError, Timestamp: time.Now(), Severity: models.SeverityError,
			Data: map[string]any{"error": "rate limited"}},
	})

	v.SetFilter("llm_error")
	assert.Contains(t, v.View(), "llm_error")
	assert.NotContains(t, v.View(), "chat_message")

	v.ClearFilter()
	assert.Contains(t, v.View(), "chat_message")
}
