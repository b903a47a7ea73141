package models

import "time"

// EventType identifies a kind of monitor event reported by the backend
type EventType string

const (
	EventModConnected         EventType = "mod_connected"
	EventModDisconnected      EventType = "mod_disconnected"
	EventFrontendConnected    EventType = "frontend_connected"
	EventFrontendDisconnected EventType = "frontend_disconnected"
	EventMessageReceived      EventType = "message_received"
	EventMessageSent          EventType = "message_sent"
	EventTokenStats           EventType = "token_stats"
	EventLLMRequest           EventType = "llm_request"
	EventLLMResponse          EventType = "llm_response"
	EventLLMError             EventType = "llm_error"
	EventChatMessage          EventType = "chat_message"
)

// Severity indicates how serious a monitor event is
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MonitorEvent is a single occurrence reported by the backend's event bus.
// Events are immutable once received; the log keeps them in arrival order.
type MonitorEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
	Severity  Severity       `json:"severity"`
}

// ConnectionStatus is the backend's view of who is attached to it.
// Replaced wholesale on every stats frame, nil while disconnected.
type ConnectionStatus struct {
	ModClientID      string     `json:"mod_client_id,omitempty"`
	ModConnectedAt   *time.Time `json:"mod_connected_at,omitempty"`
	ModLastMessageAt *time.Time `json:"mod_last_message_at,omitempty"`
	LLMProvider      string     `json:"llm_provider,omitempty"`
	LLMReady         bool       `json:"llm_ready"`
}

// MessageStats is the backend's message counter snapshot.
// Replaced wholesale on every stats frame, nil while disconnected.
type MessageStats struct {
	TotalReceived   int            `json:"total_received"`
	TotalSent       int            `json:"total_sent"`
	MessagesPerType map[string]int `json:"messages_per_type"`
	LastResetAt     time.Time      `json:"last_reset_at"`
}

// TokenTrendPoint is one hourly bucket of token consumption
type TokenTrendPoint struct {
	Hour      string    `json:"hour"` // "HH:00"
	Tokens    int       `json:"tokens"`
	Timestamp time.Time `json:"timestamp"`
}

// TokenTrendStats is the 24-hour token consumption trend from the REST API
type TokenTrendStats struct {
	Trend       []TokenTrendPoint `json:"trend"`
	TotalTokens int               `json:"total_tokens"`
	LastUpdated time.Time         `json:"last_updated"`
}

// HealthCheck is one entry of the readiness probe's per-dependency report
type HealthCheck struct {
	Status        string `json:"status"` // "healthy", "degraded", "unhealthy"
	ModConnected  *bool  `json:"mod_connected,omitempty"`
	APIKeyPresent *bool  `json:"api_key_present,omitempty"`
	Error         string `json:"error,omitempty"`
}

// HealthReport is the readiness probe response
type HealthReport struct {
	Status string                 `json:"status"`
	Checks map[string]HealthCheck `json:"checks"`
}

// Healthy reports whether every readiness check passed
func (h *HealthReport) Healthy() bool {
	return h != nil && h.Status == "healthy"
}
