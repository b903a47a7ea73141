package monitor

import "github.com/modwatch/modwatch/internal/models"

// Frame types pushed by the backend on /ws/monitor
const (
	frameHistory = "history"
	frameStats   = "stats"
	frameEvent   = "event"
	frameAck     = "ack"
	frameError   = "error"
)

// Command types the client may send upstream
const (
	cmdClearHistory = "clear_history"
	cmdResetStats   = "reset_stats"
)

// serverFrame is the envelope for every inbound frame. Which fields are
// populated depends on Type.
type serverFrame struct {
	Type    string                `json:"type"`
	Events  []models.MonitorEvent `json:"events,omitempty"`
	Event   *models.MonitorEvent  `json:"event,omitempty"`
	Data    *statsPayload         `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}

// statsPayload is the body of a stats frame: both snapshots together
type statsPayload struct {
	Stats            *models.MessageStats     `json:"stats"`
	ConnectionStatus *models.ConnectionStatus `json:"connection_status"`
}

// command is an outbound control frame
type command struct {
	Type string `json:"type"`
}
