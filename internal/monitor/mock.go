package monitor

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/modwatch/modwatch/internal/models"
)

// Mock simulates the monitor stream for UI testing without a backend
type Mock struct {
	mu        sync.Mutex
	connected bool
	events    []models.MonitorEvent
	stats     *models.MessageStats
	status    *models.ConnectionStatus
	seq       int

	updates chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewMock creates a mock stream source
func NewMock() *Mock {
	return &Mock{
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

var mockEvents = []struct {
	typ      models.EventType
	severity models.Severity
	data     map[string]any
}{
	{models.EventModConnected, models.SeverityInfo, map[string]any{"client_id": "mod-42"}},
	{models.EventMessageReceived, models.SeverityInfo, map[string]any{"message_type": "player_message"}},
	{models.EventChatMessage, models.SeverityInfo, map[string]any{"text": "hello there"}},
	{models.EventLLMRequest, models.SeverityInfo, map[string]any{"provider": "openai"}},
	{models.EventLLMResponse, models.SeverityInfo, map[string]any{"tokens": 128}},
	{models.EventTokenStats, models.SeverityInfo, map[string]any{"total": 2048}},
	{models.EventMessageSent, models.SeverityInfo, map[string]any{"message_type": "companion_reply"}},
	{models.EventLLMError, models.SeverityError, map[string]any{"error": "rate limited"}},
	{models.EventModDisconnected, models.SeverityWarning, map[string]any{"client_id": "mod-42"}},
}

// Connect marks the mock connected and starts generating events
func (m *Mock) Connect() {
	m.mu.Lock()
	already := m.connected
	now := time.Now().UTC()
	m.connected = true
	m.status = &models.ConnectionStatus{
		ModClientID:    "mod-42",
		ModConnectedAt: &now,
		LLMProvider:    "mock",
		LLMReady:       true,
	}
	m.stats = &models.MessageStats{
		MessagesPerType: map[string]int{},
		LastResetAt:     now,
	}
	m.mu.Unlock()

	if !already {
		go m.generate()
	}
	m.notify()
}

// Reconnect is the same as Connect for the mock
func (m *Mock) Reconnect() { m.Connect() }

// Close stops event generation
func (m *Mock) Close() error {
	m.once.Do(func() { close(m.done) })
	m.mu.Lock()
	m.connected = false
	m.mu.Unlock()
	return nil
}

// Snapshot returns the simulated derived state
func (m *Mock) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]models.MonitorEvent, len(m.events))
	copy(events, m.events)
	return Snapshot{
		Events:           events,
		ConnectionStatus: m.status,
		Stats:            m.stats,
		Connected:        m.connected,
	}
}

// Updates signals when simulated state changed. Single receiver, same
// contract as Client.Updates.
func (m *Mock) Updates() <-chan struct{} { return m.updates }

// ClearHistory drops the simulated event log
func (m *Mock) ClearHistory() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
	m.notify()
}

// ResetStats zeroes the simulated counters
func (m *Mock) ResetStats() {
	m.mu.Lock()
	m.stats = &models.MessageStats{
		MessagesPerType: map[string]int{},
		LastResetAt:     time.Now().UTC(),
	}
	m.mu.Unlock()
	m.notify()
}

func (m *Mock) generate() {
	ticker := time.NewTicker(1500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			tmpl := mockEvents[rand.Intn(len(mockEvents))]

			m.mu.Lock()
			m.seq++
			m.events = append(m.events, models.MonitorEvent{
				ID:        fmt.Sprintf("mock-%d", m.seq),
				Type:      tmpl.typ,
				Timestamp: time.Now().UTC(),
				Data:      tmpl.data,
				Severity:  tmpl.severity,
			})
			if n := len(m.events) - historyLimit; n > 0 {
				m.events = m.events[n:]
			}
			// snapshots already handed out may still be read by the UI,
			// so stats are replaced wholesale, never mutated in place
			if m.stats != nil {
				next := &models.MessageStats{
					TotalReceived:   m.stats.TotalReceived + 1,
					TotalSent:       m.stats.TotalSent,
					MessagesPerType: make(map[string]int, len(m.stats.MessagesPerType)+1),
					LastResetAt:     m.stats.LastResetAt,
				}
				for k, v := range m.stats.MessagesPerType {
					next.MessagesPerType[k] = v
				}
				next.MessagesPerType[string(tmpl.typ)]++
				m.stats = next
			}
			m.mu.Unlock()
			m.notify()
		}
	}
}

func (m *Mock) notify() {
	select {
	case m.updates <- struct{}{}:
	default:
	}
}
