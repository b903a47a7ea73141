package monitor

import (
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/modwatch/modwatch/internal/models"
)

const (
	// DefaultEndpoint is used when no backend URL is configured
	DefaultEndpoint = "ws://localhost:8000/ws/monitor"

	historyLimit       = 100
	initialRetryDelay  = 1000 * time.Millisecond
	maxRetryDelay      = 30 * time.Second
	maxRetryAttempts   = 10
	shutdownRetryDelay = 5 * time.Second
)

// conn is the subset of *websocket.Conn the client uses.
// Tests substitute an in-memory implementation.
type conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error
}

// Snapshot is the read-only view handed to consumers. Events is a copy;
// the snapshots are nil whenever the socket is down.
type Snapshot struct {
	Events           []models.MonitorEvent
	ConnectionStatus *models.ConnectionStatus
	Stats            *models.MessageStats
	Connected        bool
}

// Client maintains one logical WebSocket subscription to the backend's
// monitor endpoint. It classifies inbound frames, keeps a bounded event
// log and the latest stats/status snapshots, and reconnects on loss with
// exponential backoff up to a fixed attempt budget.
//
// All mutation happens inside the client; consumers read snapshots and
// issue ClearHistory/ResetStats.
type Client struct {
	url string
	log zerolog.Logger

	// test seams; defaults dial gorilla and use time.AfterFunc
	dialFn  func(endpoint string) (conn, error)
	afterFn func(d time.Duration, fn func()) *time.Timer

	mu        sync.Mutex
	conn      conn
	connected bool
	dialing   bool
	closed    bool
	events    []models.MonitorEvent
	status    *models.ConnectionStatus
	stats     *models.MessageStats
	attempts  int
	delay     time.Duration
	retry     *time.Timer

	updates chan struct{}
}

// NewClient creates a client for the given ws:// or wss:// endpoint.
// An empty endpoint falls back to DefaultEndpoint. The client does not
// dial until Connect is called.
func NewClient(endpoint string, log zerolog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		url: endpoint,
		log: log.With().Str("component", "monitor").Logger(),
		dialFn: func(endpoint string) (conn, error) {
			c, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		afterFn: time.AfterFunc,
		delay:   initialRetryDelay,
		updates: make(chan struct{}, 1),
	}
}

// EndpointFromBase derives the monitor WebSocket URL from the backend's
// HTTP base URL, matching scheme (http->ws, https->wss).
func EndpointFromBase(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return DefaultEndpoint
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws/monitor"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// Connect opens the socket if no live socket exists. Dial failure counts
// as an abnormal closure and schedules a retry; it is never fatal.
func (c *Client) Connect() {
	c.mu.Lock()
	if c.closed || c.dialing || c.conn != nil {
		c.mu.Unlock()
		return
	}
	c.dialing = true
	endpoint := c.url
	c.mu.Unlock()

	ws, err := c.dialFn(endpoint)

	c.mu.Lock()
	c.dialing = false
	if c.closed {
		c.mu.Unlock()
		if err == nil {
			_ = ws.Close()
		}
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Str("url", endpoint).Msg("dial failed")
		c.scheduleRetryLocked(websocket.CloseAbnormalClosure)
		c.mu.Unlock()
		c.notify()
		return
	}

	c.conn = ws
	c.connected = true
	c.attempts = 0
	c.delay = initialRetryDelay
	c.mu.Unlock()

	c.log.Info().Str("url", endpoint).Msg("monitor connected")
	go c.readLoop(ws)
	c.notify()
}

// Reconnect resets the backoff state and dials again. This is the explicit
// restart path out of the exhausted state (bound to a key in the TUI).
func (c *Client) Reconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelRetryLocked()
	c.attempts = 0
	c.delay = initialRetryDelay
	c.mu.Unlock()
	c.Connect()
}

// Close tears the client down: cancels any pending retry, closes the
// socket and prevents any future reconnect.
func (c *Client) Close() error {
	c.mu.Lock()
	c.closed = true
	c.cancelRetryLocked()
	ws := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	if ws != nil {
		return ws.Close()
	}
	return nil
}

// Snapshot returns the current derived state. The event slice is a copy.
func (c *Client) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := make([]models.MonitorEvent, len(c.events))
	copy(events, c.events)
	return Snapshot{
		Events:           events,
		ConnectionStatus: c.status,
		Stats:            c.stats,
		Connected:        c.connected,
	}
}

// Updates signals (coalesced) whenever the derived state changed. The
// channel has a single slot and is meant for a single receiver; with
// multiple receivers a signal reaches only one of them.
func (c *Client) Updates() <-chan struct{} {
	return c.updates
}

// ClearHistory asks the backend to drop its event history and clears the
// local log immediately, without waiting for the ack. Silently does
// nothing while disconnected.
func (c *Client) ClearHistory() {
	c.mu.Lock()
	ws := c.conn
	if ws == nil || !c.connected {
		c.mu.Unlock()
		return
	}
	c.events = nil
	c.mu.Unlock()

	if err := ws.WriteJSON(command{Type: cmdClearHistory}); err != nil {
		c.log.Warn().Err(err).Msg("clear_history send failed")
	}
	c.notify()
}

// ResetStats asks the backend to zero its counters. The local stats
// snapshot is left alone until the next stats frame reflects the reset.
// Silently does nothing while disconnected.
func (c *Client) ResetStats() {
	c.mu.Lock()
	ws := c.conn
	if ws == nil || !c.connected {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := ws.WriteJSON(command{Type: cmdResetStats}); err != nil {
		c.log.Warn().Err(err).Msg("reset_stats send failed")
	}
}

func (c *Client) readLoop(ws conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			code := websocket.CloseAbnormalClosure
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				code = ce.Code
			}
			c.handleClose(ws, code, err)
			return
		}
		c.handleFrame(data)
	}
}

// handleClose runs when a socket's read loop ends. Stale loops from an
// already-replaced socket must not touch state.
func (c *Client) handleClose(ws conn, code int, err error) {
	c.mu.Lock()
	if c.conn != ws {
		c.mu.Unlock()
		return
	}
	_ = ws.Close()
	c.conn = nil
	c.connected = false
	c.status = nil
	c.stats = nil
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.log.Warn().Err(err).Int("code", code).Msg("monitor disconnected")
	c.scheduleRetryLocked(code)
	c.mu.Unlock()
	c.notify()
}

// scheduleRetryLocked arms the reconnect timer. Close codes 1000/1001 mean
// the server is cycling through a planned shutdown, so a fixed 5s wait is
// used instead of the backoff value. Once the attempt budget is spent the
// client stays down until Reconnect.
func (c *Client) scheduleRetryLocked(code int) {
	c.cancelRetryLocked()
	if c.attempts >= maxRetryAttempts {
		c.log.Error().Int("attempts", c.attempts).Msg("reconnect attempts exhausted")
		return
	}
	wait := c.delay
	if code == websocket.CloseNormalClosure || code == websocket.CloseGoingAway {
		wait = shutdownRetryDelay
	}
	c.log.Info().Dur("wait", wait).Int("attempt", c.attempts+1).Msg("scheduling reconnect")
	c.retry = c.afterFn(wait, c.retryFired)
}

func (c *Client) retryFired() {
	c.mu.Lock()
	c.retry = nil
	if c.closed || c.conn != nil {
		c.mu.Unlock()
		return
	}
	c.attempts++
	c.delay = c.delay * 2
	if c.delay > maxRetryDelay {
		c.delay = maxRetryDelay
	}
	c.mu.Unlock()
	c.Connect()
}

func (c *Client) cancelRetryLocked() {
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
}

// handleFrame applies one inbound frame. Malformed frames are dropped and
// logged; connection state is untouched.
func (c *Client) handleFrame(data []byte) {
	var frame serverFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.log.Warn().Err(err).Msg("dropping unparseable frame")
		return
	}

	c.mu.Lock()
	switch frame.Type {
	case frameHistory:
		events := frame.Events
		if len(events) > historyLimit {
			events = events[len(events)-historyLimit:]
		}
		c.events = append([]models.MonitorEvent(nil), events...)

	case frameStats:
		if frame.Data != nil {
			c.stats = frame.Data.Stats
			c.status = frame.Data.ConnectionStatus
		}

	case frameEvent:
		if frame.Event != nil {
			c.events = append(c.events, *frame.Event)
			if n := len(c.events) - historyLimit; n > 0 {
				c.events = append([]models.MonitorEvent(nil), c.events[n:]...)
			}
		}

	case frameAck:
		c.log.Debug().Str("message", frame.Message).Msg("ack")

	case frameError:
		c.log.Warn().Str("message", frame.Message).Msg("backend rejected command")

	default:
		c.log.Debug().Str("type", frame.Type).Msg("ignoring unknown frame")
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Client) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
