package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/modwatch/modwatch/internal/models"
	"github.com/modwatch/modwatch/internal/ui/styles"
)

// EventsView displays the live monitor event tail
type EventsView struct {
	viewport viewport.Model
	events   []models.MonitorEvent
	filter   string
	follow   bool
	width    int
	height   int
}

// NewEventsView creates a new events view
func NewEventsView(width, height int) *EventsView {
	vp := viewport.New(width, height)
	return &EventsView{
		viewport: vp,
		follow:   true,
		width:    width,
		height:   height,
	}
}

// SetSize updates the view dimensions
func (v *EventsView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
	v.updateContent()
}

// SetEvents replaces the displayed events with the latest snapshot
func (v *EventsView) SetEvents(events []models.MonitorEvent) {
	v.events = events
	v.updateContent()
	if v.follow {
		v.viewport.GotoBottom()
	}
}

// SetFilter sets the search filter
func (v *EventsView) SetFilter(filter string) {
	v.filter = filter
	v.updateContent()
}

// Filter returns the active filter
func (v *EventsView) Filter() string {
	return v.filter
}

// ClearFilter clears the search filter
func (v *EventsView) ClearFilter() {
	v.filter = ""
	v.updateContent()
}

// ToggleFollow toggles follow mode
func (v *EventsView) ToggleFollow() {
	v.follow = !v.follow
	if v.follow {
		v.viewport.GotoBottom()
	}
}

// IsFollowing returns whether follow mode is enabled
func (v *EventsView) IsFollowing() bool {
	return v.follow
}

// SetFollow sets follow mode directly (used when restoring persisted state)
func (v *EventsView) SetFollow(follow bool) {
	v.follow = follow
}

// Update forwards scrolling keys to the viewport
func (v *EventsView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return cmd
}

// GotoTop jumps to the oldest retained event
func (v *EventsView) GotoTop() { v.viewport.GotoTop() }

// GotoBottom jumps to the newest event
func (v *EventsView) GotoBottom() { v.viewport.GotoBottom() }

func (v *EventsView) updateContent() {
	var lines []string

	for _, event := range v.events {
		if v.filter != "" && !matchesFilter(event, v.filter) {
			continue
		}

		style := styles.EventInfo
		switch event.Severity {
		case models.SeverityWarning:
			style = styles.EventWarning
		case models.SeverityError:
			style = styles.EventError
		}

		ts := event.Timestamp.Local().Format("15:04:05")
		line := styles.Muted.Render(ts) + " " +
			styles.Secondary.Render(string(event.Type)) + " " +
			style.Render(formatEventData(event.Data))
		lines = append(lines, line)
	}

	v.viewport.SetContent(strings.Join(lines, "\n"))
}

func matchesFilter(event models.MonitorEvent, filter string) bool {
	needle := strings.ToLower(filter)
	if strings.Contains(strings.ToLower(string(event.Type)), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(formatEventData(event.Data)), needle)
}

// formatEventData renders the opaque event payload as stable key=value pairs
func formatEventData(data map[string]any) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}

// View renders the events view
func (v *EventsView) View() string {
	return v.viewport.View()
}
