package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/modwatch/modwatch/internal/models"
	"github.com/modwatch/modwatch/internal/monitor"
	"github.com/modwatch/modwatch/internal/ui/styles"
)

// OverviewView displays connection status, message stats and backend health
type OverviewView struct {
	width  int
	height int

	snapshot monitor.Snapshot
	health   *models.HealthReport
}

// NewOverviewView creates a new overview view
func NewOverviewView() *OverviewView {
	return &OverviewView{}
}

// SetSize sets the view dimensions
func (v *OverviewView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetData updates the view data
func (v *OverviewView) SetData(snapshot monitor.Snapshot, health *models.HealthReport) {
	v.snapshot = snapshot
	v.health = health
}

// View renders the overview
func (v *OverviewView) View() string {
	sections := []string{
		v.renderConnection(),
		v.renderStats(),
		v.renderHealth(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *OverviewView) renderConnection() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Connection") + "\n")

	status := v.snapshot.ConnectionStatus
	if status == nil {
		b.WriteString(styles.Muted.Render("  unknown (stream down or no stats yet)"))
		return b.String()
	}

	writeField(&b, "mod client", valueOr(status.ModClientID, "not connected"))
	if status.ModConnectedAt != nil {
		writeField(&b, "connected at", status.ModConnectedAt.Local().Format(time.RFC3339))
	}
	if status.ModLastMessageAt != nil {
		writeField(&b, "last message", humanSince(*status.ModLastMessageAt))
	}
	writeField(&b, "llm provider", valueOr(status.LLMProvider, "unset"))
	if status.LLMReady {
		writeField(&b, "llm ready", styles.BadgeConnected.Render("yes"))
	} else {
		writeField(&b, "llm ready", styles.BadgeDown.Render("no"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *OverviewView) renderStats() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Message Stats") + "\n")

	stats := v.snapshot.Stats
	if stats == nil {
		b.WriteString(styles.Muted.Render("  unknown"))
		return b.String()
	}

	writeField(&b, "received", fmt.Sprintf("%d", stats.TotalReceived))
	writeField(&b, "sent", fmt.Sprintf("%d", stats.TotalSent))
	writeField(&b, "last reset", humanSince(stats.LastResetAt))

	if len(stats.MessagesPerType) > 0 {
		types := make([]string, 0, len(stats.MessagesPerType))
		for t := range stats.MessagesPerType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			writeField(&b, "  "+t, fmt.Sprintf("%d", stats.MessagesPerType[t]))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *OverviewView) renderHealth() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Backend Health") + "\n")

	if v.health == nil {
		b.WriteString(styles.Muted.Render("  not fetched"))
		return b.String()
	}

	overall := styles.BadgeDown.Render(v.health.Status)
	if v.health.Healthy() {
		overall = styles.BadgeConnected.Render(v.health.Status)
	}
	writeField(&b, "overall", overall)

	names := make([]string, 0, len(v.health.Checks))
	for name := range v.health.Checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		check := v.health.Checks[name]
		style := styles.BadgeDown
		switch check.Status {
		case "healthy":
			style = styles.BadgeConnected
		case "degraded":
			style = styles.BadgeRetrying
		}
		writeField(&b, "  "+name, style.Render(check.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString("  " + styles.Muted.Render(fmt.Sprintf("%-14s", label)) + " " + value + "\n")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return styles.Muted.Render(fallback)
	}
	return s
}

func humanSince(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
