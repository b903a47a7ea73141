package views

import (
	"fmt"
	"strings"

	"github.com/modwatch/modwatch/internal/models"
	"github.com/modwatch/modwatch/internal/ui/styles"
)

// TrendView renders the 24-hour token consumption trend as bars
type TrendView struct {
	width  int
	height int
	trend  *models.TokenTrendStats
}

// NewTrendView creates a new trend view
func NewTrendView() *TrendView {
	return &TrendView{}
}

// SetSize sets the view dimensions
func (v *TrendView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetTrend updates the trend data
func (v *TrendView) SetTrend(trend *models.TokenTrendStats) {
	v.trend = trend
}

// View renders the trend view
func (v *TrendView) View() string {
	if v.trend == nil {
		return styles.Muted.Render("  token trend not fetched")
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(
		fmt.Sprintf("Token Trend (24h, total %d)", v.trend.TotalTokens)) + "\n")

	maxTokens := 0
	for _, p := range v.trend.Trend {
		if p.Tokens > maxTokens {
			maxTokens = p.Tokens
		}
	}
	if maxTokens == 0 {
		b.WriteString(styles.Muted.Render("  no token usage in the last 24 hours"))
		return b.String()
	}

	barWidth := v.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	for _, p := range v.trend.Trend {
		n := p.Tokens * barWidth / maxTokens
		bar := strings.Repeat("█", n)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styles.TrendLabel.Render(p.Hour),
			styles.TrendBar.Render(bar),
			styles.TrendLabel.Render(fmt.Sprintf("%d", p.Tokens)),
		))
	}
	return strings.TrimRight(b.String(), "\n")
}
