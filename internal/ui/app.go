package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/modwatch/modwatch/internal/api"
	"github.com/modwatch/modwatch/internal/config"
	"github.com/modwatch/modwatch/internal/models"
	"github.com/modwatch/modwatch/internal/monitor"
	"github.com/modwatch/modwatch/internal/state"
	"github.com/modwatch/modwatch/internal/ui/keys"
	"github.com/modwatch/modwatch/internal/ui/styles"
	"github.com/modwatch/modwatch/internal/ui/views"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeHelp
	ModeSearch
)

// Tab represents the available tabs
type Tab int

const (
	TabOverview Tab = iota
	TabEvents
	TabTrend
)

func (t Tab) String() string {
	names := []string{"Overview", "Events", "Trend"}
	if int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// HealthMsg is sent when a readiness fetch completes
type HealthMsg struct {
	Report *models.HealthReport
	Err    error
}

// TrendMsg is sent when a token-trend fetch completes
type TrendMsg struct {
	Trend *models.TokenTrendStats
	Err   error
}

// RefreshTickMsg triggers periodic REST refresh
type RefreshTickMsg struct{}

// App is the main application model
type App struct {
	// Configuration
	config *config.Config

	// UI state
	mode      AppMode
	activeTab Tab
	width     int
	height    int

	// Keys
	keys keys.KeyMap

	// Sub-models
	searchInput textinput.Model
	overview    *views.OverviewView
	eventsView  *views.EventsView
	trendView   *views.TrendView

	// Data sources
	source monitor.Source
	rest   *api.Client // nil in mock mode

	// Current data
	snapshot monitor.Snapshot
	health   *models.HealthReport
	trend    *models.TokenTrendStats
	restErr  string
}

// NewApp creates a new application instance. rest may be nil (mock mode).
func NewApp(cfg *config.Config, uiState *state.State, source monitor.Source, rest *api.Client) *App {
	ti := textinput.New()
	ti.Placeholder = "Filter events..."
	ti.CharLimit = 100

	eventsView := views.NewEventsView(80, 20)
	eventsView.SetFollow(uiState.EventFollow)
	if uiState.EventFilter != "" {
		eventsView.SetFilter(uiState.EventFilter)
	}

	return &App{
		config:      cfg,
		mode:        ModeNormal,
		activeTab:   Tab(uiState.ActiveTab),
		keys:        keys.DefaultKeyMap(),
		searchInput: ti,
		overview:    views.NewOverviewView(),
		eventsView:  eventsView,
		trendView:   views.NewTrendView(),
		source:      source,
		rest:        rest,
	}
}

// GetState returns the current UI state for persistence
func (a *App) GetState() *state.State {
	return &state.State{
		ActiveTab:    int(a.activeTab),
		EventFilter:  a.eventsView.Filter(),
		EventFollow:  a.eventsView.IsFollowing(),
		WindowWidth:  a.width,
		WindowHeight: a.height,
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.connectStream(),
		a.waitForStream(),
		a.scheduleRefresh(),
	}
	if cmd := a.fetchHealth(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := a.fetchTrend(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) connectStream() tea.Cmd {
	src := a.source
	return func() tea.Msg {
		src.Connect()
		return monitor.SnapshotMsg{Snapshot: src.Snapshot()}
	}
}

func (a *App) waitForStream() tea.Cmd {
	src := a.source
	return func() tea.Msg {
		<-src.Updates()
		return monitor.SnapshotMsg{Snapshot: src.Snapshot()}
	}
}

func (a *App) fetchHealth() tea.Cmd {
	rest := a.rest
	if rest == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		report, err := rest.Readiness(ctx)
		return HealthMsg{Report: report, Err: err}
	}
}

func (a *App) fetchTrend() tea.Cmd {
	rest := a.rest
	if rest == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		trend, err := rest.TokenTrend(ctx)
		return TrendMsg{Trend: trend, Err: err}
	}
}

func (a *App) scheduleRefresh() tea.Cmd {
	interval := time.Duration(a.config.UI.RefreshMs) * time.Millisecond
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RefreshTickMsg{}
	})
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeViews()

	case tea.KeyMsg:
		if a.mode == ModeHelp {
			if key.Matches(msg, a.keys.Escape) || key.Matches(msg, a.keys.Help) || msg.String() == "q" {
				a.mode = ModeNormal
			}
			return a, nil
		}

		if a.mode == ModeSearch {
			if key.Matches(msg, a.keys.Escape) {
				a.mode = ModeNormal
				a.searchInput.Reset()
				a.eventsView.ClearFilter()
				return a, nil
			}
			if key.Matches(msg, a.keys.Enter) {
				a.mode = ModeNormal
				a.eventsView.SetFilter(a.searchInput.Value())
				return a, nil
			}
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(msg)
			return a, cmd
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.mode = ModeHelp

		case key.Matches(msg, a.keys.Search):
			a.mode = ModeSearch
			a.activeTab = TabEvents
			a.searchInput.SetValue(a.eventsView.Filter())
			a.searchInput.Focus()
			return a, textinput.Blink

		case key.Matches(msg, a.keys.Tab1):
			a.activeTab = TabOverview
		case key.Matches(msg, a.keys.Tab2):
			a.activeTab = TabEvents
		case key.Matches(msg, a.keys.Tab3):
			a.activeTab = TabTrend
		case key.Matches(msg, a.keys.NextTab):
			a.activeTab = (a.activeTab + 1) % 3

		case key.Matches(msg, a.keys.ToggleFollow):
			a.eventsView.ToggleFollow()

		case key.Matches(msg, a.keys.Reconnect):
			src := a.source
			cmds = append(cmds, func() tea.Msg {
				src.Reconnect()
				return monitor.SnapshotMsg{Snapshot: src.Snapshot()}
			})
			if cmd := a.fetchHealth(); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case key.Matches(msg, a.keys.ClearHistory):
			a.source.ClearHistory()

		case key.Matches(msg, a.keys.ResetStats):
			a.source.ResetStats()

		case key.Matches(msg, a.keys.Home):
			if a.activeTab == TabEvents {
				a.eventsView.GotoTop()
			}

		case key.Matches(msg, a.keys.End):
			if a.activeTab == TabEvents {
				a.eventsView.GotoBottom()
			}

		default:
			if a.activeTab == TabEvents {
				cmds = append(cmds, a.eventsView.Update(msg))
			}
		}

	case monitor.SnapshotMsg:
		a.snapshot = msg.Snapshot
		a.eventsView.SetEvents(a.snapshot.Events)
		a.overview.SetData(a.snapshot, a.health)
		cmds = append(cmds, a.waitForStream())

	case HealthMsg:
		if msg.Err != nil {
			a.health = nil
			a.restErr = msg.Err.Error()
		} else {
			a.health = msg.Report
			a.restErr = ""
		}
		a.overview.SetData(a.snapshot, a.health)

	case TrendMsg:
		if msg.Err == nil {
			a.trend = msg.Trend
			a.trendView.SetTrend(a.trend)
		}

	case RefreshTickMsg:
		if cmd := a.fetchHealth(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := a.fetchTrend(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, a.scheduleRefresh())
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resizeViews() {
	contentWidth := a.width - 2
	contentHeight := a.height - 5
	if contentWidth < 10 {
		contentWidth = 10
	}
	if contentHeight < 3 {
		contentHeight = 3
	}
	a.eventsView.SetSize(contentWidth, contentHeight)
	a.overview.SetSize(contentWidth, contentHeight)
	a.trendView.SetSize(contentWidth, contentHeight)
	a.searchInput.Width = contentWidth - 4
}

// View implements tea.Model
func (a *App) View() string {
	if a.width == 0 {
		return "starting..."
	}

	if a.mode == ModeHelp {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderTabs(),
		a.renderContent(),
		a.renderBottomBar(),
	)
}

func (a *App) renderHeader() string {
	title := styles.TitleStyle.Render("modwatch")

	badge := styles.BadgeDown.Render("○ disconnected")
	if a.snapshot.Connected {
		badge = styles.BadgeConnected.Render("● connected")
	}

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + badge
}

func (a *App) renderTabs() string {
	var tabs []string
	for t := TabOverview; t <= TabTrend; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == a.activeTab {
			tabs = append(tabs, styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderContent() string {
	var content string
	switch a.activeTab {
	case TabOverview:
		content = a.overview.View()
		if a.restErr != "" {
			content += "\n" + styles.Muted.Render("  rest: "+a.restErr)
		}
	case TabEvents:
		content = a.eventsView.View()
	case TabTrend:
		content = a.trendView.View()
	}

	height := a.height - 5
	if height < 3 {
		height = 3
	}
	return styles.PaneBorder.Width(a.width - 2).Height(height).Render(content)
}

func (a *App) renderBottomBar() string {
	if a.mode == ModeSearch {
		return styles.InputPrompt.Render("/") + a.searchInput.View()
	}

	hints := []string{
		styles.HintKey.Render("?") + styles.HintDesc.Render(" help"),
		styles.HintKey.Render("1-3") + styles.HintDesc.Render(" tabs"),
		styles.HintKey.Render("r") + styles.HintDesc.Render(" reconnect"),
		styles.HintKey.Render("c") + styles.HintDesc.Render(" clear"),
		styles.HintKey.Render("x") + styles.HintDesc.Render(" reset stats"),
		styles.HintKey.Render("q") + styles.HintDesc.Render(" quit"),
	}
	if a.eventsView.Filter() != "" {
		hints = append(hints, styles.HintDesc.Render("filter: ")+styles.HintKey.Render(a.eventsView.Filter()))
	}
	return styles.BottomBar.Width(a.width).Render(strings.Join(hints, "  "))
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.HelpTitle.Render("modwatch keys") + "\n")
	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(fmt.Sprintf("  %-12s %s\n",
				styles.HintKey.Render(binding.Help().Key),
				styles.HintDesc.Render(binding.Help().Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render("esc to close"))
	return styles.HelpOverlay.Render(b.String())
}
