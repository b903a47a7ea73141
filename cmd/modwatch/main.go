package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/modwatch/modwatch/internal/api"
	"github.com/modwatch/modwatch/internal/config"
	"github.com/modwatch/modwatch/internal/logger"
	"github.com/modwatch/modwatch/internal/monitor"
	"github.com/modwatch/modwatch/internal/state"
	"github.com/modwatch/modwatch/internal/ui"
)

func main() {
	// Parse flags
	mockMode := flag.Bool("mock", false, "Run in mock mode (simulated data for UI testing)")
	backendURL := flag.String("backend", "", "Backend base URL (overrides config)")
	flag.Parse()

	// Load or create configuration
	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
	}

	log := logger.New(cfg.Log.Level)

	// Load UI state
	uiState, _ := state.Load() // Ignore error, use defaults

	// Build the stream source and REST client
	var source monitor.Source
	var rest *api.Client
	if *mockMode {
		source = monitor.NewMock()
	} else {
		endpoint := cfg.Backend.MonitorURL
		if endpoint == "" {
			endpoint = monitor.EndpointFromBase(cfg.Backend.BaseURL)
		}
		source = monitor.NewClient(endpoint, log)
		rest = api.NewClient(cfg.Backend.BaseURL)
	}
	defer func() { _ = source.Close() }()

	// Initialize the TUI application
	app := ui.NewApp(cfg, uiState, source, rest)

	// Run the Bubble Tea program
	p := tea.NewProgram(app, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running modwatch: %v\n", err)
		os.Exit(1)
	}

	// Save state on exit
	if finalApp, ok := finalModel.(*ui.App); ok {
		if saveState := finalApp.GetState(); saveState != nil {
			_ = state.Save(saveState) // Best effort save
		}
	}
}
