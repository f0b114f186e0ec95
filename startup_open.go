package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/config"
	"github.com/olivier-w/folio/internal/content"
	"github.com/olivier-w/folio/internal/ui"
)

func loadPortfolioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		model, reduced, err := buildPortfolioModel(path)
		return startupResolvedMsg{model: model, reduced: reduced, err: err}
	}
}

// buildPortfolioModel loads configuration and page content and returns the
// page model, and whether the intro animation should be skipped.
func buildPortfolioModel(path string) (ui.Model, bool, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return ui.Model{}, false, fmt.Errorf("loading config: %w", err)
	}
	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	log.Printf("config: %s (fps %d, reduced motion %t)", source, cfg.Motion.FPS, cfg.Motion.Reduced)

	page, err := content.Load()
	if err != nil {
		return ui.Model{}, false, fmt.Errorf("loading content: %w", err)
	}
	log.Printf("content: %d sections, %d experience entries, %d skills",
		len(page.Nav), len(page.Experience), len(page.Skills))

	return ui.New(cfg, page), cfg.Motion.Reduced, nil
}
