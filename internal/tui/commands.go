package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/service"
)

// loadIndex fetches a snapshot in the background.
func loadIndex(ctx context.Context, source service.IndexSource) tea.Cmd {
	return func() tea.Msg {
		index, err := source.GetLocationIndex(ctx)
		return indexLoadedMsg{index: index, err: err, loadedAt: time.Now()}
	}
}
