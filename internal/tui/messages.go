package tui

import (
	"time"

	"github.com/harshsu7/Arya-Honda-Dashboard-Monthly-Reviews/internal/model"
)

// indexLoadedMsg carries a fresh snapshot from the index source.
type indexLoadedMsg struct {
	loadedAt time.Time
	err      error
	index    *model.LocationIndex
}
