package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mark3labs/secconsole/internal/logger"
)

const fileName = "ui-state.json"

// UIState holds console preferences that carry across runs.
type UIState struct {
	// Locations maps a page name to its last location, query string included.
	Locations map[string]string `json:"locations"`
}

// DefaultUIState returns an empty UI state.
func DefaultUIState() *UIState {
	return &UIState{
		Locations: make(map[string]string),
	}
}

// Pages returns the page names with a stored location, sorted.
func (s *UIState) Pages() []string {
	pages := make([]string, 0, len(s.Locations))
	for p := range s.Locations {
		pages = append(pages, p)
	}
	sort.Strings(pages)
	return pages
}

// Load reads the UI state from <dataDir>/ui-state.json.
// Returns default state if the file doesn't exist or on error.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, fileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultUIState()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read UI state file: %v", err)
		return DefaultUIState()
	}

	var state UIState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}
	if state.Locations == nil {
		state.Locations = make(map[string]string)
	}

	return &state
}

// Save writes the UI state to <dataDir>/ui-state.json.
// Creates the data directory if it doesn't exist.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, fileName)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
