// Package app provides the demo application's state, theme and developer
// tooling.
package app

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"pixelpick/pkg/colorutil"
)

const (
	paletteFile = "palette.json"

	// maxHistory caps the picked-color history.
	maxHistory = 16
)

// State holds the demo application's state: the loaded source image and the
// history of picked colors.
type State struct {
	mu sync.RWMutex

	sourcePath string
	img        image.Image

	history  []colorutil.Color
	modified bool
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{}
}

// SetImage replaces the loaded source image.
func (s *State) SetImage(path string, img image.Image) {
	s.mu.Lock()
	s.sourcePath = path
	s.img = img
	s.mu.Unlock()
}

// Image returns the loaded source image, or nil.
func (s *State) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// SourcePath returns the path of the loaded source image.
func (s *State) SourcePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourcePath
}

// AddPick prepends a picked color to the history, newest first.
func (s *State) AddPick(c colorutil.Color) {
	s.mu.Lock()
	s.history = append([]colorutil.Color{c}, s.history...)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
	s.modified = true
	s.mu.Unlock()
}

// History returns a copy of the picked-color history, newest first.
func (s *State) History() []colorutil.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]colorutil.Color, len(s.history))
	copy(out, s.history)
	return out
}

// Modified reports whether the history changed since the last save.
func (s *State) Modified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modified
}

// PalettePath returns the default on-disk location of the palette file.
func PalettePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "pixelpick", paletteFile)
}

// SavePalette writes the pick history as a JSON list of hex strings.
func (s *State) SavePalette(path string) error {
	s.mu.Lock()
	hexes := make([]string, len(s.history))
	for i, c := range s.history {
		hexes[i] = c.Hex()
	}
	s.modified = false
	s.mu.Unlock()

	data, err := json.MarshalIndent(hexes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadPalette restores the pick history from disk. A missing file leaves the
// history empty.
func (s *State) LoadPalette(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var hexes []string
	if err := json.Unmarshal(data, &hexes); err != nil {
		return fmt.Errorf("failed to decode palette: %w", err)
	}

	history := make([]colorutil.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorutil.ParseHex(h)
		if err != nil {
			continue // skip entries written by hand
		}
		history = append(history, c)
	}

	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	return nil
}
