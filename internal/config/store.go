package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds user-configurable connection defaults and preset aliases.
type Settings struct {
	Host           string         `json:"host"`
	Port           int            `json:"port"`
	TimeoutSeconds float64        `json:"timeoutSeconds"`
	SerialDevice   string         `json:"serialDevice"` // non-empty selects the serial transport
	BaudRate       int            `json:"baudRate"`
	Presets        map[string]int `json:"presets"` // alias -> camera preset slot
}

// DefaultSettings returns the default connection settings.
func DefaultSettings() Settings {
	return Settings{
		Port:           5678,
		TimeoutSeconds: 2,
		Presets:        map[string]int{},
	}
}

// Store provides thread-safe settings persistence backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// NewStore creates a Store that persists settings to dataDir/settings.json.
// If the file does not exist or is invalid, default settings are used.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Join(dataDir, "settings.json"),
		settings: DefaultSettings(),
	}
	s.load()
	return s, nil
}

// NewMemoryStore creates a Store that keeps settings in memory only (no file persistence).
func NewMemoryStore() *Store {
	return &Store{settings: DefaultSettings()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update replaces the settings and persists to disk.
func (s *Store) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save()
}

// SetPreset stores a named alias for a camera preset slot and persists.
func (s *Store) SetPreset(name string, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings.Presets == nil {
		s.settings.Presets = map[string]int{}
	}
	s.settings.Presets[name] = slot
	return s.save()
}

// Preset resolves a named alias to its camera preset slot.
func (s *Store) Preset(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.settings.Presets[name]
	return slot, ok
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // file missing is OK, use defaults
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("invalid settings file, using defaults", "path", s.path, "err", err)
		return
	}
	if settings.Presets == nil {
		settings.Presets = map[string]int{}
	}
	s.settings = settings
}

func (s *Store) save() error {
	if s.path == "" {
		return nil // memory-only mode
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
