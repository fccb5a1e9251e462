package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Prefs holds persistent user preferences
type Prefs struct {
	DefaultDataDir string `json:"default_data_dir,omitempty"` // Data directory to load on startup
	LoadCount      int64  `json:"load_count"`
}

// Manager handles loading and saving preferences
type Manager struct {
	path         string
	prefs        Prefs
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
}

// NewManager creates a new preferences manager
func NewManager() *Manager {
	return &Manager{
		path:         defaultPath(),
		saveDuration: 2 * time.Second, // Debounce saves
	}
}

// defaultPath returns the default preferences file path
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".corpusmap-prefs.json"
	}
	return filepath.Join(home, ".corpusmap", "prefs.json")
}

// Load loads preferences from disk
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			// No prefs file yet, start fresh
			m.prefs = Prefs{}
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &m.prefs)
}

// Save saves preferences to disk immediately
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saveLocked()
}

// saveLocked saves prefs without acquiring the lock (caller must hold lock)
func (m *Manager) saveLocked() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.prefs, "", "  ")
	if err != nil {
		return err
	}

	m.dirty = false
	return os.WriteFile(m.path, data, 0644)
}

// DefaultDataDir returns the saved data directory
func (m *Manager) DefaultDataDir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs.DefaultDataDir
}

// LoadCount returns the number of dataset loads across all sessions
func (m *Manager) LoadCount() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs.LoadCount
}

// SetDefaultDataDir records the data directory and schedules a debounced save
func (m *Manager) SetDefaultDataDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.prefs.DefaultDataDir == dir {
		return
	}

	m.prefs.DefaultDataDir = dir
	m.dirty = true
	m.scheduleSaveLocked()
}

// AddLoad increments the lifetime load counter and schedules a debounced save
func (m *Manager) AddLoad() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefs.LoadCount++
	m.dirty = true
	m.scheduleSaveLocked()
}

func (m *Manager) scheduleSaveLocked() {
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(m.saveDuration, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.dirty {
			_ = m.saveLocked() // Ignore errors for background save
		}
	})
}

// Close ensures any pending saves are written
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveTimer != nil {
		m.saveTimer.Stop()
		m.saveTimer = nil
	}

	if m.dirty {
		return m.saveLocked()
	}
	return nil
}
