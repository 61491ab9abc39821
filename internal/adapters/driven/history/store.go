// Package history persists the code history and the auto-copy policy
// as flat JSON files under the user config directory. Reads degrade to
// defaults on a missing or corrupt file so a damaged disk state can
// never keep the engine from starting.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/logger"
)

const (
	historyFile     = "code_history.json"
	preferencesFile = "preferences.json"
)

var (
	_ driven.HistoryStore     = (*Store)(nil)
	_ driven.PreferencesStore = (*PrefsStore)(nil)
)

// Store persists code history to a single bounded JSON file.
type Store struct {
	path string
}

// NewStore creates a history store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, historyFile)}
}

// Load reads the persisted history. Missing or unreadable state yields
// an empty list.
func (s *Store) Load() []domain.CodeEntry {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var entries []domain.CodeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn("history file corrupt, starting empty", zap.String("path", s.path))
		return nil
	}
	if len(entries) > domain.MaxHistorySize {
		entries = entries[:domain.MaxHistorySize]
	}
	return entries
}

// Save writes the history, truncated to the retention bound, newest
// first. A write failure is logged and swallowed; persistence is best
// effort.
func (s *Store) Save(entries []domain.CodeEntry) {
	if len(entries) > domain.MaxHistorySize {
		entries = entries[:domain.MaxHistorySize]
	}
	if entries == nil {
		entries = []domain.CodeEntry{}
	}

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		logger.Warn("history encode failed", zap.Error(err))
		return
	}
	if err := writeFileAtomic(s.path, raw); err != nil {
		logger.Warn("history write failed", zap.String("path", s.path), zap.Error(err))
	}
}

// Path returns the location of the history file.
func (s *Store) Path() string {
	return s.path
}

// PrefsStore persists the auto-copy policy to a JSON file.
type PrefsStore struct {
	path string
}

// NewPrefsStore creates a preferences store rooted at dir.
func NewPrefsStore(dir string) *PrefsStore {
	return &PrefsStore{path: filepath.Join(dir, preferencesFile)}
}

// Load reads the persisted policy, degrading to defaults on a missing
// or corrupt file.
func (p *PrefsStore) Load() domain.Preferences {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return domain.DefaultPreferences()
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		logger.Warn("preferences file corrupt, using defaults", zap.String("path", p.path))
		return domain.DefaultPreferences()
	}
	if prefs.ProviderAutoCopy == nil {
		prefs.ProviderAutoCopy = make(map[string]bool)
	}
	return prefs
}

// Save writes the policy, best effort.
func (p *PrefsStore) Save(prefs domain.Preferences) {
	raw, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		logger.Warn("preferences encode failed", zap.Error(err))
		return
	}
	if err := writeFileAtomic(p.path, raw); err != nil {
		logger.Warn("preferences write failed", zap.String("path", p.path), zap.Error(err))
	}
}

// writeFileAtomic writes via a temp file and rename so a crash cannot
// leave a half-written file behind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
