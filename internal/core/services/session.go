package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// Session holds the live engine state: the recent code window, the
// dedup set, preferences, clipboard config, the notification cooldown
// mark, and the polling guard. Each concern has its own lock so a slow
// reader of one cannot stall the others.
type Session struct {
	codesMu   sync.Mutex
	codes     []domain.CodeEntry
	processed map[string]struct{}

	prefsMu sync.Mutex
	prefs   domain.Preferences

	clipMu sync.Mutex
	clip   domain.ClipboardConfig

	notifMu          sync.Mutex
	lastNotification time.Time

	polling atomic.Bool
}

// NewSession creates a session seeded with the given preferences and
// clipboard config, typically the persisted values loaded at startup.
func NewSession(prefs domain.Preferences, clip domain.ClipboardConfig) *Session {
	return &Session{
		processed: make(map[string]struct{}),
		prefs:     prefs,
		clip:      clip,
	}
}

// Seen reports whether a (message id, code) pair was already recorded.
func (s *Session) Seen(key string) bool {
	s.codesMu.Lock()
	defer s.codesMu.Unlock()
	_, ok := s.processed[key]
	return ok
}

// Record inserts a new entry at the head of the recent window and marks
// its dedup key. When the window overflows, the oldest entry is evicted
// and its dedup key released, so a later re-delivery of that message is
// treated as new. Returns false when the key was already recorded.
func (s *Session) Record(entry domain.CodeEntry) bool {
	s.codesMu.Lock()
	defer s.codesMu.Unlock()

	key := entry.DedupKey()
	if _, ok := s.processed[key]; ok {
		return false
	}
	s.processed[key] = struct{}{}

	s.codes = append([]domain.CodeEntry{entry}, s.codes...)
	for len(s.codes) > domain.MaxRecentCodes {
		evicted := s.codes[len(s.codes)-1]
		s.codes = s.codes[:len(s.codes)-1]
		delete(s.processed, evicted.DedupKey())
	}
	return true
}

// Codes returns a snapshot of the recent window, newest first.
func (s *Session) Codes() []domain.CodeEntry {
	s.codesMu.Lock()
	defer s.codesMu.Unlock()
	out := make([]domain.CodeEntry, len(s.codes))
	copy(out, s.codes)
	return out
}

// ClearCodes empties the recent window and the dedup set.
func (s *Session) ClearCodes() {
	s.codesMu.Lock()
	defer s.codesMu.Unlock()
	s.codes = nil
	s.processed = make(map[string]struct{})
}

// Preferences returns a deep copy of the current preferences.
func (s *Session) Preferences() domain.Preferences {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()
	return copyPreferences(s.prefs)
}

// SetPreferences replaces the current preferences.
func (s *Session) SetPreferences(prefs domain.Preferences) {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()
	s.prefs = copyPreferences(prefs)
}

// ClipboardConfig returns the current clipboard config.
func (s *Session) ClipboardConfig() domain.ClipboardConfig {
	s.clipMu.Lock()
	defer s.clipMu.Unlock()
	return s.clip
}

// SetClipboardConfig replaces the clipboard config.
func (s *Session) SetClipboardConfig(clip domain.ClipboardConfig) {
	s.clipMu.Lock()
	defer s.clipMu.Unlock()
	s.clip = clip
}

// AllowNotification checks the cooldown and, when the window has
// passed, marks now as the latest notification time. Check and mark are
// one atomic step so concurrent cycles cannot both pass.
func (s *Session) AllowNotification(now time.Time, cooldown time.Duration) bool {
	s.notifMu.Lock()
	defer s.notifMu.Unlock()
	if !s.lastNotification.IsZero() && now.Sub(s.lastNotification) < cooldown {
		return false
	}
	s.lastNotification = now
	return true
}

// BeginPolling claims the single-poller guard. Returns false when a
// polling loop is already active.
func (s *Session) BeginPolling() bool {
	return s.polling.CompareAndSwap(false, true)
}

// EndPolling releases the polling guard.
func (s *Session) EndPolling() {
	s.polling.Store(false)
}

// Polling reports whether a polling loop is active.
func (s *Session) Polling() bool {
	return s.polling.Load()
}

func copyPreferences(p domain.Preferences) domain.Preferences {
	out := domain.Preferences{
		AutoCopyEnabled:  p.AutoCopyEnabled,
		ProviderAutoCopy: make(map[string]bool, len(p.ProviderAutoCopy)),
	}
	for k, v := range p.ProviderAutoCopy {
		out.ProviderAutoCopy[k] = v
	}
	return out
}
