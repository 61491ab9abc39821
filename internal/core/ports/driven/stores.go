package driven

import "github.com/tanRdev/otpbar/internal/core/domain"

// HistoryStore persists the code history as a flat JSON file.
// Load degrades to an empty list on a missing or corrupt file; Save
// bounds the stored list to domain.MaxHistorySize.
type HistoryStore interface {
	Load() []domain.CodeEntry
	Save(entries []domain.CodeEntry)

	// Path returns the location of the history file, for the privacy
	// summary.
	Path() string
}

// PreferencesStore persists the auto-copy policy as a flat JSON file.
// Load degrades to domain.DefaultPreferences on a missing or corrupt
// file.
type PreferencesStore interface {
	Load() domain.Preferences
	Save(prefs domain.Preferences)
}
