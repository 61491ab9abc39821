package driving

import (
	"context"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// Commands is the surface the UI shell calls. Every method is a thin
// call against shared session state; none contains engine logic.
type Commands interface {
	// Run is the engine main loop: restore or acquire authentication,
	// then poll until ctx is cancelled.
	Run(ctx context.Context) error

	// Codes returns the bounded in-memory code list, newest first.
	Codes() []domain.CodeEntry

	// AuthStatus reports whether the mailbox is authenticated.
	AuthStatus() bool

	// StartAuth runs one interactive authorization attempt to
	// completion. A second call while one is pending is rejected.
	StartAuth(ctx context.Context) error

	// CopyCode writes a code to the clipboard without a timed clear.
	CopyCode(code string) error

	// CopyCodeWithExpiry writes a code to the clipboard and schedules
	// a clear after the configured timeout.
	CopyCodeWithExpiry(code string) error

	// Logout revokes stored credentials and clears history.
	Logout() error

	// ClipboardConfig returns the current timed-clear configuration.
	ClipboardConfig() domain.ClipboardConfig

	// SetClipboardTimeout updates the timed-clear duration.
	SetClipboardTimeout(seconds int)

	// Preferences returns the current auto-copy policy.
	Preferences() domain.Preferences

	// SetAutoCopyEnabled toggles the global auto-copy flag.
	SetAutoCopyEnabled(enabled bool)

	// SetProviderAutoCopy sets a per-provider auto-copy override.
	SetProviderAutoCopy(provider string, enabled bool)

	// PrivacyData returns the privacy and data-location summary.
	PrivacyData() domain.PrivacyData

	// ClearHistory wipes the in-memory and persisted code history.
	ClearHistory()
}
