package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/core/ports/driving"
	"github.com/tanRdev/otpbar/internal/logger"
)

// Ensure App satisfies the driving surface.
var _ driving.Commands = (*App)(nil)

// App is the composition of the engine services behind the driving
// Commands surface. It owns nothing itself; every method delegates to
// the session, token manager, authenticator, clipboard, or stores.
type App struct {
	tokens    *TokenManager
	auth      *Authenticator
	session   *Session
	clipboard *ClipboardManager
	poller    *Poller

	history driven.HistoryStore
	prefs   driven.PreferencesStore

	configPath string
}

// NewApp wires the engine services together.
func NewApp(tokens *TokenManager, auth *Authenticator, session *Session, clipboard *ClipboardManager, poller *Poller, history driven.HistoryStore, prefs driven.PreferencesStore, configPath string) *App {
	return &App{
		tokens:     tokens,
		auth:       auth,
		session:    session,
		clipboard:  clipboard,
		poller:     poller,
		history:    history,
		prefs:      prefs,
		configPath: configPath,
	}
}

// Run is the engine main loop: restore or acquire authentication, then
// poll until ctx is cancelled. Pending clipboard timers are cancelled
// and the clipboard wiped on the way out.
func (a *App) Run(ctx context.Context) error {
	defer a.clipboard.CancelAll()

	if !a.tokens.TryRestoreAuth(ctx) {
		logger.Info("no stored session, starting authorization")
		if err := a.auth.StartAuth(ctx); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	err := a.poller.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// Codes returns the bounded in-memory code list, newest first.
func (a *App) Codes() []domain.CodeEntry {
	return a.session.Codes()
}

// AuthStatus reports whether the mailbox is authenticated, attempting
// a vault restore first so a fresh process answers correctly.
func (a *App) AuthStatus() bool {
	if a.tokens.IsAuthenticated() {
		return true
	}
	return a.tokens.TryRestoreAuth(context.Background())
}

// StartAuth runs one interactive authorization attempt to completion.
func (a *App) StartAuth(ctx context.Context) error {
	return a.auth.StartAuth(ctx)
}

// CopyCode writes a code to the clipboard without a timed clear.
func (a *App) CopyCode(code string) error {
	return a.clipboard.Copy(code)
}

// CopyCodeWithExpiry writes a code to the clipboard and schedules a
// clear after the configured timeout.
func (a *App) CopyCodeWithExpiry(code string) error {
	clip := a.session.ClipboardConfig()
	return a.clipboard.CopyWithExpiry(code, time.Duration(clip.TimeoutSeconds)*time.Second)
}

// Logout revokes stored credentials, clears the code history, and
// wipes any pending clipboard content.
func (a *App) Logout() error {
	a.tokens.Clear()
	a.session.ClearCodes()
	a.history.Save(nil)
	a.clipboard.CancelAll()
	logger.Info("logged out")
	return nil
}

// ClipboardConfig returns the current timed-clear configuration.
func (a *App) ClipboardConfig() domain.ClipboardConfig {
	return a.session.ClipboardConfig()
}

// SetClipboardTimeout updates the timed-clear duration.
func (a *App) SetClipboardTimeout(seconds int) {
	a.session.SetClipboardConfig(domain.ClipboardConfig{TimeoutSeconds: seconds})
}

// Preferences returns the current auto-copy policy.
func (a *App) Preferences() domain.Preferences {
	return a.session.Preferences()
}

// SetAutoCopyEnabled toggles the global auto-copy flag and persists the
// updated policy.
func (a *App) SetAutoCopyEnabled(enabled bool) {
	prefs := a.session.Preferences()
	prefs.AutoCopyEnabled = enabled
	a.session.SetPreferences(prefs)
	a.prefs.Save(prefs)
}

// SetProviderAutoCopy sets a per-provider auto-copy override and
// persists the updated policy.
func (a *App) SetProviderAutoCopy(provider string, enabled bool) {
	prefs := a.session.Preferences()
	if prefs.ProviderAutoCopy == nil {
		prefs.ProviderAutoCopy = make(map[string]bool)
	}
	prefs.ProviderAutoCopy[provider] = enabled
	a.session.SetPreferences(prefs)
	a.prefs.Save(prefs)
}

// PrivacyData returns the privacy and data-location summary built from
// the persisted history and the vault.
func (a *App) PrivacyData() domain.PrivacyData {
	return BuildPrivacyData(a.history.Load(), a.tokens.secrets, a.configPath, a.history.Path())
}

// ClearHistory wipes the in-memory window and the persisted history.
func (a *App) ClearHistory() {
	a.session.ClearCodes()
	a.history.Save(nil)
}
