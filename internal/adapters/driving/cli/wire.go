package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/tanRdev/otpbar/internal/adapters/driven/clipboard"
	"github.com/tanRdev/otpbar/internal/adapters/driven/history"
	"github.com/tanRdev/otpbar/internal/adapters/driven/notify"
	"github.com/tanRdev/otpbar/internal/adapters/driven/secrets"
	"github.com/tanRdev/otpbar/internal/adapters/driving/oauth"
	"github.com/tanRdev/otpbar/internal/config"
	"github.com/tanRdev/otpbar/internal/connectors/google"
	"github.com/tanRdev/otpbar/internal/connectors/google/gmail"
	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/services"
	"github.com/tanRdev/otpbar/internal/logger"
)

// bootstrap is the composition root: it loads configuration and wires
// every adapter into the engine services. Idempotent so tests can call
// it through different entry commands.
func bootstrap() error {
	if app != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	secretStore, err := secrets.Open(dir)
	if err != nil {
		return fmt.Errorf("open secret vault: %w", err)
	}

	tokens := services.NewTokenManager(cfg.GoogleClientID, cfg.GoogleClientSecret, secretStore, google.Verifier{})
	authenticator := services.NewAuthenticator(tokens, oauth.Browser{}, oauth.NewListener)

	historyStore := history.NewStore(dir)
	prefsStore := history.NewPrefsStore(dir)

	session := services.NewSession(
		prefsStore.Load(),
		domain.ClipboardConfig{TimeoutSeconds: cfg.Clipboard.TimeoutSeconds},
	)
	// Seed the recent window from disk, oldest first so Record keeps
	// newest-first order.
	persisted := historyStore.Load()
	for i := len(persisted) - 1; i >= 0; i-- {
		session.Record(persisted[i])
	}

	clipManager := services.NewClipboardManager(clipboard.System{})

	ctx := context.Background()
	gmailSvc, err := google.NewGmailService(ctx, google.NewTokenSource(ctx, tokens))
	if err != nil {
		return fmt.Errorf("create gmail service: %w", err)
	}

	poller := services.NewPoller(
		gmail.NewClient(gmailSvc),
		session,
		clipManager,
		notify.Desktop{},
		historyStore,
		services.PollerConfig{
			Interval:             time.Duration(cfg.Polling.IntervalMs) * time.Millisecond,
			NotificationCooldown: time.Duration(cfg.Polling.NotificationCooldownMs) * time.Millisecond,
			NotificationsEnabled: cfg.Polling.NotificationsEnabled,
		},
	)

	app = services.NewApp(tokens, authenticator, session, clipManager, poller, historyStore, prefsStore, dir)
	return nil
}
