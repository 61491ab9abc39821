package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/logger"
)

// Default cadence values, overridable through configuration.
const (
	DefaultPollInterval         = 8000 * time.Millisecond
	DefaultNotificationCooldown = 3000 * time.Millisecond
)

// maskedCode is what appears in log lines in place of a real code.
const maskedCode = "******"

// PollerConfig carries the tunable cadence of the polling loop.
type PollerConfig struct {
	Interval             time.Duration
	NotificationCooldown time.Duration
	NotificationsEnabled bool
}

// Poller drives the periodic mailbox scan: list unread, fetch details,
// extract codes, dedup, auto copy, notify, record, persist. One cycle's
// failure never stops the loop.
type Poller struct {
	mail      driven.MailClient
	session   *Session
	clipboard *ClipboardManager
	notifier  driven.Notifier
	history   driven.HistoryStore
	cfg       PollerConfig

	// onCode, when set, is invoked after each newly recorded entry.
	onCode func(domain.CodeEntry)

	now func() time.Time
}

// NewPoller creates a polling loop over the given collaborators.
func NewPoller(mail driven.MailClient, session *Session, clipboard *ClipboardManager, notifier driven.Notifier, history driven.HistoryStore, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.NotificationCooldown <= 0 {
		cfg.NotificationCooldown = DefaultNotificationCooldown
	}
	return &Poller{
		mail:      mail,
		session:   session,
		clipboard: clipboard,
		notifier:  notifier,
		history:   history,
		cfg:       cfg,
		now:       time.Now,
	}
}

// OnCode registers a callback fired for every newly recorded code.
// Must be set before Run.
func (p *Poller) OnCode(fn func(domain.CodeEntry)) {
	p.onCode = fn
}

// Run blocks, scanning the mailbox every interval until ctx is
// cancelled. Only one loop may run per session; a second call returns
// domain.ErrPollingActive.
func (p *Poller) Run(ctx context.Context) error {
	if !p.session.BeginPolling() {
		return domain.ErrPollingActive
	}
	defer p.session.EndPolling()

	logger.Info("polling started", zap.Duration("interval", p.cfg.Interval))

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("polling stopped")
			return ctx.Err()
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

// cycle performs one scan. Settings are snapshotted up front so a
// preference change mid-cycle cannot produce a half-old half-new
// decision within the same batch.
func (p *Poller) cycle(ctx context.Context) {
	prefs := p.session.Preferences()
	clip := p.session.ClipboardConfig()

	ids, err := p.mail.ListRecentUnread(ctx)
	if err != nil {
		logger.Warn("message list failed", zap.Error(err))
		return
	}

	recorded := 0
	for _, id := range ids {
		if p.processMessage(ctx, id, prefs, clip) {
			recorded++
		}
	}

	// Every completed cycle persists, so history on disk tracks the
	// session window even across eviction-only cycles.
	p.history.Save(p.session.Codes())
	if recorded > 0 {
		logger.Debug("cycle complete", zap.Int("new_codes", recorded))
	}
}

// processMessage handles one message id and reports whether it yielded
// a newly recorded code. A fetch or parse failure skips only this
// message.
func (p *Poller) processMessage(ctx context.Context, id string, prefs domain.Preferences, clip domain.ClipboardConfig) bool {
	msg, err := p.mail.FetchDetail(ctx, id)
	if err != nil {
		logger.Warn("message fetch failed", zap.String("msg", hashID(id)), zap.Error(err))
		return false
	}

	code, ok := ExtractOTP(msg.SearchableText())
	if !ok {
		return false
	}

	if p.session.Seen(domain.DedupKey(msg.ID, code)) {
		return false
	}

	provider := ExtractProvider(msg.From)
	sender := ExtractSenderName(msg.From)
	entry := domain.CodeEntry{
		Code:      code,
		Sender:    sender,
		Provider:  provider,
		Timestamp: p.now().UnixMilli(),
		MessageID: msg.ID,
	}

	// Side effects run before Record, with no session locks held. The
	// copy and the notification are independent decisions: a provider
	// opted out of auto copy still gets its arrival announced.
	if prefs.ShouldAutoCopy(provider) {
		timeout := time.Duration(clip.TimeoutSeconds) * time.Second
		if err := p.clipboard.CopyWithExpiry(code, timeout); err != nil {
			logger.Warn("auto copy failed", zap.String("msg", hashID(msg.ID)), zap.Error(err))
		} else {
			logger.Info("code copied",
				zap.String("code", maskedCode),
				zap.String("provider", provider),
				zap.String("msg", hashID(msg.ID)))
		}
	}
	p.maybeNotify(sender)

	if !p.session.Record(entry) {
		return false
	}
	if p.onCode != nil {
		p.onCode(entry)
	}
	return true
}

// maybeNotify posts the new-code notification unless disabled or
// inside the cooldown window.
func (p *Poller) maybeNotify(sender string) {
	if !p.cfg.NotificationsEnabled {
		return
	}
	if !p.session.AllowNotification(p.now(), p.cfg.NotificationCooldown) {
		return
	}
	if err := p.notifier.Notify("OTP Copied", "Code from "+sender); err != nil {
		logger.Warn("notification failed", zap.Error(err))
	}
}

// hashID returns a short stable digest of a message id for log lines.
// Raw ids never appear in logs.
func hashID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])[:12]
}
