package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/logger"
)

// CandidatePorts is the ordered list of loopback ports tried for the
// redirect listener. The first that binds wins.
var CandidatePorts = []int{8234, 8235, 8236, 8237, 8238, 8239, 8240}

// AuthWaitTimeout is the hard ceiling on waiting for the redirect to
// deliver an authorization code.
const AuthWaitTimeout = 300 * time.Second

// RedirectListener is one ephemeral loopback responder for a single
// authorization attempt. Implemented by the oauth driving adapter.
type RedirectListener interface {
	// Start binds the loopback listener. A bind failure is returned to
	// the caller, not retried.
	Start() error

	// WaitForCode blocks until the redirect delivers a code, the
	// attempt fails, or the timeout elapses (domain.ErrTimeout).
	WaitForCode(timeout time.Duration) (string, error)

	// Stop tears the listener down. Safe to call more than once.
	Stop() error

	// RedirectURI returns the loopback callback URI for this listener.
	RedirectURI() string
}

// ListenerFactory builds a RedirectListener for a candidate port.
type ListenerFactory func(port int) RedirectListener

// Authenticator orchestrates one interactive authorization attempt:
// bind a listener with port fallback, open the authorization URL,
// await the single redirect outcome, and drive the token exchange.
type Authenticator struct {
	tokens      *TokenManager
	opener      driven.URLOpener
	newListener ListenerFactory

	ports       []int
	waitTimeout time.Duration

	inProgress atomic.Bool
}

// NewAuthenticator creates an auth orchestrator.
func NewAuthenticator(tokens *TokenManager, opener driven.URLOpener, factory ListenerFactory) *Authenticator {
	return &Authenticator{
		tokens:      tokens,
		opener:      opener,
		newListener: factory,
		ports:       CandidatePorts,
		waitTimeout: AuthWaitTimeout,
	}
}

// StartAuth runs one login attempt to completion. A second call while
// one attempt is pending is rejected with domain.ErrAuthInProgress;
// the pending attempt keeps its listener.
//
// Errors returned here are user-facing and never contain the
// authorization code, tokens, or message content.
func (a *Authenticator) StartAuth(ctx context.Context) error {
	if !a.inProgress.CompareAndSwap(false, true) {
		return domain.ErrAuthInProgress
	}
	defer a.inProgress.Store(false)

	if !a.tokens.HasClientCredentials() {
		return fmt.Errorf("start auth: client credentials not configured: %w", domain.ErrAuth)
	}

	attemptID := uuid.NewString()[:8]

	listener, err := a.bindListener(attemptID)
	if err != nil {
		return err
	}
	defer func() { _ = listener.Stop() }()

	authURL := a.tokens.BuildAuthURL(listener.RedirectURI())
	if err := a.opener.OpenURL(authURL); err != nil {
		return fmt.Errorf("open authorization page: %w", err)
	}

	code, err := listener.WaitForCode(a.waitTimeout)
	if err != nil {
		if errors.Is(err, domain.ErrTimeout) {
			return fmt.Errorf("authorization not completed within %s: %w", a.waitTimeout, domain.ErrTimeout)
		}
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := a.tokens.Exchange(ctx, code, listener.RedirectURI()); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	logger.Info("authorization complete", zap.String("attempt", attemptID))
	return nil
}

// bindListener tries each candidate port in order and returns the
// first listener that binds. When all fail, the aggregate error names
// every attempted port and its failure.
func (a *Authenticator) bindListener(attemptID string) (RedirectListener, error) {
	var attempts []error
	for _, port := range a.ports {
		listener := a.newListener(port)
		if err := listener.Start(); err != nil {
			logger.Warn("redirect listener bind failed",
				zap.String("attempt", attemptID),
				zap.Int("port", port))
			attempts = append(attempts, fmt.Errorf("port %d: %w", port, err))
			continue
		}
		logger.Info("redirect listener started",
			zap.String("attempt", attemptID),
			zap.Int("port", port))
		return listener, nil
	}
	return nil, fmt.Errorf("no candidate port could be bound: %w", errors.Join(attempts...))
}
