package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/logger"
)

// GmailReadonlyScope is the only mailbox permission the engine requests.
const GmailReadonlyScope = "https://www.googleapis.com/auth/gmail.readonly"

// Vault item names for the stored token triple.
const (
	SecretAccessToken  = "gmail-access-token"
	SecretRefreshToken = "gmail-refresh-token"
	SecretTokenExpiry  = "gmail-token-expiry"
)

// defaultTokenLifetime is assumed when the provider omits expires_in.
const defaultTokenLifetime = time.Hour

// Ensure TokenManager implements the TokenProvider interface.
var _ driven.TokenProvider = (*TokenManager)(nil)

// TokenManager owns the client credentials and the stored
// access/refresh/expiry triple. It performs the code exchange, refreshes
// transparently inside the expiry skew window, and re-persists every
// mutation to the secret vault.
type TokenManager struct {
	clientID     string
	clientSecret string
	secrets      driven.SecretStore
	verifier     driven.AccountVerifier

	endpoint oauth2.Endpoint

	mu            sync.RWMutex
	authenticated bool

	now func() time.Time
}

// NewTokenManager creates a token manager around the given client
// credentials, secret vault, and account verifier.
func NewTokenManager(clientID, clientSecret string, secrets driven.SecretStore, verifier driven.AccountVerifier) *TokenManager {
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		secrets:      secrets,
		verifier:     verifier,
		endpoint:     google.Endpoint,
		now:          time.Now,
	}
}

// HasClientCredentials reports whether a client id and secret were
// configured. Without them no authorization attempt can succeed.
func (m *TokenManager) HasClientCredentials() bool {
	return m.clientID != "" && m.clientSecret != ""
}

// IsAuthenticated reports whether a successful exchange or restore has
// happened in this process.
func (m *TokenManager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// BuildAuthURL produces the deterministic authorization URL for the
// given loopback redirect URI. access_type=offline and prompt=consent
// ensure the provider returns a refresh token on a fresh grant.
func (m *TokenManager) BuildAuthURL(redirectURI string) string {
	return m.config(redirectURI).AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange posts the authorization code and persists the returned
// token triple. When the provider returns no refresh token, the call
// succeeds only if one is already stored; otherwise the grant cannot
// outlive the access token and the exchange fails.
func (m *TokenManager) Exchange(ctx context.Context, code, redirectURI string) error {
	tok, err := m.config(redirectURI).Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange: %w", classifyOAuthErr(err))
	}

	if tok.RefreshToken == "" {
		if _, err := m.secrets.Get(SecretRefreshToken); err != nil {
			return fmt.Errorf("token exchange: %w", domain.ErrNoRefreshToken)
		}
	} else if err := m.secrets.Set(SecretRefreshToken, tok.RefreshToken); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}

	if err := m.persistAccessToken(tok); err != nil {
		return err
	}

	m.mu.Lock()
	m.authenticated = true
	m.mu.Unlock()
	return nil
}

// GetValidAccessToken returns the stored access token, refreshing it
// first whenever the stored triple is not demonstrably usable: missing,
// past its expiry, or inside the skew window. The refreshed expiry is
// re-persisted before returning.
func (m *TokenManager) GetValidAccessToken(ctx context.Context) (string, error) {
	tok := m.storedToken()
	if tok.Usable(m.now()) {
		return tok.AccessToken, nil
	}

	if _, err := m.secrets.Get(SecretRefreshToken); err == nil {
		return m.refreshAccessToken(ctx)
	}

	// A stale access token without a refresh token is unusable; it is
	// never handed out past the skew window.
	if tok.AccessToken == "" {
		return "", fmt.Errorf("no access token stored: %w", domain.ErrAuthRequired)
	}
	return "", fmt.Errorf("access token expired and no refresh token stored: %w", domain.ErrNoRefreshToken)
}

// Validate performs a lightweight authenticated call to confirm a
// restored token actually works against the provider.
func (m *TokenManager) Validate(ctx context.Context) error {
	access, err := m.GetValidAccessToken(ctx)
	if err != nil {
		return err
	}
	if err := m.verifier.VerifyAccess(ctx, access); err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	return nil
}

// TryRestoreAuth attempts to resume a previous session from the vault
// on startup. A restore failure is silent: stale credentials are
// cleared and the engine stays unauthenticated until the next login.
func (m *TokenManager) TryRestoreAuth(ctx context.Context) bool {
	if !m.HasClientCredentials() {
		return false
	}
	if _, err := m.secrets.Get(SecretRefreshToken); err != nil {
		return false
	}
	if _, err := m.GetValidAccessToken(ctx); err != nil {
		logger.Debug("auth restore failed", zap.String("reason", "refresh"))
		return false
	}
	if err := m.Validate(ctx); err != nil {
		logger.Debug("auth restore failed", zap.String("reason", "validate"))
		m.Clear()
		return false
	}

	m.mu.Lock()
	m.authenticated = true
	m.mu.Unlock()
	return true
}

// Clear deletes all three stored secrets and resets the authenticated
// flag. The refresh token is revoked locally; a new consent is needed.
func (m *TokenManager) Clear() {
	_ = m.secrets.Delete(SecretAccessToken)
	_ = m.secrets.Delete(SecretRefreshToken)
	_ = m.secrets.Delete(SecretTokenExpiry)

	m.mu.Lock()
	m.authenticated = false
	m.mu.Unlock()
}

func (m *TokenManager) config(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		Endpoint:     m.endpoint,
		RedirectURL:  redirectURI,
		Scopes:       []string{GmailReadonlyScope},
	}
}

// refreshAccessToken redeems the stored refresh token for a fresh
// access token and persists the new triple.
func (m *TokenManager) refreshAccessToken(ctx context.Context) (string, error) {
	refresh, err := m.secrets.Get(SecretRefreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", domain.ErrNoRefreshToken)
	}

	src := m.config("").TokenSource(ctx, &oauth2.Token{RefreshToken: refresh})
	tok, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("refresh: %w", classifyOAuthErr(err))
	}

	// Providers may rotate the refresh token on use.
	if tok.RefreshToken != "" && tok.RefreshToken != refresh {
		if err := m.secrets.Set(SecretRefreshToken, tok.RefreshToken); err != nil {
			return "", fmt.Errorf("store refresh token: %w", err)
		}
	}

	if err := m.persistAccessToken(tok); err != nil {
		return "", err
	}
	return tok.AccessToken, nil
}

func (m *TokenManager) persistAccessToken(tok *oauth2.Token) error {
	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = m.now().Add(defaultTokenLifetime)
	}

	if err := m.secrets.Set(SecretAccessToken, tok.AccessToken); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if err := m.secrets.Set(SecretTokenExpiry, strconv.FormatInt(expiry.Unix(), 10)); err != nil {
		return fmt.Errorf("store token expiry: %w", err)
	}
	return nil
}

// storedToken assembles the persisted triple, best effort. Fields that
// are missing or unparseable stay zero.
func (m *TokenManager) storedToken() domain.Token {
	var tok domain.Token
	if access, err := m.secrets.Get(SecretAccessToken); err == nil {
		tok.AccessToken = access
	}
	if raw, err := m.secrets.Get(SecretTokenExpiry); err == nil {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			tok.Expiry = time.Unix(unix, 0)
		}
	}
	return tok
}

// classifyOAuthErr maps an oauth2 failure onto the domain taxonomy: a
// provider rejection is an auth failure, anything else is transport.
func classifyOAuthErr(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("provider rejected request: %w", domain.ErrAuth)
	}
	return fmt.Errorf("%v: %w", err, domain.ErrTransport)
}
