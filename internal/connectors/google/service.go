package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

// userInfoURL is a var so tests can point it at a local server.
var userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var userInfoClient = &http.Client{Timeout: 30 * time.Second}

// UserInfo contains the user's basic profile information from Google.
type UserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NewGmailService creates a Gmail API service using the provided TokenSource.
func NewGmailService(ctx context.Context, ts oauth2.TokenSource) (*gmail.Service, error) {
	return gmail.NewService(ctx, option.WithTokenSource(ts))
}

// GetUserInfo fetches the user's profile information using an access token.
// Returns the user's email address which serves as the account identifier.
// Failures map onto the domain taxonomy: a 401/403 wraps domain.ErrAuth,
// anything else wraps domain.ErrTransport.
func GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := userInfoClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", domain.ErrTransport)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("user info: status %d: %w", resp.StatusCode, domain.ErrAuth)
	default:
		return nil, fmt.Errorf("user info: status %d: %w", resp.StatusCode, domain.ErrTransport)
	}

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("decode user info: %w", domain.ErrParse)
	}

	return &userInfo, nil
}

// Ensure Verifier satisfies the account verification port.
var _ driven.AccountVerifier = Verifier{}

// Verifier checks token validity against the userinfo endpoint.
type Verifier struct{}

// VerifyAccess implements driven.AccountVerifier.
func (Verifier) VerifyAccess(ctx context.Context, accessToken string) error {
	_, err := GetUserInfo(ctx, accessToken)
	return err
}
