package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently: a token within
// the expiry skew window is refreshed, and the new expiry re-persisted,
// before it is returned.
type TokenProvider interface {
	// GetValidAccessToken returns an access token that is usable now.
	GetValidAccessToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether valid authentication is available.
	IsAuthenticated() bool
}
