package driven

import "context"

// AccountVerifier confirms that an access token actually works against
// the provider, typically by fetching the profile it grants access to.
type AccountVerifier interface {
	// VerifyAccess performs a lightweight authenticated call with the
	// given access token. A provider rejection wraps domain.ErrAuth;
	// anything else wraps domain.ErrTransport.
	VerifyAccess(ctx context.Context, accessToken string) error
}
