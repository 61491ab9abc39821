package domain

import "time"

// TokenExpirySkew is subtracted from the stored expiry when deciding
// whether an access token is still usable. A token inside the skew
// window is refreshed before use.
const TokenExpirySkew = 60 * time.Second

// Token holds the OAuth access/refresh/expiry triple. Both token values
// are secrets and must never be logged or serialized outside the vault.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Usable reports whether the access token can still be presented
// without a refresh, honouring the skew window.
func (t Token) Usable(now time.Time) bool {
	if t.AccessToken == "" || t.Expiry.IsZero() {
		return false
	}
	return now.Before(t.Expiry.Add(-TokenExpirySkew))
}
