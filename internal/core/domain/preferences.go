package domain

// DefaultProviderKey is the fallback entry in the per-provider
// auto-copy override map.
const DefaultProviderKey = "default"

// Preferences is the auto-copy policy: a global flag plus per-provider
// overrides. JSON field names match the on-disk preferences format.
type Preferences struct {
	AutoCopyEnabled  bool            `json:"auto_copy_enabled"`
	ProviderAutoCopy map[string]bool `json:"provider_auto_copy"`
}

// DefaultPreferences returns the policy used when no preferences file
// exists or the stored one cannot be read.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoCopyEnabled:  true,
		ProviderAutoCopy: make(map[string]bool),
	}
}

// ShouldAutoCopy resolves auto-copy eligibility for a provider.
// Precedence: provider-specific override, then the "default" override,
// then implicit true — all gated by the global flag.
func (p Preferences) ShouldAutoCopy(provider string) bool {
	if !p.AutoCopyEnabled {
		return false
	}
	if enabled, ok := p.ProviderAutoCopy[provider]; ok {
		return enabled
	}
	if enabled, ok := p.ProviderAutoCopy[DefaultProviderKey]; ok {
		return enabled
	}
	return true
}

// ClipboardConfig holds the timed-clear duration applied when a code is
// copied with expiry.
type ClipboardConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}
