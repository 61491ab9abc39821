package domain

// PrivacyData summarises where the engine keeps data and what access it
// holds. Field names match the payload the UI shell renders.
type PrivacyData struct {
	DataLocations DataLocations `json:"dataLocations"`
	Permissions   Permissions   `json:"permissions"`
	Activity      Activity      `json:"activity"`
	Retention     Retention     `json:"retention"`
}

// DataLocations lists the on-disk and in-vault storage locations.
type DataLocations struct {
	ConfigPath    string   `json:"configPath"`
	HistoryPath   string   `json:"historyPath"`
	KeychainItems []string `json:"keychainItems"`
}

// Permissions reports the granted mail scopes and token presence.
type Permissions struct {
	Scopes          []string `json:"scopes"`
	HasAccessToken  bool     `json:"hasAccessToken"`
	HasRefreshToken bool     `json:"hasRefreshToken"`
}

// Activity reports code history activity.
type Activity struct {
	TotalCodes   int   `json:"totalCodes"`
	LastActivity int64 `json:"lastActivity,omitempty"`
	// HistoryRetention is in days; 0 means size-bounded only.
	HistoryRetention int `json:"historyRetention"`
}

// Retention reports the history bound and current usage.
type Retention struct {
	MaxHistorySize int `json:"maxHistorySize"`
	CurrentSize    int `json:"currentSize"`
}
