package services

import (
	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

// BuildPrivacyData assembles the privacy summary from live state: the
// storage locations, the vault items actually present, the granted
// scope, and history usage. Secret values are never included, only
// their presence.
func BuildPrivacyData(entries []domain.CodeEntry, secrets driven.SecretStore, configPath, historyPath string) domain.PrivacyData {
	var keychainItems []string
	hasAccess := false
	hasRefresh := false

	if _, err := secrets.Get(SecretAccessToken); err == nil {
		hasAccess = true
		keychainItems = append(keychainItems, SecretAccessToken)
	}
	if _, err := secrets.Get(SecretRefreshToken); err == nil {
		hasRefresh = true
		keychainItems = append(keychainItems, SecretRefreshToken)
	}
	if _, err := secrets.Get(SecretTokenExpiry); err == nil {
		keychainItems = append(keychainItems, SecretTokenExpiry)
	}

	var lastActivity int64
	for _, e := range entries {
		if e.Timestamp > lastActivity {
			lastActivity = e.Timestamp
		}
	}

	return domain.PrivacyData{
		DataLocations: domain.DataLocations{
			ConfigPath:    configPath,
			HistoryPath:   historyPath,
			KeychainItems: keychainItems,
		},
		Permissions: domain.Permissions{
			Scopes:          []string{GmailReadonlyScope},
			HasAccessToken:  hasAccess,
			HasRefreshToken: hasRefresh,
		},
		Activity: domain.Activity{
			TotalCodes:   len(entries),
			LastActivity: lastActivity,
		},
		Retention: domain.Retention{
			MaxHistorySize: domain.MaxHistorySize,
			CurrentSize:    len(entries),
		},
	}
}
