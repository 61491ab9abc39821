package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

func TestBuildPrivacyData(t *testing.T) {
	secrets := newFakeSecretStore()
	require.NoError(t, secrets.Set(SecretAccessToken, "a"))
	require.NoError(t, secrets.Set(SecretRefreshToken, "r"))
	require.NoError(t, secrets.Set(SecretTokenExpiry, "0"))

	entries := []domain.CodeEntry{
		{Code: "111111", Timestamp: 100, MessageID: "m1"},
		{Code: "222222", Timestamp: 300, MessageID: "m2"},
		{Code: "333333", Timestamp: 200, MessageID: "m3"},
	}

	data := BuildPrivacyData(entries, secrets, "/cfg", "/cfg/code_history.json")

	assert.Equal(t, "/cfg", data.DataLocations.ConfigPath)
	assert.Equal(t, "/cfg/code_history.json", data.DataLocations.HistoryPath)
	assert.ElementsMatch(t,
		[]string{SecretAccessToken, SecretRefreshToken, SecretTokenExpiry},
		data.DataLocations.KeychainItems)

	assert.Equal(t, []string{GmailReadonlyScope}, data.Permissions.Scopes)
	assert.True(t, data.Permissions.HasAccessToken)
	assert.True(t, data.Permissions.HasRefreshToken)

	assert.Equal(t, 3, data.Activity.TotalCodes)
	assert.Equal(t, int64(300), data.Activity.LastActivity)

	assert.Equal(t, domain.MaxHistorySize, data.Retention.MaxHistorySize)
	assert.Equal(t, 3, data.Retention.CurrentSize)
}

func TestBuildPrivacyDataEmptyState(t *testing.T) {
	data := BuildPrivacyData(nil, newFakeSecretStore(), "/cfg", "/cfg/code_history.json")

	assert.Empty(t, data.DataLocations.KeychainItems)
	assert.False(t, data.Permissions.HasAccessToken)
	assert.False(t, data.Permissions.HasRefreshToken)
	assert.Zero(t, data.Activity.TotalCodes)
	assert.Zero(t, data.Activity.LastActivity)
}
