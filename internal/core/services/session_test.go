package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

func entry(msgID, code string) domain.CodeEntry {
	return domain.CodeEntry{
		Code:      code,
		Sender:    "sender",
		Provider:  "Provider",
		Timestamp: time.Now().UnixMilli(),
		MessageID: msgID,
	}
}

func TestSessionRecordDedup(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{TimeoutSeconds: 30})

	assert.True(t, s.Record(entry("m1", "111111")))
	assert.False(t, s.Record(entry("m1", "111111")), "same message and code is a duplicate")
	assert.True(t, s.Record(entry("m1", "222222")), "same message with a new code is not")
	assert.True(t, s.Record(entry("m2", "111111")), "same code from a new message is not")

	assert.Len(t, s.Codes(), 3)
}

func TestSessionRecordNewestFirst(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{})

	s.Record(entry("m1", "111111"))
	s.Record(entry("m2", "222222"))

	codes := s.Codes()
	require.Len(t, codes, 2)
	assert.Equal(t, "222222", codes[0].Code)
	assert.Equal(t, "111111", codes[1].Code)
}

func TestSessionEvictionReleasesDedupKey(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{})

	first := entry("m0", "000000")
	require.True(t, s.Record(first))
	for i := 1; i <= domain.MaxRecentCodes; i++ {
		require.True(t, s.Record(entry(fmt.Sprintf("m%d", i), fmt.Sprintf("%06d", i))))
	}

	codes := s.Codes()
	require.Len(t, codes, domain.MaxRecentCodes)
	assert.NotEqual(t, "000000", codes[len(codes)-1].Code, "oldest entry evicted")

	assert.False(t, s.Seen(first.DedupKey()), "evicted key is released")
	assert.True(t, s.Record(first), "evicted entry can be recorded again")
}

func TestSessionClearCodes(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{})

	e := entry("m1", "111111")
	s.Record(e)
	s.ClearCodes()

	assert.Empty(t, s.Codes())
	assert.True(t, s.Record(e), "cleared entries can be recorded again")
}

func TestSessionPreferencesCopied(t *testing.T) {
	prefs := domain.DefaultPreferences()
	prefs.ProviderAutoCopy["Google"] = false
	s := NewSession(prefs, domain.ClipboardConfig{})

	got := s.Preferences()
	got.ProviderAutoCopy["Google"] = true

	assert.False(t, s.Preferences().ProviderAutoCopy["Google"],
		"mutating a snapshot does not change session state")
}

func TestSessionNotificationCooldown(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{})
	base := time.Now()
	cooldown := 3 * time.Second

	assert.True(t, s.AllowNotification(base, cooldown), "first notification allowed")
	assert.False(t, s.AllowNotification(base.Add(time.Second), cooldown), "inside cooldown")
	assert.True(t, s.AllowNotification(base.Add(4*time.Second), cooldown), "after cooldown")
}

func TestSessionPollingGuard(t *testing.T) {
	s := NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{})

	assert.True(t, s.BeginPolling())
	assert.False(t, s.BeginPolling(), "only one loop at a time")
	s.EndPolling()
	assert.True(t, s.BeginPolling(), "guard released")
}
