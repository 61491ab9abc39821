package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyWithExpiryClearsClipboard(t *testing.T) {
	fake := &fakeClipboard{}
	m := NewClipboardManager(fake)

	require.NoError(t, m.CopyWithExpiry("123456", 20*time.Millisecond))

	assert.Eventually(t, func() bool {
		writes := fake.all()
		return len(writes) == 2 && writes[1] == ""
	}, time.Second, 5*time.Millisecond, "clipboard cleared after the timeout")
}

func TestCopyWithExpiryZeroTimeoutNeverClears(t *testing.T) {
	fake := &fakeClipboard{}
	m := NewClipboardManager(fake)

	require.NoError(t, m.CopyWithExpiry("123456", 0))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"123456"}, fake.all())
}

func TestCancelAllStopsPendingTimers(t *testing.T) {
	fake := &fakeClipboard{}
	m := NewClipboardManager(fake)

	require.NoError(t, m.CopyWithExpiry("111111", time.Hour))
	require.NoError(t, m.CopyWithExpiry("222222", time.Hour))

	m.CancelAll()

	writes := fake.all()
	require.Len(t, writes, 3, "two copies plus one wipe")
	assert.Equal(t, "", writes[2])

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, fake.all(), 3, "no timer fires after cancel")
}
