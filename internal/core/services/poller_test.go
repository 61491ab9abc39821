package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// fakeMail serves scripted messages.
type fakeMail struct {
	mu       sync.Mutex
	messages map[string]*domain.Message
	listErr  error
	fetchErr map[string]error
}

func newFakeMail() *fakeMail {
	return &fakeMail{
		messages: make(map[string]*domain.Message),
		fetchErr: make(map[string]error),
	}
}

func (f *fakeMail) add(msg *domain.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[msg.ID] = msg
}

func (f *fakeMail) ListRecentUnread(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]string, 0, len(f.messages))
	for id := range f.messages {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeMail) FetchDetail(_ context.Context, id string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	msg, ok := f.messages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return msg, nil
}

// fakeClipboard records writes.
type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (f *fakeClipboard) WriteText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

func (f *fakeClipboard) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.writes))
	copy(out, f.writes)
	return out
}

// fakeNotifier records notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, title+"|"+body)
	return nil
}

func (f *fakeNotifier) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// fakeHistory records saves.
type fakeHistory struct {
	mu    sync.Mutex
	saved [][]domain.CodeEntry
}

func (f *fakeHistory) Load() []domain.CodeEntry { return nil }

func (f *fakeHistory) Save(entries []domain.CodeEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, entries)
}

func (f *fakeHistory) Path() string { return "/tmp/history.json" }

func (f *fakeHistory) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type pollerFixture struct {
	mail      *fakeMail
	session   *Session
	clipboard *fakeClipboard
	notifier  *fakeNotifier
	history   *fakeHistory
	poller    *Poller
}

func newPollerFixture(cfg PollerConfig) *pollerFixture {
	f := &pollerFixture{
		mail:      newFakeMail(),
		session:   NewSession(domain.DefaultPreferences(), domain.ClipboardConfig{TimeoutSeconds: 30}),
		clipboard: &fakeClipboard{},
		notifier:  &fakeNotifier{},
		history:   &fakeHistory{},
	}
	f.poller = NewPoller(f.mail, f.session, NewClipboardManager(f.clipboard), f.notifier, f.history, cfg)
	return f
}

func TestCycleRecordsCopiesAndNotifies(t *testing.T) {
	f := newPollerFixture(PollerConfig{NotificationsEnabled: true})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "GitHub <noreply@github.com>",
		Body: "Your verification code: 445566",
	})

	f.poller.cycle(context.Background())

	codes := f.session.Codes()
	require.Len(t, codes, 1)
	assert.Equal(t, "445566", codes[0].Code)
	assert.Equal(t, "GitHub", codes[0].Provider)
	assert.Equal(t, "GitHub", codes[0].Sender)
	assert.Equal(t, "m1", codes[0].MessageID)

	assert.Equal(t, []string{"445566"}, f.clipboard.all())
	assert.Equal(t, []string{"OTP Copied|Code from GitHub"}, f.notifier.all())
	assert.Equal(t, 1, f.history.saveCount())
}

func TestCycleDedupsAcrossCycles(t *testing.T) {
	f := newPollerFixture(PollerConfig{})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "a@b.example",
		Body: "Your code is 111222",
	})

	f.poller.cycle(context.Background())
	f.poller.cycle(context.Background())

	assert.Len(t, f.session.Codes(), 1, "unread message seen twice records once")
	assert.Len(t, f.clipboard.all(), 1, "copied once")
	assert.Equal(t, 2, f.history.saveCount(), "every completed cycle persists")
}

func TestCycleListFailureAbortsOnlyThatCycle(t *testing.T) {
	f := newPollerFixture(PollerConfig{})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "a@b.example",
		Body: "Your code is 111222",
	})

	f.mail.listErr = errors.New("transport down")
	f.poller.cycle(context.Background())
	assert.Empty(t, f.session.Codes())
	assert.Zero(t, f.history.saveCount(), "a failed cycle does not persist")

	f.mail.listErr = nil
	f.poller.cycle(context.Background())
	assert.Len(t, f.session.Codes(), 1, "next cycle recovers")
}

func TestCycleFetchFailureSkipsMessage(t *testing.T) {
	f := newPollerFixture(PollerConfig{})
	f.mail.add(&domain.Message{
		ID:   "bad",
		From: "a@b.example",
		Body: "Your code is 111222",
	})
	f.mail.add(&domain.Message{
		ID:   "good",
		From: "c@d.example",
		Body: "Your code is 333444",
	})
	f.mail.fetchErr["bad"] = errors.New("transport down")

	f.poller.cycle(context.Background())

	codes := f.session.Codes()
	require.Len(t, codes, 1)
	assert.Equal(t, "333444", codes[0].Code)
}

func TestCycleHonoursAutoCopyPreferences(t *testing.T) {
	f := newPollerFixture(PollerConfig{NotificationsEnabled: true})
	prefs := f.session.Preferences()
	prefs.ProviderAutoCopy["GitHub"] = false
	f.session.SetPreferences(prefs)

	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "GitHub <noreply@github.com>",
		Body: "Your verification code: 445566",
	})

	f.poller.cycle(context.Background())

	assert.Len(t, f.session.Codes(), 1, "still recorded")
	assert.Empty(t, f.clipboard.all(), "not copied")
	assert.Equal(t, []string{"OTP Copied|Code from GitHub"}, f.notifier.all(),
		"notification is independent of the copy decision")
}

func TestCycleNotifiesWhenAutoCopyDisabledGlobally(t *testing.T) {
	f := newPollerFixture(PollerConfig{NotificationsEnabled: true})
	prefs := f.session.Preferences()
	prefs.AutoCopyEnabled = false
	f.session.SetPreferences(prefs)

	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "a@b.example",
		Body: "Your code is 111222",
	})

	f.poller.cycle(context.Background())

	assert.Empty(t, f.clipboard.all(), "not copied")
	assert.Len(t, f.notifier.all(), 1, "every new code is announced")
}

func TestCycleSkipsMessagesWithoutCodes(t *testing.T) {
	f := newPollerFixture(PollerConfig{})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "newsletter@example.com",
		Body: "This week in product updates",
	})

	f.poller.cycle(context.Background())

	assert.Empty(t, f.session.Codes())
	assert.Equal(t, 1, f.history.saveCount(), "completed cycle persists even without new codes")
}

func TestCycleNotificationCooldown(t *testing.T) {
	f := newPollerFixture(PollerConfig{
		NotificationsEnabled: true,
		NotificationCooldown: time.Hour,
	})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "a@b.example",
		Body: "Your code is 111222",
	})
	f.mail.add(&domain.Message{
		ID:   "m2",
		From: "c@d.example",
		Body: "Your code is 333444",
	})

	f.poller.cycle(context.Background())

	assert.Len(t, f.clipboard.all(), 2, "both codes copied")
	assert.Len(t, f.notifier.all(), 1, "second notification suppressed by cooldown")
}

func TestRunRejectsSecondLoop(t *testing.T) {
	f := newPollerFixture(PollerConfig{Interval: time.Hour})

	require.True(t, f.session.BeginPolling())
	defer f.session.EndPolling()

	err := f.poller.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrPollingActive)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	f := newPollerFixture(PollerConfig{Interval: 10 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.poller.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on cancel")
	}
	assert.False(t, f.session.Polling(), "guard released")
}

func TestCycleFiresOnCodeCallback(t *testing.T) {
	f := newPollerFixture(PollerConfig{})
	var mu sync.Mutex
	var seen []domain.CodeEntry
	f.poller.OnCode(func(e domain.CodeEntry) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e)
	})
	f.mail.add(&domain.Message{
		ID:   "m1",
		From: "a@b.example",
		Body: "Your code is 111222",
	})

	f.poller.cycle(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 1)
	assert.Equal(t, "111222", seen[0].Code)
}
