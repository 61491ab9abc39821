package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tanRdev/otpbar/internal/core/ports/driven"
	"github.com/tanRdev/otpbar/internal/logger"
)

// ClipboardManager writes codes to the system clipboard and schedules
// their timed removal. Each timed copy registers a timer keyed by a
// fresh id; CancelAll stops every pending timer on shutdown or logout.
type ClipboardManager struct {
	clipboard driven.Clipboard

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewClipboardManager creates a manager over the given clipboard surface.
func NewClipboardManager(clipboard driven.Clipboard) *ClipboardManager {
	return &ClipboardManager{
		clipboard: clipboard,
		timers:    make(map[string]*time.Timer),
	}
}

// Copy writes text to the clipboard without scheduling a clear.
func (c *ClipboardManager) Copy(text string) error {
	if err := c.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// CopyWithExpiry writes text to the clipboard and schedules a clear
// after timeout. A non-positive timeout behaves like Copy. The clear is
// best effort: it overwrites whatever the clipboard holds at that
// moment, even content copied later from elsewhere.
func (c *ClipboardManager) CopyWithExpiry(text string, timeout time.Duration) error {
	if err := c.Copy(text); err != nil {
		return err
	}
	if timeout <= 0 {
		return nil
	}

	id := uuid.NewString()
	c.mu.Lock()
	c.timers[id] = time.AfterFunc(timeout, func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()

		if err := c.clipboard.WriteText(""); err != nil {
			logger.Warn("clipboard clear failed")
		}
	})
	c.mu.Unlock()
	return nil
}

// CancelAll stops every pending clear timer and wipes the clipboard
// once, best effort.
func (c *ClipboardManager) CancelAll() {
	c.mu.Lock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	_ = c.clipboard.WriteText("")
}
