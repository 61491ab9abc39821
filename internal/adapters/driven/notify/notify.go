// Package notify posts desktop notifications through the platform's
// native mechanism.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

// Ensure Desktop satisfies the Notifier port.
var _ driven.Notifier = (*Desktop)(nil)

// Desktop posts notifications via osascript, notify-send, or
// powershell depending on the platform. Notification bodies name only
// the sender, never a code.
type Desktop struct{}

// Notify posts one desktop notification.
func (Desktop) Notify(title, body string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	case "linux":
		cmd = exec.Command("notify-send", title, body)
	case "windows":
		script := fmt.Sprintf(
			"New-BurntToastNotification -Text %s, %s",
			psQuote(title), psQuote(body),
		)
		cmd = exec.Command("powershell", "-NoProfile", "-Command", script)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	return nil
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
