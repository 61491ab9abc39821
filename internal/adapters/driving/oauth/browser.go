package oauth

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

// Ensure Browser satisfies the URLOpener port.
var _ driven.URLOpener = (*Browser)(nil)

// Browser opens URLs in the system default browser.
type Browser struct{}

// OpenURL opens the default browser to the given URL.
func (Browser) OpenURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
