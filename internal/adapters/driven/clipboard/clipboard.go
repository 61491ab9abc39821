// Package clipboard adapts the system clipboard to the engine's
// Clipboard port.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

// Ensure System satisfies the Clipboard port.
var _ driven.Clipboard = (*System)(nil)

// System writes to the OS clipboard.
type System struct{}

// WriteText places text on the system clipboard.
func (System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
