package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage auto-copy preferences",
	Long: `View and configure the auto-copy policy.

The global flag gates everything; per-provider overrides refine it. A
"default" override applies to providers without their own entry.`,
	RunE: runPrefsShow,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE:  runPrefsShow,
}

var prefsAutoCopyCmd = &cobra.Command{
	Use:   "autocopy [on|off]",
	Short: "Toggle global auto-copy",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsAutoCopy,
}

var prefsProviderCmd = &cobra.Command{
	Use:   "provider [name] [on|off]",
	Short: "Set a per-provider auto-copy override",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsProvider,
}

var prefsTimeoutCmd = &cobra.Command{
	Use:   "clipboard-timeout [seconds]",
	Short: "Set the clipboard clear timeout",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefsTimeout,
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsAutoCopyCmd)
	prefsCmd.AddCommand(prefsProviderCmd)
	prefsCmd.AddCommand(prefsTimeoutCmd)
	rootCmd.AddCommand(prefsCmd)
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	prefs := app.Preferences()
	clip := app.ClipboardConfig()

	cmd.Printf("Auto-copy:         %s\n", onOff(prefs.AutoCopyEnabled))
	cmd.Printf("Clipboard timeout: %ds\n", clip.TimeoutSeconds)

	if len(prefs.ProviderAutoCopy) > 0 {
		cmd.Println("Provider overrides:")
		names := make([]string, 0, len(prefs.ProviderAutoCopy))
		for name := range prefs.ProviderAutoCopy {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %-20s %s\n", name, onOff(prefs.ProviderAutoCopy[name]))
		}
	}
	return nil
}

func runPrefsAutoCopy(cmd *cobra.Command, args []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	enabled, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	app.SetAutoCopyEnabled(enabled)
	cmd.Printf("Auto-copy %s.\n", onOff(enabled))
	return nil
}

func runPrefsProvider(cmd *cobra.Command, args []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	enabled, err := parseOnOff(args[1])
	if err != nil {
		return err
	}
	app.SetProviderAutoCopy(args[0], enabled)
	cmd.Printf("Auto-copy for %s %s.\n", args[0], onOff(enabled))
	return nil
}

func runPrefsTimeout(cmd *cobra.Command, args []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds < 0 {
		return fmt.Errorf("seconds must be a non-negative integer")
	}
	app.SetClipboardTimeout(seconds)
	cmd.Printf("Clipboard timeout set to %ds.\n", seconds)
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected 'on' or 'off', got %q", s)
	}
}
