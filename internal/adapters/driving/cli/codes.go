package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List recent codes",
	Long:  `List the most recent one-time codes, newest first.`,
	RunE:  runCodes,
}

var copyCmd = &cobra.Command{
	Use:   "copy [index]",
	Short: "Copy a recent code to the clipboard",
	Long: `Copy a code from the recent list to the clipboard. With no argument
the newest code is copied. The clipboard is cleared after the configured
timeout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the code history",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(clearCmd)
}

func runCodes(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	entries := app.Codes()
	if len(entries) == 0 {
		cmd.Println("No codes yet.")
		return nil
	}

	for i, e := range entries {
		when := time.UnixMilli(e.Timestamp).Local().Format("15:04:05")
		cmd.Printf("%2d. %-8s %-20s %s (%s)\n", i+1, e.Code, e.Provider, e.Sender, when)
	}
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	entries := app.Codes()
	if len(entries) == 0 {
		return errors.New("no codes to copy")
	}

	index := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(entries) {
			return fmt.Errorf("index must be between 1 and %d", len(entries))
		}
		index = n - 1
	}

	entry := entries[index]
	if err := app.CopyCodeWithExpiry(entry.Code); err != nil {
		return err
	}
	cmd.Printf("Copied code from %s.\n", entry.Provider)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	app.ClearHistory()
	cmd.Println("Code history cleared.")
	return nil
}
