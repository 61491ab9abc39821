// Package cli provides the cobra command surface over the engine.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tanRdev/otpbar/internal/core/ports/driving"
)

var version = "dev"

// app is the wired engine surface, set by bootstrap before any
// subcommand runs.
var app driving.Commands

var rootCmd = &cobra.Command{
	Use:   "otpbar",
	Short: "OTP codes from your inbox, straight to the clipboard",
	Long: `otpbar watches your Gmail inbox for one-time codes and copies them
to the clipboard the moment they arrive.

Authorize once with 'otpbar login', then keep 'otpbar run' going in the
background. Codes, tokens, and message bodies never appear in logs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return bootstrap()
	},
}

// Execute runs the CLI.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
