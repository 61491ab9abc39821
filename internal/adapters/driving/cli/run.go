package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the background engine",
	Long: `Run the polling engine: restore or acquire authorization, then watch
the inbox for one-time codes until interrupted. New codes are copied to
the clipboard per your auto-copy preferences.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
