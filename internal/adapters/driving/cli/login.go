package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize mailbox access",
	Long: `Open the browser to authorize read-only access to your Gmail inbox.

The granted tokens are stored in the operating system credential vault,
never on disk in plain text.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke stored credentials and clear history",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	if err := app.StartAuth(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Authorized. Run 'otpbar run' to start watching for codes.")
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	if err := app.Logout(); err != nil {
		return err
	}
	cmd.Println("Logged out. Stored credentials and code history removed.")
	return nil
}
