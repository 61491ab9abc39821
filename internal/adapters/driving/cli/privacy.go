package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

var privacyCmd = &cobra.Command{
	Use:   "privacy",
	Short: "Show what data is stored and where",
	Long: `Print a summary of stored data: file locations, credential vault
items, granted scopes, and history retention. Secret values are never
included.`,
	RunE: runPrivacy,
}

func init() {
	rootCmd.AddCommand(privacyCmd)
}

func runPrivacy(cmd *cobra.Command, _ []string) error {
	if app == nil {
		return errors.New("engine not configured")
	}

	data := app.PrivacyData()
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
