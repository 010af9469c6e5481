package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgeapps/onboardgen/pkg/auth"
)

var apiKey string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage AI provider credentials",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API key for the AI provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}
		mgr, err := auth.NewManager(viper.GetString("credentials_file"))
		if err != nil {
			return err
		}
		if err := mgr.SetAPIKey(apiKey); err != nil {
			return err
		}
		fmt.Println(color.GreenString("✅ Credentials saved"))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := auth.NewManager(viper.GetString("credentials_file"))
		if err != nil {
			return err
		}
		creds, err := mgr.Status()
		if err != nil {
			return err
		}

		switch {
		case creds.APIKey != "":
			fmt.Println(color.GreenString("API key configured (%s…)", redact(creds.APIKey)))
		case creds.OAuth != nil && creds.OAuth.AccessToken != "":
			fmt.Println(color.GreenString("OAuth token configured, expires %s", creds.OAuth.Expiry.Format("2006-01-02 15:04")))
		default:
			fmt.Println(color.YellowString("No credentials configured. Run 'onboardgen auth login --api-key KEY' or set ONBOARDGEN_API_KEY."))
		}
		return nil
	},
}

func redact(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:8]
}

func init() {
	authLoginCmd.Flags().StringVar(&apiKey, "api-key", "", "AI provider API key")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
