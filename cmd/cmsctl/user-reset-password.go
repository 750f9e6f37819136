package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/account"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Reset a user's password",
	Long: `Reset the password of a CMS user.

Without --password a new random password is generated and printed to
STDOUT. This is the way back in when the admin password is lost.

Example:
  cmsctl user reset-password admin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		password, _ := cmd.Flags().GetString("password")

		generated, err := resetPassword(username, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", username, err)
			os.Exit(1)
		}
		if generated != "" {
			fmt.Println(generated)
		}
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
	userResetPasswordCmd.Flags().String("password", "", "New password (generated when empty)")
}

func resetPassword(username, password string) (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	stores, _, err := openStores(cfg)
	if err != nil {
		return "", err
	}

	generated := ""
	if password == "" {
		if password, err = account.GeneratePassword(); err != nil {
			return "", err
		}
		generated = password
	}

	if err := account.ResetPassword(stores.Users, username, password); err != nil {
		return "", err
	}
	return generated, nil
}
