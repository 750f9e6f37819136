package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/model"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a CMS user",
	Long: `Create a CMS user.

Without --password a random password is generated and printed to STDOUT.
Users default to the editor role with create-only permissions that
require approval.

Example:
  cmsctl user create maria --name "María" --countries ve,co
  cmsctl user create lead --role admin --password s3cret`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")
		password, _ := cmd.Flags().GetString("password")
		countries, _ := cmd.Flags().GetStringSlice("countries")

		generated, err := createUser(args[0], name, role, password, countries)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user '%s'\n", args[0])
		if generated != "" {
			fmt.Println(generated)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("name", "", "Display name (defaults to the username)")
	userCreateCmd.Flags().String("role", model.RoleEditor, "Role (admin or editor)")
	userCreateCmd.Flags().String("password", "", "Password (generated when empty)")
	userCreateCmd.Flags().StringSlice("countries", nil, "Country codes the user may edit")
}

// createUser stores a new user and returns the generated password, if any
func createUser(username, name, role, password string, countries []string) (string, error) {
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
	if name == "" {
		name = username
	}

	user, err := account.NewUser(account.NewUserInput{
		Username:  username,
		Password:  password,
		Name:      name,
		Role:      role,
		Countries: countries,
	})
	if err != nil {
		return "", err
	}
	if err := stores.Users.CreateUser(user); err != nil {
		return "", err
	}
	return generated, nil
}
