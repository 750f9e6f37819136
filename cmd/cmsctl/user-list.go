package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List CMS users",
	Long: `List CMS users with their role, countries and permissions.

Example:
  cmsctl user list`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := listUsers(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	userCmd.AddCommand(userListCmd)
}

func listUsers() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stores, _, err := openStores(cfg)
	if err != nil {
		return err
	}

	users, err := stores.Users.ListUsers()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tROLE\tNAME\tCOUNTRIES\tPERMISSIONS")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.Username, u.Role, u.Name, strings.Join(u.Countries, ","), permissionFlags(u.Permissions.CanCreate, u.Permissions.CanEdit, u.Permissions.CanDelete, u.Permissions.RequiresApproval))
	}
	return w.Flush()
}

func permissionFlags(create, edit, remove, approval bool) string {
	flags := []byte("----")
	if create {
		flags[0] = 'c'
	}
	if edit {
		flags[1] = 'e'
	}
	if remove {
		flags[2] = 'd'
	}
	if approval {
		flags[3] = 'a'
	}
	return string(flags)
}
