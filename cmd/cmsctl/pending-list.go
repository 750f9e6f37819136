package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/model"
)

// pendingListCmd represents the pending list command
var pendingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List queued changes",
	Long: `List the changes waiting for approval, oldest first.

Example:
  cmsctl pending list
  cmsctl pending list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := listPending(os.Stdout, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list pending changes: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	pendingCmd.AddCommand(pendingListCmd)
	pendingListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listPending(out io.Writer, output string) error {
	queue, _, err := openQueue()
	if err != nil {
		return err
	}
	changes, err := queue.List()
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(changes)
	}
	return writeChanges(out, changes)
}

func writeChanges(out io.Writer, changes []model.PendingChange) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tSECTION\tTARGET\tTITLE\tUSER\tCREATED")
	for _, c := range changes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Type, c.Section, changeTarget(c), c.Title(), c.UserName, c.CreatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func changeTarget(c model.PendingChange) string {
	target := c.Lang
	if c.CountryCode != "" {
		target += "/" + c.CountryCode
	}
	if c.ItemID != "" {
		target += "/" + c.ItemID
	}
	return target
}
