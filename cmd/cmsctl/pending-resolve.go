package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/audit"
)

// pendingApproveCmd represents the pending approve command
var pendingApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a queued change",
	Long: `Approve a queued change and remove it from the queue.

The payload is written to the content tree only when apply_on_approve is
enabled; a change that cannot be applied stays queued.

Example:
  cmsctl pending approve 6f1c2d9e-...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := resolvePending(args[0], "approve"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to approve %s: %v\n", args[0], err)
			os.Exit(1)
		}
	},
}

// pendingRejectCmd represents the pending reject command
var pendingRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a queued change",
	Long: `Reject a queued change and remove it from the queue.

Example:
  cmsctl pending reject 6f1c2d9e-...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := resolvePending(args[0], "reject"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reject %s: %v\n", args[0], err)
			os.Exit(1)
		}
	},
}

func init() {
	pendingCmd.AddCommand(pendingApproveCmd)
	pendingCmd.AddCommand(pendingRejectCmd)
}

func resolvePending(id, decision string) error {
	queue, _, err := openQueue()
	if err != nil {
		return err
	}

	event := audit.ModerationEvent{
		UserID:   "cmsctl",
		ClientIP: "local",
		ChangeID: id,
		Decision: decision,
	}

	if decision == "approve" {
		change, applied, err := queue.Approve(id)
		if change != nil {
			event.Section, event.Submitter = change.Section, change.UserName
		}
		event.Applied = applied
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			return err
		}
		event.Success = true
		audit.Log(event)
		if applied {
			fmt.Printf("Approved and applied %s\n", id)
		} else {
			fmt.Printf("Approved %s\n", id)
		}
		return nil
	}

	change, err := queue.Reject(id)
	if change != nil {
		event.Section, event.Submitter = change.Section, change.UserName
	}
	if err != nil {
		event.ErrorMessage = err.Error()
		audit.Log(event)
		return err
	}
	event.Success = true
	audit.Log(event)
	fmt.Printf("Rejected %s\n", id)
	return nil
}
