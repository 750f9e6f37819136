package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/moderation"
)

// pendingCmd represents the pending command
var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Review the moderation queue",
	Long:  `List, approve and reject changes editors submitted for approval.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'pending' requires a subcommand (list, approve, reject, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func openQueue() (*moderation.Queue, *config.CMSConfig, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	stores, _, err := openStores(cfg)
	if err != nil {
		return nil, nil, err
	}
	return moderation.NewQueue(stores.Pending, stores.Content, cfg.ApplyOnApprove), cfg, nil
}
