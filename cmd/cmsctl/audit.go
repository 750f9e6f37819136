package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/audit"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect persisted audit messages",
	Long: `Print the latest audit messages stored in postgres.

Audit messages are persisted only when the server runs with DATABASE_URL;
the file backend writes them to STDOUT alone.

Example:
  cmsctl audit --limit 50`,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		if err := showAudit(limit); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read audit messages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().IntP("limit", "n", 20, "Number of messages to show")
}

func showAudit(limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.UsesDatabase() {
		return fmt.Errorf("DATABASE_URL is required to read persisted audit messages")
	}

	_, database, err := openStores(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	messages, err := audit.NewStore(sqlDB).Recent(limit)
	if err != nil {
		return err
	}
	for _, m := range messages {
		fmt.Printf("%s %-10s %s\n", m.Timestamp.Local().Format(time.RFC3339), m.Msgid, m.Message)
	}
	return nil
}
