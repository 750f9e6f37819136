package main

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/velumpress/cms/pkg/audit"
	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/db"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/store/file"
	gormstore "github.com/velumpress/cms/pkg/server/store/gorm"
)

func loadConfig() (*config.CMSConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStores builds the repositories selected by the configuration. The
// content tree always lives on disk; users and pending changes move to
// postgres when a database URL is configured.
func openStores(cfg *config.CMSConfig) (server.Stores, *gorm.DB, error) {
	stores := server.Stores{
		Content: file.NewContentStore(cfg.ContentDir),
	}

	if !cfg.UsesDatabase() {
		stores.Users = file.NewUsersStore(cfg.UsersFile())
		stores.Pending = file.NewPendingStore(cfg.PendingFile())
		stores.Health = file.NewHealthStore(cfg.DataDir, cfg.ContentDir)
		return stores, nil, nil
	}

	database, err := db.Connect(db.FromCMSConfig(cfg))
	if err != nil {
		return stores, nil, err
	}
	stores.Users = gormstore.NewUsersStore(database)
	stores.Pending = gormstore.NewPendingStore(database)
	stores.Health = gormstore.NewHealthStore(database)
	return stores, database, nil
}

// persistAudit routes audit events into the audit_messages table
func persistAudit(database *gorm.DB) {
	if database == nil {
		return
	}
	sqlDB, err := database.DB()
	if err != nil {
		log.Printf("audit persistence disabled: %v", err)
		return
	}
	audit.DefaultStore = audit.NewStore(sqlDB)
}
