package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/model"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/endpoints"
	"github.com/velumpress/cms/pkg/server/store"
	"github.com/velumpress/cms/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "3001"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 3001
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the CMS application server",
	Long: `Run the CMS application server.

On first start, when no users exist yet, an "admin" account is created.
Its password comes from ADMIN_INITIAL_PASSWORD or is generated and printed
to the log once.

When DATABASE_URL is set, users and pending changes are kept in postgres
and database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if cfg.UsesDatabase() && !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		stores, database, err := openStores(cfg)
		if err != nil {
			fmt.Println("Unable to open storage:", err)
			os.Exit(1)
		}
		persistAudit(database)

		if err := bootstrapAdmin(stores.Users, log.Default()); err != nil {
			fmt.Println("Unable to create the default admin:", err)
			os.Exit(1)
		}

		secret, err := token.ResolveSecret(cfg.DataDir)
		if err != nil {
			fmt.Println("Unable to resolve the token secret:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(cfg, stores, token.NewIssuer(secret, cfg.TokenDuration()), host, port)

		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Printf("Running server at http://%s...\n", s.Addr())
		if err := s.Start(ctx); err != nil {
			log.Fatal(err)
		}
		log.Println("Server stopped")
	},
}

// bootstrapAdmin creates the default admin on an empty users store and
// writes its initial password to logger
func bootstrapAdmin(users store.UsersStore, logger *log.Logger) error {
	password, err := account.EnsureDefaultAdmin(users)
	if err != nil {
		return err
	}
	if password == "" {
		return nil
	}
	logger.Printf("Default admin user created. Username: %s", model.AdminUsername)
	logger.Printf("Initial password: %s", password)
	logger.Println("Change this password immediately from the admin panel.")
	return nil
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
