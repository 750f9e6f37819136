package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/velumpress/cms/pkg/account"
	"github.com/velumpress/cms/pkg/audit"
	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/db"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/endpoints"
	"github.com/velumpress/cms/pkg/server/store/file"
	gormstore "github.com/velumpress/cms/pkg/server/store/gorm"
	"github.com/velumpress/cms/pkg/token"
)

const (
	adminPassword = "integration-admin-pass"
	seedCountry   = "ve"
	seedLang      = "es"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	RawDB         *sql.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	ContentDir    string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server // For inline mode

	workDir string
}

// NewTestContext creates a new test context with a PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set CMS_BINARY to the path of the cmsctl binary
//   - Inline mode: Set CMS_INLINE=1 to run the server in-process (no binary needed)
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	inlineMode := os.Getenv("CMS_INLINE") == "1"
	binaryPath := os.Getenv("CMS_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either CMS_BINARY or CMS_INLINE=1 is required.\n\nBinary mode:\n  go build -o cmsctl ./cmd/cmsctl\n  INTEGRATION_TEST=1 CMS_BINARY=$(pwd)/cmsctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 CMS_INLINE=1 go test -v ./test/integration/...")
	}

	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("CMS_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("cms_test"),
		tcpostgres.WithUsername("cms"),
		tcpostgres.WithPassword("cms"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://cms:cms@%s:%s/cms_test?sslmode=disable", host, port.Port())

	database, err := db.Connect(db.Config{URL: connStr, MaxOpenConns: 10})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(rawDB, migrationsDir); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	workDir, err := os.MkdirTemp("", "cms-integration-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	dataDir := filepath.Join(workDir, "data")
	contentDir := filepath.Join(workDir, "content")
	if _, err := file.NewContentStore(contentDir).CreateCountry(seedLang, seedCountry, "Venezuela"); err != nil {
		_ = pgContainer.Terminate(ctx)
		_ = os.RemoveAll(workDir)
		return nil, fmt.Errorf("failed to seed content: %w", err)
	}

	serverPort := "18081"
	serverURL := fmt.Sprintf("http://127.0.0.1:%s", serverPort)

	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		inlineServer, cancel, err = startInlineServer(database, dataDir, contentDir, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			_ = os.RemoveAll(workDir)
			return nil, fmt.Errorf("failed to start inline server: %w", err)
		}
	} else {
		serverProcess, cancel, err = startBinary(binaryPath, connStr, dataDir, contentDir, serverPort)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			_ = os.RemoveAll(workDir)
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		_ = pgContainer.Terminate(ctx)
		_ = os.RemoveAll(workDir)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            database,
		RawDB:         rawDB,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		ContentDir:    contentDir,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
		workDir:       workDir,
	}, nil
}

// startInlineServer starts the server in-process (no binary needed)
func startInlineServer(database *gorm.DB, dataDir, contentDir, port string) (*server.Server, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.ContentDir = contentDir
	cfg.MediaDir = filepath.Join(dataDir, "media")

	stores := server.Stores{
		Users:   gormstore.NewUsersStore(database),
		Pending: gormstore.NewPendingStore(database),
		Content: file.NewContentStore(contentDir),
		Health:  gormstore.NewHealthStore(database),
	}

	if err := os.Setenv("ADMIN_INITIAL_PASSWORD", adminPassword); err != nil {
		cancel()
		return nil, nil, err
	}
	if _, err := account.EnsureDefaultAdmin(stores.Users); err != nil {
		cancel()
		return nil, nil, err
	}

	secret, err := token.ResolveSecret(dataDir)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		cancel()
		return nil, nil, err
	}
	audit.DefaultStore = audit.NewStore(sqlDB)

	s := server.NewServer(cfg, stores, token.NewIssuer(secret, cfg.TokenDuration()), "127.0.0.1", port)
	endpoints.RegisterAll(s)

	go func() {
		if err := s.Start(ctx); err != nil {
			log.Printf("inline server: %v", err)
		}
	}()

	return s, cancel, nil
}

// startBinary starts the cmsctl server binary
func startBinary(binaryPath, dbURL, dataDir, contentDir, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	// Use --no-migrate since we already ran migrations in the test setup
	cmd := exec.CommandContext(ctx, binaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"CMS_DATA_DIR="+dataDir,
		"CMS_CONTENT_DIR="+contentDir,
		"CMS_MEDIA_DIR="+filepath.Join(dataDir, "media"),
		"ADMIN_INITIAL_PASSWORD="+adminPassword,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/api/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
	if tc.workDir != "" {
		_ = os.RemoveAll(tc.workDir)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations applies the up migrations in filename order
func runMigrations(sqlDB *sql.DB, migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return err
	}

	for _, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("migration %s: %w", filepath.Base(name), err)
		}
	}

	return nil
}
