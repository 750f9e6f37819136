package main

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/velumpress/cms/db"
)

// migrationsDirEnv points the db commands at a directory of SQL files instead
// of the migrations compiled into the binary
const migrationsDirEnv = "CMS_MIGRATIONS_DIR"

// migrationSource describes where the schema files come from
type migrationSource struct {
	dir   string
	files fs.FS
}

func currentMigrationSource() (migrationSource, error) {
	if dir := os.Getenv(migrationsDirEnv); dir != "" {
		return migrationSource{dir: dir, files: os.DirFS(dir)}, nil
	}
	sub, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return migrationSource{}, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migrationSource{files: sub}, nil
}

func (src migrationSource) String() string {
	if src.dir != "" {
		return "file://" + src.dir
	}
	return "embedded"
}

func (src migrationSource) open(dbURL string) (*migrate.Migrate, error) {
	if src.dir != "" {
		return migrate.New("file://"+src.dir, dbURL)
	}
	d, err := iofs.New(src.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}
	return migrate.NewWithSourceInstance("iofs", d, dbURL)
}

// upMigrations lists the forward migrations in version order
func upMigrations(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func createMigrateInstance(dbURL string) (*migrate.Migrate, error) {
	src, err := currentMigrationSource()
	if err != nil {
		return nil, err
	}
	fmt.Printf("Using %s migrations\n", src)
	return src.open(dbURL)
}
