package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	migrationsDir, err := locateMigrationsDir()
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		log.Fatalf("Failed to open migrations at %s: %v", migrationsDir, err)
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	default:
		log.Fatalf("Unknown command %q: want up or down", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration %s failed: %v", direction, err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Printf("Migration %s complete, schema is empty", direction)
	case err != nil:
		log.Fatalf("Failed to read schema version: %v", err)
	case dirty:
		log.Fatalf("Schema version %d is dirty, fix it before migrating again", version)
	default:
		log.Printf("Migration %s complete, schema at version %d", direction, version)
	}
}

// locateMigrationsDir honors MIGRATIONS_DIR when set, otherwise walks
// up from the working directory so the runner works from the repo root
// and from cmd/migrate alike.
func locateMigrationsDir() (string, error) {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return "", fmt.Errorf("MIGRATIONS_DIR %s is not a directory", abs)
		}
		return abs, nil
	}

	current, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(current, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.New("migrations directory not found, set MIGRATIONS_DIR")
		}
		current = parent
	}
}
