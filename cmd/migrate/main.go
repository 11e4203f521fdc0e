package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"emedica-be/internal/config"
	"emedica-be/internal/db"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	_ = godotenv.Load()

	mode := flag.String("mode", "up", "migration mode: up, down or version")
	flag.Parse()

	conn, err := open()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	m, err := db.NewMigrator(conn)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(m, *mode, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// open prefers DB_URL and falls back to the server's DB_* settings.
func open() (*sql.DB, error) {
	if dbURL := os.Getenv("DB_URL"); dbURL != "" {
		conn, err := sql.Open("postgres", dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect db: %w", err)
		}
		return conn, nil
	}
	return db.NewDatabase(config.LoadConfig())
}

func run(m migrator, mode string, out io.Writer) error {
	switch mode {
	case "up":
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				fmt.Fprintln(out, "no new migrations")
				return nil
			}
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "all new migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil {
			if errors.Is(err, migrate.ErrNoChange) || errors.Is(err, migrate.ErrNilVersion) {
				fmt.Fprintln(out, "no migrations to roll back")
				return nil
			}
			return fmt.Errorf("rollback failed: %w", err)
		}
		fmt.Fprintln(out, "rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "no migrations applied")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(out, "version %d (dirty: %t)\n", version, dirty)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'version')", mode)
	}
	return nil
}
