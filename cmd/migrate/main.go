package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"startup-directory.backend/internal/config"
	"startup-directory.backend/internal/infrastructure/migrations"
)

type migrateDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	open    func(dsn string) (*sql.DB, error)
	up      func(db *sql.DB) (uint, error)
	steps   func(db *sql.DB, n int) (uint, error)
	out     io.Writer
}

func defaultMigrateDeps() migrateDeps {
	return migrateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		open:    func(dsn string) (*sql.DB, error) { return sql.Open("postgres", dsn) },
		up:      migrations.Up,
		steps:   migrations.Steps,
		out:     os.Stdout,
	}
}

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of migrations to apply; 0 means all for up and one for down")
	flag.Parse()

	if err := run(defaultMigrateDeps(), *direction, *steps); err != nil {
		log.Fatal(err)
	}
}

func validateFlags(direction string, steps int) error {
	if direction != "up" && direction != "down" {
		return fmt.Errorf("invalid direction: %s (allowed: up, down)", direction)
	}
	if steps < 0 {
		return errors.New("steps must not be negative")
	}
	return nil
}

func run(d migrateDeps, direction string, steps int) error {
	if err := validateFlags(direction, steps); err != nil {
		return err
	}
	if err := d.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := d.loadCfg()
	db, err := d.open(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var version uint
	switch {
	case direction == "up" && steps == 0:
		version, err = d.up(db)
	case direction == "up":
		version, err = d.steps(db, steps)
	default:
		if steps == 0 {
			steps = 1
		}
		version, err = d.steps(db, -steps)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(d.out, "schema version: %d\n", version)
	return nil
}
