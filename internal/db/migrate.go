package db

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/vitorsz/shop-users-api/internal/config"
)

// RunMigrations applies the migrations under internal/db/migrations.
// The only schema the users collection carries is the unique index on
// email, which is what makes concurrent registrations with the same
// address safe.
func RunMigrations(cfg config.DatabaseConfig) {
	migrationsPath, err := filepath.Abs("./internal/db/migrations")
	if err != nil {
		log.Fatal(err)
	}

	// the mongodb migrate driver wants the database name in the URI path
	databaseURL := fmt.Sprintf("%s/%s", strings.TrimRight(cfg.URI, "/"), cfg.Name)

	m, err := migrate.New(
		"file://"+migrationsPath,
		databaseURL,
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal(err)
	}

	log.Println("Migrations applied successfully!")
}
