//go:build !postgres

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite"

	"github.com/chuta/celo-invoice-app-sub000/model"
)

func migrationsDir() string { return "migrations/sqlite" }

func migrateDSN(cfg *model.Config) string {
	svr := cfg.Servers[cfg.Mode]
	dbPath := filepath.Join("db", svr.DBName)
	if !strings.HasPrefix(dbPath, "/") {
		dbPath = "./" + dbPath
	}
	return fmt.Sprintf("sqlite://%s?_foreign_keys=on&_journal_mode=WAL",
		filepath.ToSlash(dbPath))
}
