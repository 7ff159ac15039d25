//go:build !postgres

package model

import (
	"fmt"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// InitDatabase opens the sqlite database configured for the current mode.
func InitDatabase(cfg *Config) (*Store, error) {
	svr := cfg.Servers[cfg.Mode]
	filename := filepath.Join("db", svr.DBName)
	db, err := gorm.Open(sqlite.Open(filename), gormLoggerFor(cfg, svr))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", filename, err)
	}
	s := &Store{db: db, Config: cfg}
	if err = s.autoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// InitTestDatabase opens an in-memory sqlite database for tests.
func InitTestDatabase() (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, Config: &Config{Mode: "test"}}
	if err = s.autoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}
