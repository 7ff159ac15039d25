//go:build postgres

package model

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDatabase opens the postgres database configured for the current mode.
func InitDatabase(cfg *Config) (*Store, error) {
	svr := cfg.Servers[cfg.Mode]
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=5432 sslmode=disable TimeZone=UTC",
		svr.DBHost, svr.DBUser, svr.DBPassword, svr.DBName)
	db, err := gorm.Open(postgres.Open(dsn), gormLoggerFor(cfg, svr))
	if err != nil {
		return nil, fmt.Errorf("open postgres database %s: %w", svr.DBName, err)
	}
	s := &Store{db: db, Config: cfg}
	if err = s.autoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}
