package model

import (
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is the database handle shared by all model functions.
type Store struct {
	db     *gorm.DB
	Config *Config
}

// shared helper for GORM logger
func gormLoggerFor(cfg *Config, svr server) *gorm.Config {
	gormConfig := &gorm.Config{}
	switch svr.DBLogger {
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	default:
		if cfg.Mode == "development" {
			gormConfig.Logger = logger.Default.LogMode(logger.Info)
		} else {
			gormConfig.Logger = logger.Default.LogMode(logger.Silent)
		}
	}
	return gormConfig
}

func (s *Store) autoMigrate() error {
	var err error
	if err = s.db.AutoMigrate(&Client{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&AppUser{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&Invoice{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&Account{}); err != nil {
		return err
	}
	if err = s.db.AutoMigrate(&Settings{}); err != nil {
		return err
	}
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_owner_status
         ON invoices(owner_id, status)`)
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_invoices_owner_issue_date
         ON invoices(owner_id, issue_date)`)
	return nil
}
