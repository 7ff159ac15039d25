package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pelletier/go-toml/v2"

	"github.com/chuta/celo-invoice-app-sub000/controller"
	"github.com/chuta/celo-invoice-app-sub000/model"
)

func runMigrations(cfg *model.Config) error {
	m, err := migrate.New("file://"+migrationsDir(), migrateDSN(cfg))
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func dothings(migrateOnly bool) error {
	data, err := os.ReadFile("config.toml")
	if err != nil {
		return err
	}
	cfg := &model.Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	if migrateOnly {
		return runMigrations(cfg)
	}
	store, err := model.InitDatabase(cfg)
	if err != nil {
		return err
	}
	return controller.NewController(store)
}

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()
	if err := dothings(*migrateOnly); err != nil {
		log.Fatal(err)
	}
}
