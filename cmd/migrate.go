package cmd

import (
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/database"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Run SQL schema migrations",
	Long:      `Apply, roll back or list the SQL migrations for the postgres or sqlite driver selected by storage.driver.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "status"},
	RunE:      runMigrate,
}

func init() {
	migrateCmd.Flags().String("storage", "", "database driver (postgres, sqlite), overrides storage.driver")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log)

	driver := cfg.Storage.Driver
	if driver != "postgres" && driver != "sqlite" {
		return fmt.Errorf("migrations need storage driver postgres or sqlite, got %q (use --storage)", driver)
	}

	db, err := database.Open(driver, cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(cmd.Context(), db, driver, args[0]); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"driver": driver, "command": args[0]}).Info("migration finished")
	return nil
}
