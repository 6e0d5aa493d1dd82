package cmd

import (
	"context"
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/RigelNana/arkstudy/services/admin-service/database"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/bolt"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/memory"
	"github.com/RigelNana/arkstudy/services/admin-service/repository/relational"
	"github.com/sirupsen/logrus"
)

// openStorage 按 storage.driver 选择存储实现
func openStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.Storage, error) {
	switch driver := cfg.Storage.Driver; driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case "bolt":
		store, err := bolt.Open(cfg.Bolt.Path)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.Bolt.Path).Info("bolt storage opened")
		return store, nil
	case "postgres", "sqlite":
		db, err := database.Open(driver, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := relational.AutoMigrate(db.WithContext(ctx)); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		log.WithField("driver", driver).Info("database connected")
		return relational.New(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
