package database

import (
	"context"
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/migrations"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// Migrate 执行内嵌的 goose 迁移，command 为 up / down / status
func Migrate(ctx context.Context, db *gorm.DB, driver, command string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	var dialect, dir string
	switch driver {
	case "postgres":
		dialect, dir = "postgres", "postgres"
	case "sqlite":
		dialect, dir = "sqlite3", "sqlite"
	default:
		return fmt.Errorf("migrations are not supported for driver %q", driver)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, sqlDB, dir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, dir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, dir)
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s failed: %w", command, err)
	}
	return nil
}
