package cmd

import (
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"github.com/RigelNana/arkstudy/services/admin-service/router"
	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/RigelNana/arkstudy/services/admin-service/storage"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin API server",
	Long: `Start the admin API server. Every flag can also be set in the config file
or through environment variables prefixed with EDUDASH_ (e.g. EDUDASH_STORAGE_DRIVER=bolt).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("storage", "memory", "storage driver (memory, postgres, sqlite, bolt)")
	serveCmd.Flags().String("upload-dir", "uploads", "directory for uploaded files when upload.backend is local")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log)
	gin.SetMode(cfg.Server.Mode)
	ctx := cmd.Context()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("failed to close storage")
		}
	}()

	admin, err := repository.Seed(ctx, store, repository.SeedOptions{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
		DemoData:      cfg.Seed.Demo,
	})
	if err != nil {
		return err
	}
	log.WithField("admin_id", admin.ID).Info("admin account ready")

	sink, err := storage.NewSink(ctx, cfg.Upload, cfg.MinIO)
	if err != nil {
		return err
	}

	r := router.Setup(router.Dependencies{
		Store:   store,
		Uploads: service.NewUploadService(store, sink, cfg.Upload.MaxBytes, log),
		AdminID: admin.ID,
		Log:     log,
	})
	return runHTTP(r, cfg, log)
}
