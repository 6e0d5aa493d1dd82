package cmd

import (
	"github.com/RigelNana/arkstudy/services/admin-service/router"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// frontendCmd 前端单独部署时使用，只有健康检查
var frontendCmd = &cobra.Command{
	Use:   "frontend",
	Short: "Start the health-only frontend server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cfg.Log)
		gin.SetMode(cfg.Server.Mode)
		return runHTTP(router.SetupHealthOnly(log), cfg, log)
	},
}
