package cmd

import (
	"fmt"
	"os"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "1.0.0"
)

var (
	configFile string

	// RootCmd 不带子命令时只打印帮助
	RootCmd = &cobra.Command{
		Use:   "edudash",
		Short: "educational content admin dashboard",
		Long: fmt.Sprintf(`edudash (v%s)

后台管理服务：考试局、科目、学习资料、笔记和往年真题的增删改查，
以及资料上传和仪表盘统计。`, Version),
		SilenceUsage: true,
	}
)

func init() {
	RootCmd.AddCommand(serveCmd)
	RootCmd.AddCommand(frontendCmd)
	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-format", "json", "log format (json, text)")
	RootCmd.PersistentFlags().String("port", "5000", "HTTP listen port")
}

// loadConfig 合并默认值、.env、环境变量、配置文件和命令行参数
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadEnvFiles()

	v := viper.GetViper()
	config.SetDefaults(v)

	flags := map[string]string{
		"log.level":      "log-level",
		"log.format":     "log-format",
		"server.port":    "port",
		"storage.driver": "storage",
		"upload.dir":     "upload-dir",
	}
	for key, name := range flags {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, err
		}
	}
	return config.Load(v, configFile)
}

// Execute 由 main.main 调用
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
