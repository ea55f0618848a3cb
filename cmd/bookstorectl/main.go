// bookstorectl 运维命令行工具
//
//	bookstorectl seed-admin --email admin@example.com
//	bookstorectl check-stock --low 5
//	bookstorectl migrate
//	bookstorectl watch-orders
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/online-bookstore/pkg/logger"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookstorectl",
		Short:         "在线书店运维工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径(默认config/config.yaml)")

	root.AddCommand(
		newSeedAdminCmd(),
		newCheckStockCmd(),
		newMigrateCmd(),
		newWatchOrdersCmd(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// openDB 加载配置并连接数据库,返回的close负责释放连接
func openDB() (*config.Config, *gorm.DB, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := gormdb.NewDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, db, func() { _ = gormdb.Close(db) }, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.EnableCaller)
}
