package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "迁移数据库表结构",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			// auto_migrate开启时NewDB已经迁移过
			if !cfg.Database.AutoMigrate {
				if err := gormdb.AutoMigrate(db); err != nil {
					return fmt.Errorf("数据库迁移失败: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ 表结构已是最新 (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
