package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
)

// stockRow 库存报表行
type stockRow struct {
	ID       string `json:"id"`
	LegacyID *int64 `json:"legacy_id,omitempty"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
}

func newCheckStockCmd() *cobra.Command {
	var low int

	cmd := &cobra.Command{
		Use:   "check-stock",
		Short: "以JSON输出图书库存",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			svc := book.NewService(gormdb.NewBookRepository(db))
			return checkStock(cmd.Context(), cmd.OutOrStdout(), svc, low)
		},
	}

	cmd.Flags().IntVar(&low, "low", -1, "只输出库存不高于该值的图书(-1表示全部)")
	return cmd
}

func checkStock(ctx context.Context, out io.Writer, svc book.Service, low int) error {
	books, err := svc.List(ctx, book.ListParams{})
	if err != nil {
		return fmt.Errorf("查询图书失败: %w", err)
	}

	rows := make([]stockRow, 0, len(books))
	for _, b := range books {
		if low >= 0 && b.Stock > low {
			continue
		}
		rows = append(rows, stockRow{
			ID:       b.ID,
			LegacyID: b.LegacyID,
			Title:    b.Title,
			Author:   b.Author,
			Price:    b.Price.StringFixed(2),
			Stock:    b.Stock,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
