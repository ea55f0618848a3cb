package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
)

type seedAdminOptions struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

func newSeedAdminCmd() *cobra.Command {
	opts := &seedAdminOptions{}

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "创建或重置管理员账号",
		Long:  "邮箱已存在时重置密码并提升为管理员,否则新建管理员。未指定--password时从终端读取。",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Password == "" {
				password, err := readPassword(cmd.OutOrStdout(), cmd.InOrStdin())
				if err != nil {
					return err
				}
				opts.Password = password
			}

			_, db, closeDB, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB()

			svc := user.NewService(gormdb.NewUserRepository(db))
			return seedAdmin(cmd.Context(), cmd.OutOrStdout(), svc, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "admin@bookstore.local", "管理员邮箱")
	cmd.Flags().StringVar(&opts.Name, "name", "Demo Admin", "管理员名称")
	cmd.Flags().StringVar(&opts.Phone, "phone", "", "联系电话")
	cmd.Flags().StringVar(&opts.Password, "password", "", "登录密码")
	return cmd
}

func seedAdmin(ctx context.Context, out io.Writer, svc user.Service, opts *seedAdminOptions) error {
	admin, created, err := svc.SeedAdmin(ctx, user.RegisterParams{
		Name:     opts.Name,
		Email:    opts.Email,
		Password: opts.Password,
		Phone:    opts.Phone,
	})
	if err != nil {
		return fmt.Errorf("初始化管理员失败: %w", err)
	}

	action := "已更新"
	if created {
		action = "已创建"
	}
	fmt.Fprintf(out, "✓ 管理员%s\n", action)
	fmt.Fprintf(out, "  - ID: %d\n", admin.ID)
	fmt.Fprintf(out, "  - 邮箱: %s\n", admin.Email)
	return nil
}

// readPassword 终端下不回显读取,管道输入时读一行
func readPassword(out io.Writer, in io.Reader) (string, error) {
	fmt.Fprint(out, "请输入管理员密码: ")

	if f, ok := in.(*os.File); ok && f == os.Stdin && term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("读取密码失败: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("读取密码失败: %w", err)
	}
	fmt.Fprintln(out)
	return strings.TrimSpace(line), nil
}
