package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/pkg/logger"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

// @title           Online Bookstore API
// @version         1.0
// @description     在线书店:图书目录、下单与订单管理
// @BasePath        /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 格式: Bearer <access_token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 加载配置失败: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.EnableCaller)
	if err != nil {
		log.Fatalf("❌ 初始化日志失败: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	zap.ReplaceGlobals(zapLogger)

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库驱动: %s\n", cfg.Database.Driver)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	shutdownTracer := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracer, err = tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			zapLogger.Fatal("初始化链路追踪失败", zap.Error(err))
		}
		fmt.Printf("✓ 链路追踪已启用: %s\n", cfg.Tracing.Endpoint)
	}

	engine, cleanup, err := InitializeApp(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化应用失败", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功: http://localhost%s\n", srv.Addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", srv.Addr)
		fmt.Printf("   接口文档: http://localhost%s/swagger/index.html\n", srv.Addr)
		if cfg.Metrics.Enabled {
			fmt.Printf("   监控指标: http://localhost%s%s\n", srv.Addr, cfg.Metrics.Path)
		}
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("HTTP服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n⏳ 正在优雅关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("HTTP服务强制关闭", zap.Error(err))
	}
	cleanup()
	if err := shutdownTracer(ctx); err != nil {
		zapLogger.Warn("关闭链路追踪失败", zap.Error(err))
	}
	fmt.Println("👋 服务已关闭")
}
