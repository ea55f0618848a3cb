// Package logger 基于zap的结构化日志
//
// New按配置构建*zap.Logger并替换zap全局Logger,
// 未注入Logger的位置(如response.Error)通过zap.L()使用同一实例。
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New 创建Logger
// - level: debug | info | warn | error
// - format: console | json
// - output: stdout | stderr | 文件路径
func New(level, format, output string, enableCaller bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("无效的日志级别: %s", level)
	}

	encoding := "console"
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	if format == "json" {
		encoding = "json"
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if output == "" {
		output = "stdout"
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Development:       false,
		DisableCaller:     !enableCaller,
		DisableStacktrace: lvl > zapcore.DebugLevel,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("创建Logger失败: %w", err)
	}

	zap.ReplaceGlobals(l)
	return l, nil
}
