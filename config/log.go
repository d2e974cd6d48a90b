package config

import (
	"fmt"

	"github.com/dep2p/go-winbus/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别: debug/info/warn/error
	// 默认值: "info"
	Level string `json:"level"`

	// Format 输出格式: text/json
	// 默认值: "text"
	Format string `json:"format"`

	// File 日志文件路径，空表示输出到 stderr
	File string `json:"file,omitempty"`
}

// DefaultLogConfig 返回默认的日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c LogConfig) Validate() error {
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
}

// Options 转换为日志初始化选项
func (c LogConfig) Options() log.Options {
	return log.Options{Level: c.Level, Format: c.Format, File: c.File}
}
