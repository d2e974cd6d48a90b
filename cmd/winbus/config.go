package main

import (
	"strings"

	"github.com/dep2p/go-winbus/config"
)

// ============================================================================
//                              环境变量（CLI 专用）
// ============================================================================

// EnvPrefix 环境变量前缀
const EnvPrefix = "WINBUS_"

const (
	envDataDir     = "DATA_DIR"
	envInMemory    = "IN_MEMORY"
	envLogLevel    = "LOG_LEVEL"
	envLogFile     = "LOG_FILE"
	envMetricsAddr = "METRICS_ADDR"
	envImportFile  = "IMPORT_FILE"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// 支持的环境变量（均使用 WINBUS_ 前缀）：
//   - WINBUS_DATA_DIR: 数据目录
//   - WINBUS_IN_MEMORY: 设置只保存在内存中
//   - WINBUS_LOG_LEVEL: 日志级别
//   - WINBUS_LOG_FILE: 日志文件路径
//   - WINBUS_METRICS_ADDR: /metrics 监听地址
//   - WINBUS_IMPORT_FILE: 监听导入的设置文件
func applyEnvOverrides(cfg *config.Config, lookup func(string) (string, bool)) {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get(envDataDir); ok {
		cfg.Storage.DataDir = v
	}
	if v, ok := get(envInMemory); ok {
		cfg.Storage.InMemory = parseBool(v)
	}
	if v, ok := get(envLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := get(envLogFile); ok {
		cfg.Log.File = v
	}
	if v, ok := get(envMetricsAddr); ok {
		cfg.Metrics.ListenAddr = v
	}
	if v, ok := get(envImportFile); ok {
		cfg.Settings.ImportFile = v
	}
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
