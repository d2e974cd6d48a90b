// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.Messenger.BackgroundWorkers = 8
//
//	// 从文件加载
//	cfg, err := config.LoadFile("winbus.json")
package config

import "go.uber.org/multierr"

// Config 是 winbus 的完整配置结构
//
// 配置按照功能模块组织：
//   - Log: 日志输出
//   - Messenger: 消息总线调度
//   - Storage: 设置持久化
//   - Metrics: Prometheus 指标
//   - Settings: 设置服务（自动保存、导入文件）
//   - Windows: 静态窗口清单
type Config struct {
	// Log 日志配置
	Log LogConfig `json:"log"`

	// Messenger 消息总线配置
	Messenger MessengerConfig `json:"messenger"`

	// Storage 存储配置
	Storage StorageConfig `json:"storage"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// Settings 设置服务配置
	Settings SettingsConfig `json:"settings"`

	// Windows 窗口清单配置
	Windows WindowsConfig `json:"windows"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Log:       DefaultLogConfig(),
		Messenger: DefaultMessengerConfig(),
		Storage:   DefaultStorageConfig(),
		Metrics:   DefaultMetricsConfig(),
		Settings:  DefaultSettingsConfig(),
		Windows:   DefaultWindowsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 所有子配置都会被检查，错误合并后一次性返回。
func (c *Config) Validate() error {
	return multierr.Combine(
		c.Log.Validate(),
		c.Messenger.Validate(),
		c.Storage.Validate(),
		c.Metrics.Validate(),
		c.Settings.Validate(),
		c.Windows.Validate(),
	)
}
