package config

import (
	"fmt"
	"time"
)

// SettingsConfig 设置服务配置
type SettingsConfig struct {
	// AutosaveDelay 设置变更后延迟保存的时间，合并连续修改
	// 默认值: 2s
	AutosaveDelay Duration `json:"autosave_delay"`

	// ImportFile 外部设置文件，文件变化时自动导入；空表示不监听
	ImportFile string `json:"import_file,omitempty"`
}

// DefaultSettingsConfig 返回默认的设置服务配置
func DefaultSettingsConfig() SettingsConfig {
	return SettingsConfig{
		AutosaveDelay: Duration(2 * time.Second),
	}
}

// Validate 验证设置服务配置
func (c SettingsConfig) Validate() error {
	if c.AutosaveDelay < 0 {
		return fmt.Errorf("settings: autosave_delay cannot be negative")
	}
	return nil
}
