package config

import (
	"fmt"

	"github.com/dep2p/go-winbus/pkg/types"
)

// WindowsConfig 窗口清单配置
//
// 窗口枚举属于平台相关代码，不在本仓库范围内；
// Static 提供一份固定清单，供演示和测试使用。
type WindowsConfig struct {
	// Static 固定窗口清单
	Static []types.Window `json:"static,omitempty"`
}

// DefaultWindowsConfig 返回默认的窗口清单配置
func DefaultWindowsConfig() WindowsConfig {
	return WindowsConfig{}
}

// Validate 验证窗口清单配置
func (c WindowsConfig) Validate() error {
	seen := make(map[uint64]struct{}, len(c.Static))
	for _, w := range c.Static {
		if _, dup := seen[w.Handle]; dup {
			return fmt.Errorf("windows: duplicate handle %d", w.Handle)
		}
		seen[w.Handle] = struct{}{}
	}
	return nil
}
