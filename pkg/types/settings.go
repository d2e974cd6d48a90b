package types

import (
	"errors"
	"fmt"
	"time"
)

// WindowProfile 窗口布局规则
//
// ProcessName 为空表示匹配任意进程；TitlePattern 支持 glob（*, ?）
// 或以 "re:" 开头的正则表达式，为空表示匹配任意标题。
type WindowProfile struct {
	Name         string `json:"name"`
	ProcessName  string `json:"process_name,omitempty"`
	TitlePattern string `json:"title_pattern,omitempty"`
	Bounds       Rect   `json:"bounds"`
}

// Validate 检查规则是否可用
func (p WindowProfile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name cannot be empty")
	}
	if p.Bounds.Empty() {
		return fmt.Errorf("profile %q: bounds must have positive size", p.Name)
	}
	return nil
}

// Settings 用户设置
type Settings struct {
	// Profiles 窗口布局规则，按名称唯一
	Profiles []WindowProfile `json:"profiles"`

	// ActiveProfile 最近一次应用的规则名
	ActiveProfile string `json:"active_profile,omitempty"`

	// RefreshInterval 窗口列表自动刷新间隔，0 表示仅手动刷新
	RefreshInterval time.Duration `json:"refresh_interval"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() Settings {
	return Settings{
		Profiles: []WindowProfile{},
	}
}

// Profile 按名称查找规则
func (s Settings) Profile(name string) (WindowProfile, bool) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return WindowProfile{}, false
}

// Clone 深拷贝，避免订阅者之间共享切片
func (s Settings) Clone() Settings {
	out := s
	out.Profiles = append([]WindowProfile(nil), s.Profiles...)
	return out
}

// Validate 检查设置的有效性
func (s Settings) Validate() error {
	if s.RefreshInterval < 0 {
		return errors.New("refresh interval cannot be negative")
	}
	seen := make(map[string]struct{}, len(s.Profiles))
	for _, p := range s.Profiles {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	if s.ActiveProfile != "" {
		if _, ok := seen[s.ActiveProfile]; !ok {
			return fmt.Errorf("active profile %q not found", s.ActiveProfile)
		}
	}
	return nil
}

// ProfileApplication 一次规则应用的结果
type ProfileApplication struct {
	Profile    WindowProfile `json:"profile"`
	Placements []Placement   `json:"placements"`
}
