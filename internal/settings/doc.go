// Package settings 管理用户设置
//
// Service 持有当前设置，每次变更都发布 SettingsChangedEvent，
// 并在 AutosaveDelay 之后合并写入存储。Watcher 监听外部设置文件，
// 文件变化时整体替换当前设置。
//
// 存储布局（kv 前缀 "settings/"）：
//
//	meta              活动布局、刷新间隔、布局顺序
//	profile/<name>    单个窗口布局
package settings
