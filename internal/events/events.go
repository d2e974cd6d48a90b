// Package events 定义 winbus 组件之间的事件类型
//
// 每个事件类型在聚合器中只有一个实例，通过
// messenger.GetEvent[events.X](agg) 获取。
package events

import (
	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/pkg/types"
)

// SettingsChangedEvent 设置已变更，载荷为变更后的完整设置
type SettingsChangedEvent struct {
	messenger.PubSubEvent[types.Settings]
}

// WindowsRefreshedEvent 窗口列表已刷新
type WindowsRefreshedEvent struct {
	messenger.PubSubEvent[[]types.Window]
}

// ProfileAppliedEvent 某个布局规则已应用
type ProfileAppliedEvent struct {
	messenger.PubSubEvent[types.ProfileApplication]
}

// StatusMessageEvent 状态栏消息
type StatusMessageEvent struct {
	messenger.PubSubEvent[types.StatusMessage]
}

// RefreshRequestedEvent 请求刷新窗口列表
type RefreshRequestedEvent struct {
	messenger.Signal
}
