// Package types 定义 winbus 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 winbus 内部包。
// 所有类型都是纯值类型，作为事件载荷在组件之间传递：
//   - window.go   - Window, Rect, Placement
//   - settings.go - WindowProfile, Settings, ProfileApplication
//   - status.go   - StatusMessage, StatusLevel
package types
