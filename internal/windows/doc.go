// Package windows 维护顶层窗口清单并计算布局
//
// 窗口枚举和移动依赖平台 API，不在本包范围内：Source 抽象清单来源，
// StaticSource 提供固定清单。Refresher 响应 RefreshRequestedEvent，
// 把最新清单发布为 WindowsRefreshedEvent。Matcher 根据布局规则
// 计算窗口的目标位置。
package windows
