// Package lib 包含与架构组件无关的基础设施工具库
//
//   - log: 基于 log/slog 的日志封装
//
// # 使用示例
//
//	import "github.com/dep2p/go-winbus/pkg/lib/log"
//
//	var logger = log.Logger("core/messenger")
package lib
