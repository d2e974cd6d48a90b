// Package interfaces 定义 winbus 的公共接口
//
// 接口按依赖方向组织，采用扁平命名：
//
//   - messenger.go - Dispatcher, Scheduler, MessengerObserver
//   - storage.go   - Engine, EngineStats
//
// 实现位于 internal/ 下的对应目录：
//
//	interfaces.Dispatcher        → internal/core/dispatch.UILoop
//	interfaces.Scheduler         → internal/core/dispatch.Pool
//	interfaces.MessengerObserver → internal/core/metrics.Collector
//	interfaces.Engine            → internal/core/storage/engine/badger.Engine
//
// 本包不依赖任何 winbus 内部包。
package interfaces
