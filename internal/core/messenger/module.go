package messenger

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 聚合器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config               `optional:"true"`
	Dispatcher interfaces.Dispatcher        `optional:"true"`
	Scheduler  interfaces.Scheduler         `optional:"true"`
	Observer   interfaces.MessengerObserver `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Aggregator *Aggregator
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("messenger",
		fx.Provide(ProvideAggregator),
		fx.Invoke(registerLifecycle),
	)
}

// ConfigFromUnified 从统一配置提取消息总线配置
func ConfigFromUnified(cfg *config.Config) config.MessengerConfig {
	if cfg == nil {
		return config.DefaultMessengerConfig()
	}
	return cfg.Messenger
}

// ProvideAggregator 提供 Aggregator 实例
func ProvideAggregator(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	return Result{
		Aggregator: NewAggregator(
			WithDispatcher(p.Dispatcher),
			WithScheduler(p.Scheduler),
			WithObserver(p.Observer),
			WithFaultRoute(cfg.RouteFaults),
			WithFaultLogLimit(cfg.FaultLogRate, cfg.FaultLogBurst),
		),
	}
}

type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	Aggregator *Aggregator
}

// registerLifecycle 注册生命周期
//
// 聚合器没有需要释放的资源，停止时只记录已创建的通道。
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Debug("消息总线停止", "events", input.Aggregator.EventTypes())
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "messenger"
	// Description 模块描述
	Description = "进程内发布/订阅消息总线，支持弱引用订阅和三种调度策略"
)
