package metrics

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// ConfigFromUnified 从统一配置提取指标配置
func ConfigFromUnified(cfg *config.Config) config.MetricsConfig {
	if cfg == nil {
		return config.DefaultMetricsConfig()
	}
	return cfg.Metrics
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Result Metrics 模块输出
//
// 指标关闭时 Collector 为 nil，Observer 为 NopObserver。
type Result struct {
	fx.Out

	Collector *Collector
	Observer  interfaces.MessengerObserver
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide 按配置创建收集器
func Provide(p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{Observer: NopObserver{}}, nil
	}

	c, err := NewCollector(cfg.Namespace, p.Clock)
	if err != nil {
		return Result{}, err
	}
	return Result{Collector: c, Observer: c}, nil
}

type lifecycleInput struct {
	fx.In

	LC        fx.Lifecycle
	Collector *Collector
}

// registerLifecycle 停止时输出一次汇总
func registerLifecycle(in lifecycleInput) {
	if in.Collector == nil {
		return
	}
	in.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			for _, s := range in.Collector.Snapshot() {
				logger.Debug("事件统计", "stats", s.String())
			}
			return nil
		},
	})
}
