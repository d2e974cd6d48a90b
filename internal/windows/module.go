package windows

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/internal/core/messenger"
)

// Params 窗口模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Source     Source         `optional:"true"`
	Aggregator *messenger.Aggregator
	Clock      clock.Clock `optional:"true"`
}

// Result 窗口模块输出
type Result struct {
	fx.Out

	Refresher *Refresher
	Matcher   *Matcher
}

// Module 返回 Fx 模块
//
// 未注入 Source 时使用配置中的固定清单。
func Module() fx.Option {
	return fx.Module("windows",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide 创建刷新器和匹配器
func Provide(p Params) (Result, error) {
	source := p.Source
	if source == nil {
		cfg := config.DefaultWindowsConfig()
		if p.UnifiedCfg != nil {
			cfg = p.UnifiedCfg.Windows
		}
		source = NewStaticSource(cfg.Static)
	}

	matcher, err := NewMatcher(DefaultPatternCacheSize)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Refresher: NewRefresher(source, p.Aggregator, p.Clock),
		Matcher:   matcher,
	}, nil
}

func registerLifecycle(lc fx.Lifecycle, r *Refresher) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return r.Start()
		},
		OnStop: func(context.Context) error {
			r.Stop()
			return nil
		},
	})
}
