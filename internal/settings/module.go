package settings

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/core/storage/engine"
	"github.com/dep2p/go-winbus/internal/core/storage/kv"
)

// Params 设置服务依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Engine     engine.Engine
	Aggregator *messenger.Aggregator
	Clock      clock.Clock `optional:"true"`
}

// Module 返回 Fx 模块
//
// 生命周期:
//   - OnStart: 加载设置，配置了 ImportFile 时导入并开始监听
//   - OnStop: 停止监听，写入未保存的变更
func Module() fx.Option {
	return fx.Module("settings",
		fx.Provide(ProvideService),
		fx.Invoke(registerLifecycle),
	)
}

// ConfigFromUnified 从统一配置提取设置服务配置
func ConfigFromUnified(cfg *config.Config) config.SettingsConfig {
	if cfg == nil {
		return config.DefaultSettingsConfig()
	}
	return cfg.Settings
}

// ProvideService 创建设置服务
func ProvideService(p Params) *Service {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	return New(kv.New(p.Engine, KVPrefix), p.Aggregator, p.Clock, cfg.AutosaveDelay.Std())
}

type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config `optional:"true"`
	Service    *Service
}

func registerLifecycle(in lifecycleInput) {
	cfg := ConfigFromUnified(in.UnifiedCfg)

	var (
		watcher *Watcher
		cancel  context.CancelFunc = func() {}
	)

	in.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := in.Service.Load(); err != nil {
				return err
			}
			if cfg.ImportFile == "" {
				return nil
			}

			w, err := NewWatcher(cfg.ImportFile, in.Service)
			if err != nil {
				return err
			}
			// 导入失败只记录，不阻止启动
			_ = w.Import()

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			w.Start(ctx)
			watcher = w
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if watcher != nil {
				_ = watcher.Close()
			}
			return in.Service.Close()
		},
	})
}
