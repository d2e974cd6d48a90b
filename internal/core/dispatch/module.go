package dispatch

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// Params 调度模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result 调度模块输出
type Result struct {
	fx.Out

	Loop       *UILoop
	Pool       *Pool
	Dispatcher interfaces.Dispatcher
	Scheduler  interfaces.Scheduler
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("dispatch",
		fx.Provide(Provide),
		fx.Invoke(registerLifecycle),
	)
}

// Provide 创建 UI 循环和后台调度器
func Provide(p Params) Result {
	cfg := config.DefaultMessengerConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Messenger
	}

	loop := NewUILoop(cfg.UIQueueWarn)
	pool := NewPool(cfg.BackgroundWorkers)
	return Result{
		Loop:       loop,
		Pool:       pool,
		Dispatcher: loop,
		Scheduler:  pool,
	}
}

type lifecycleInput struct {
	fx.In

	LC   fx.Lifecycle
	Loop *UILoop
	Pool *Pool
}

// registerLifecycle 启动时运行 UI 循环，停止时先排空 UI 队列再等待后台任务
func registerLifecycle(in lifecycleInput) {
	ctx, cancel := context.WithCancel(context.Background())

	in.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			in.Loop.Start(ctx)
			logger.Debug("调度模块已启动")
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			defer cancel()
			if err := in.Loop.Close(stopCtx); err != nil {
				return err
			}
			return in.Pool.Close(stopCtx)
		},
	})
}
