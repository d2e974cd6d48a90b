package winbus

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-winbus/internal/core/dispatch"
	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/core/metrics"
	"github.com/dep2p/go-winbus/internal/core/storage"
	"github.com/dep2p/go-winbus/internal/settings"
	"github.com/dep2p/go-winbus/internal/viewmodel"
	"github.com/dep2p/go-winbus/internal/windows"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. Core: dispatch → metrics → messenger → storage
//  2. Consumers: windows → settings → viewmodel
//
// windows 必须在 settings 之前：刷新器在启动时订阅设置变更，
// 设置服务随后加载并发布初始设置。
func buildFxApp(o *options, a *App) (*fx.App, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(o.config),

		dispatch.Module(),
		metrics.Module(),
		messenger.Module(),
		storage.Module(),
		windows.Module(),
		settings.Module(),
		viewmodel.Module(),
	}

	if o.dispatcher != nil {
		d := o.dispatcher
		modules = append(modules, fx.Decorate(func(interfaces.Dispatcher) interfaces.Dispatcher {
			return d
		}))
	}
	if o.source != nil {
		src := o.source
		modules = append(modules, fx.Provide(func() windows.Source { return src }))
	}

	modules = append(modules, o.fxOptions...)

	modules = append(modules, fx.Populate(
		&a.aggregator,
		&a.windowList,
		&a.statusBar,
		&a.settings,
		&a.collector,
	))

	logger, err := fxLogger(o.verbose)
	if err != nil {
		return nil, err
	}
	modules = append(modules, logger)

	return fx.New(modules...), nil
}

// fxLogger 默认关闭容器日志，verbose 时输出到 zap 开发 logger
func fxLogger(verbose bool) (fx.Option, error) {
	if !verbose {
		return fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}), nil
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create container logger: %w", err)
	}
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: zl}
	}), nil
}
