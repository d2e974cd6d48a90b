package viewmodel

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/windows"
	"github.com/dep2p/go-winbus/pkg/types"
)

// Module 返回 Fx 模块
//
// 视图模型在模块停止时取消订阅。
func Module() fx.Option {
	return fx.Module("viewmodel",
		fx.Provide(
			ProvideWindowList,
			ProvideStatusBar,
		),
	)
}

// ProvideWindowList 创建窗口列表视图模型
func ProvideWindowList(lc fx.Lifecycle, agg *messenger.Aggregator, matcher *windows.Matcher) (*WindowList, error) {
	vm, err := NewWindowList(agg, matcher)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func(context.Context) error {
		vm.Close()
		return nil
	}))
	return vm, nil
}

// ProvideStatusBar 创建状态栏视图模型，接收全部级别的消息
func ProvideStatusBar(lc fx.Lifecycle, agg *messenger.Aggregator) (*StatusBar, error) {
	sb, err := NewStatusBar(agg, types.StatusInfo, DefaultHistorySize)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func(context.Context) error {
		sb.Close()
		return nil
	}))
	return sb, nil
}
