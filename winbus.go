package winbus

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/core/metrics"
	"github.com/dep2p/go-winbus/internal/settings"
	"github.com/dep2p/go-winbus/internal/viewmodel"
	"github.com/dep2p/go-winbus/internal/windows"
	"github.com/dep2p/go-winbus/pkg/lib/log"
)

var logger = log.Logger("winbus")

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "winbus " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Aggregator 事件聚合器
	Aggregator = messenger.Aggregator
	// SubscriptionToken 订阅令牌
	SubscriptionToken = messenger.SubscriptionToken
	// ThreadOption 处理器调度策略
	ThreadOption = messenger.ThreadOption
	// SubscribeOption 订阅选项
	SubscribeOption = messenger.SubscribeOption
	// Signal 无载荷事件
	Signal = messenger.Signal
	// FaultReport 处理器故障报告
	FaultReport = messenger.FaultReport
	// DeadLetterEvent 异步处理器故障事件
	DeadLetterEvent = messenger.DeadLetterEvent
	// WindowList 窗口列表视图模型
	WindowList = viewmodel.WindowList
	// StatusBar 状态栏视图模型
	StatusBar = viewmodel.StatusBar
	// SettingsService 设置服务
	SettingsService = settings.Service
	// WindowSource 窗口清单来源
	WindowSource = windows.Source
)

// PubSubEvent 带载荷的事件，自定义事件类型通过嵌入它声明
type PubSubEvent[T any] = messenger.PubSubEvent[T]

// 调度策略
const (
	PublisherThread  = messenger.PublisherThread
	UIThread         = messenger.UIThread
	BackgroundThread = messenger.BackgroundThread
)

// OnThread 指定处理器的调度策略
func OnThread(thread ThreadOption) SubscribeOption {
	return messenger.OnThread(thread)
}

// ════════════════════════════════════════════════════════════════════════════
//                              App
// ════════════════════════════════════════════════════════════════════════════

const (
	// startTimeout Fx App 启动超时
	startTimeout = 15 * time.Second
)

// App winbus 应用
//
// 由 New 创建，Start 启动全部组件，Stop 之后不能再次启动。
type App struct {
	config *config.Config
	app    *fx.App

	aggregator *messenger.Aggregator
	windowList *viewmodel.WindowList
	statusBar  *viewmodel.StatusBar
	settings   *settings.Service
	collector  *metrics.Collector

	mu      sync.Mutex
	started bool
	closed  bool
}

// New 创建应用但不启动
//
//	app, err := winbus.New(
//	    winbus.WithConfigFile("winbus.json"),
//	    winbus.WithInMemoryStorage(),
//	)
func New(opts ...Option) (*App, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	a := &App{config: o.config}
	app, err := buildFxApp(o, a)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	a.app = app
	return a, nil
}

// Start 启动全部组件
//
// 启动顺序：调度 → 指标 → 消息总线 → 存储 → 窗口 → 设置 → 视图模型。
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrAppClosed
	}
	if a.started {
		return ErrAlreadyStarted
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	logger.Info("正在启动", "version", Version)
	if err := a.app.Start(startCtx); err != nil {
		logger.Error("启动失败", "error", err)
		return fmt.Errorf("start: %w", err)
	}
	a.started = true
	logger.Info("启动完成")
	return nil
}

// Stop 停止全部组件
//
// 排空 UI 队列，等待后台处理器结束，并写入未保存的设置。
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if !a.started {
		return nil
	}

	logger.Info("正在停止")
	if err := a.app.Stop(ctx); err != nil {
		logger.Warn("停止时出错", "error", err)
		return fmt.Errorf("stop: %w", err)
	}
	logger.Info("已停止")
	return nil
}

// Config 返回生效的配置
func (a *App) Config() *config.Config {
	return a.config
}

// Aggregator 返回事件聚合器
func (a *App) Aggregator() *Aggregator {
	return a.aggregator
}

// WindowList 返回窗口列表视图模型
func (a *App) WindowList() *WindowList {
	return a.windowList
}

// StatusBar 返回状态栏视图模型
func (a *App) StatusBar() *StatusBar {
	return a.statusBar
}

// Settings 返回设置服务
func (a *App) Settings() *SettingsService {
	return a.settings
}

// MetricsHandler 返回 /metrics 处理器，指标关闭时返回 404
func (a *App) MetricsHandler() http.Handler {
	if a.collector == nil {
		return http.NotFoundHandler()
	}
	return a.collector.Handler()
}

// MetricsSnapshot 返回按事件统计的快照，指标关闭时为 nil
func (a *App) MetricsSnapshot() []metrics.EventStats {
	if a.collector == nil {
		return nil
	}
	return a.collector.Snapshot()
}

// GetEvent 获取事件类型 E 的共享实例
func GetEvent[E any, PE interface {
	*E
	messenger.Channel
}](a *Aggregator) PE {
	return messenger.GetEvent[E, PE](a)
}
