package windows

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/sync/singleflight"

	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/events"
	"github.com/dep2p/go-winbus/pkg/lib/log"
	"github.com/dep2p/go-winbus/pkg/types"
)

var logger = log.Logger("windows")

// DefaultListTimeout 单次枚举的超时
const DefaultListTimeout = 5 * time.Second

// Refresher 窗口清单刷新器
//
// 订阅 RefreshRequestedEvent（后台线程），并发的刷新请求合并为一次枚举。
// 设置中的 RefreshInterval 大于 0 时按间隔自动请求刷新。
type Refresher struct {
	source    Source
	clk       clock.Clock
	timeout   time.Duration
	refreshed *events.WindowsRefreshedEvent
	status    *events.StatusMessageEvent
	requested *events.RefreshRequestedEvent
	changed   *events.SettingsChangedEvent

	group singleflight.Group

	mu            sync.Mutex
	started       bool
	requestToken  messenger.SubscriptionToken
	settingsToken messenger.SubscriptionToken
	interval      time.Duration
	stopTicker    func()
}

// NewRefresher 创建刷新器
func NewRefresher(source Source, agg *messenger.Aggregator, clk clock.Clock) *Refresher {
	if clk == nil {
		clk = clock.New()
	}
	return &Refresher{
		source:    source,
		clk:       clk,
		timeout:   DefaultListTimeout,
		refreshed: messenger.GetEvent[events.WindowsRefreshedEvent](agg),
		status:    messenger.GetEvent[events.StatusMessageEvent](agg),
		requested: messenger.GetEvent[events.RefreshRequestedEvent](agg),
		changed:   messenger.GetEvent[events.SettingsChangedEvent](agg),
	}
}

// Start 开始响应刷新请求和设置变更
func (r *Refresher) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}

	reqToken, err := r.requested.Subscribe(r.onRequested, messenger.OnThread(messenger.BackgroundThread))
	if err != nil {
		return err
	}
	setToken, err := r.changed.Subscribe(r.onSettings)
	if err != nil {
		r.requested.Unsubscribe(reqToken)
		return err
	}

	r.requestToken, r.settingsToken = reqToken, setToken
	r.started = true
	return nil
}

// Stop 取消订阅并停止自动刷新
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}

	r.requested.Unsubscribe(r.requestToken)
	r.changed.Unsubscribe(r.settingsToken)
	r.setIntervalLocked(0)
	r.started = false
}

func (r *Refresher) onRequested() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_ = r.Refresh(ctx)
}

// Refresh 枚举窗口并发布结果
//
// 枚举失败时发布错误级别的状态消息。
func (r *Refresher) Refresh(ctx context.Context) error {
	_, err, shared := r.group.Do("list", func() (any, error) {
		windows, err := r.source.List(ctx)
		if err != nil {
			logger.Warn("枚举窗口失败", "error", err)
			_ = r.status.Publish(types.StatusMessage{
				Level: types.StatusError,
				Text:  "刷新窗口列表失败: " + err.Error(),
				At:    r.clk.Now(),
			})
			return nil, err
		}

		logger.Debug("窗口列表已刷新", "count", len(windows))
		if err := r.refreshed.Publish(windows); err != nil {
			logger.Warn("窗口列表订阅者出错", "error", err)
		}
		return nil, nil
	})
	if shared {
		logger.Debug("合并并发刷新请求")
	}
	return err
}

// onSettings 按新的刷新间隔重建定时器
func (r *Refresher) onSettings(s types.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		r.setIntervalLocked(s.RefreshInterval)
	}
}

func (r *Refresher) setIntervalLocked(interval time.Duration) {
	if interval == r.interval {
		return
	}
	if r.stopTicker != nil {
		r.stopTicker()
		r.stopTicker = nil
	}
	r.interval = interval
	if interval <= 0 {
		return
	}

	ticker := r.clk.Ticker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := r.requested.Publish(); err != nil {
					logger.Warn("自动刷新请求出错", "error", err)
				}
			case <-done:
				return
			}
		}
	}()
	r.stopTicker = func() {
		ticker.Stop()
		close(done)
	}
	logger.Debug("自动刷新间隔已更新", "interval", interval)
}

// Interval 当前自动刷新间隔，0 表示未启用
func (r *Refresher) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}
