package viewmodel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/events"
	"github.com/dep2p/go-winbus/internal/windows"
	"github.com/dep2p/go-winbus/pkg/lib/log"
	"github.com/dep2p/go-winbus/pkg/types"
)

var logger = log.Logger("viewmodel")

// ErrUnknownProfile 布局不存在
var ErrUnknownProfile = errors.New("viewmodel: unknown profile")

// WindowList 窗口列表视图模型
type WindowList struct {
	matcher   *windows.Matcher
	refreshed *events.WindowsRefreshedEvent
	changed   *events.SettingsChangedEvent
	requested *events.RefreshRequestedEvent
	applied   *events.ProfileAppliedEvent
	status    *events.StatusMessageEvent

	mu       sync.RWMutex
	windows  []types.Window
	profiles []types.WindowProfile
	active   string
	tokens   []messenger.SubscriptionToken
	closed   bool

	changes chan struct{}
}

// NewWindowList 创建窗口列表并订阅窗口和设置变更
func NewWindowList(agg *messenger.Aggregator, matcher *windows.Matcher) (*WindowList, error) {
	vm := &WindowList{
		matcher:   matcher,
		refreshed: messenger.GetEvent[events.WindowsRefreshedEvent](agg),
		changed:   messenger.GetEvent[events.SettingsChangedEvent](agg),
		requested: messenger.GetEvent[events.RefreshRequestedEvent](agg),
		applied:   messenger.GetEvent[events.ProfileAppliedEvent](agg),
		status:    messenger.GetEvent[events.StatusMessageEvent](agg),
		changes:   make(chan struct{}, 1),
	}

	ui := messenger.OnThread(messenger.UIThread)
	winToken, err := messenger.SubscribeWeak(&vm.refreshed.PubSubEvent, vm, (*WindowList).onWindows, ui)
	if err != nil {
		return nil, err
	}
	setToken, err := messenger.SubscribeWeak(&vm.changed.PubSubEvent, vm, (*WindowList).onSettings, ui)
	if err != nil {
		vm.refreshed.Unsubscribe(winToken)
		return nil, err
	}

	vm.tokens = []messenger.SubscriptionToken{winToken, setToken}
	return vm, nil
}

func (vm *WindowList) onWindows(ws []types.Window) {
	vm.mu.Lock()
	vm.windows = append([]types.Window(nil), ws...)
	vm.mu.Unlock()
	notify(vm.changes)
}

func (vm *WindowList) onSettings(s types.Settings) {
	vm.mu.Lock()
	vm.profiles = append([]types.WindowProfile(nil), s.Profiles...)
	vm.active = s.ActiveProfile
	vm.mu.Unlock()
	notify(vm.changes)
}

// Windows 当前窗口列表
func (vm *WindowList) Windows() []types.Window {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]types.Window(nil), vm.windows...)
}

// Profiles 当前布局规则
func (vm *WindowList) Profiles() []types.WindowProfile {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return append([]types.WindowProfile(nil), vm.profiles...)
}

// ActiveProfile 最近应用的布局
func (vm *WindowList) ActiveProfile() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.active
}

// Changes 列表或布局变化时收到通知（合并）
func (vm *WindowList) Changes() <-chan struct{} {
	return vm.changes
}

// Refresh 请求刷新窗口列表
func (vm *WindowList) Refresh() error {
	return vm.requested.Publish()
}

// Apply 按名称应用布局
//
// 计算移动计划并发布 ProfileAppliedEvent 和一条状态消息。
func (vm *WindowList) Apply(name string) (types.ProfileApplication, error) {
	vm.mu.RLock()
	var (
		profile types.WindowProfile
		found   bool
	)
	for _, p := range vm.profiles {
		if p.Name == name {
			profile, found = p, true
			break
		}
	}
	current := append([]types.Window(nil), vm.windows...)
	vm.mu.RUnlock()

	if !found {
		return types.ProfileApplication{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}

	placements, err := vm.matcher.Plan(profile, current)
	if err != nil {
		vm.publishStatus(types.StatusError, "应用布局失败: "+err.Error())
		return types.ProfileApplication{}, err
	}

	app := types.ProfileApplication{Profile: profile, Placements: placements}
	logger.Info("应用布局", "profile", name, "placements", len(placements))
	if err := vm.applied.Publish(app); err != nil {
		logger.Warn("布局应用订阅者出错", "error", err)
	}
	vm.publishStatus(types.StatusInfo, fmt.Sprintf("已应用布局 %s，移动 %d 个窗口", name, len(placements)))
	return app, nil
}

func (vm *WindowList) publishStatus(level types.StatusLevel, text string) {
	msg := types.StatusMessage{Level: level, Text: text, At: time.Now()}
	if err := vm.status.Publish(msg); err != nil {
		logger.Warn("状态消息订阅者出错", "error", err)
	}
}

// Close 取消订阅，多次调用是安全的
func (vm *WindowList) Close() {
	vm.mu.Lock()
	if vm.closed {
		vm.mu.Unlock()
		return
	}
	vm.closed = true
	tokens := vm.tokens
	vm.tokens = nil
	vm.mu.Unlock()

	vm.refreshed.Unsubscribe(tokens[0])
	vm.changed.Unsubscribe(tokens[1])
}
