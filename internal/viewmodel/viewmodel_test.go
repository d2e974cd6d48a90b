package viewmodel

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-winbus/internal/core/dispatch"
	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/events"
	"github.com/dep2p/go-winbus/internal/windows"
	"github.com/dep2p/go-winbus/pkg/types"
)

var testWindows = []types.Window{
	{Handle: 1, ProcessName: "code", Title: "main.go", Bounds: types.Rect{Width: 800, Height: 600}},
	{Handle: 2, ProcessName: "firefox", Title: "docs", Bounds: types.Rect{Width: 800, Height: 600}},
}

var testSettings = types.Settings{
	Profiles: []types.WindowProfile{
		{Name: "code", ProcessName: "code", Bounds: types.Rect{Width: 1600, Height: 1000}},
	},
}

func newMatcher(t *testing.T) *windows.Matcher {
	t.Helper()
	m, err := windows.NewMatcher(0)
	require.NoError(t, err)
	return m
}

// TestWindowList_ReceivesEvents 测试窗口和设置变更更新视图模型
func TestWindowList_ReceivesEvents(t *testing.T) {
	agg := messenger.NewAggregator()
	vm, err := NewWindowList(agg, newMatcher(t))
	require.NoError(t, err)
	defer vm.Close()

	require.NoError(t, messenger.GetEvent[events.WindowsRefreshedEvent](agg).Publish(testWindows))
	require.NoError(t, messenger.GetEvent[events.SettingsChangedEvent](agg).Publish(testSettings))

	assert.Len(t, vm.Windows(), 2)
	require.Len(t, vm.Profiles(), 1)
	assert.Equal(t, "code", vm.Profiles()[0].Name)

	select {
	case <-vm.Changes():
	default:
		t.Fatal("未收到变更通知")
	}
}

// TestWindowList_Apply 测试应用布局发布结果和状态消息
func TestWindowList_Apply(t *testing.T) {
	agg := messenger.NewAggregator()
	vm, err := NewWindowList(agg, newMatcher(t))
	require.NoError(t, err)
	defer vm.Close()

	sb, err := NewStatusBar(agg, types.StatusInfo, 0)
	require.NoError(t, err)
	defer sb.Close()

	var applied []types.ProfileApplication
	_, err = messenger.GetEvent[events.ProfileAppliedEvent](agg).Subscribe(func(a types.ProfileApplication) {
		applied = append(applied, a)
	})
	require.NoError(t, err)

	require.NoError(t, messenger.GetEvent[events.WindowsRefreshedEvent](agg).Publish(testWindows))
	require.NoError(t, messenger.GetEvent[events.SettingsChangedEvent](agg).Publish(testSettings))

	app, err := vm.Apply("code")
	require.NoError(t, err)
	require.Len(t, app.Placements, 1)
	assert.Equal(t, uint64(1), app.Placements[0].Window.Handle)
	require.Len(t, applied, 1)

	last, ok := sb.Last()
	require.True(t, ok)
	assert.Equal(t, types.StatusInfo, last.Level)
	assert.Contains(t, last.Text, "code")

	_, err = vm.Apply("missing")
	assert.ErrorIs(t, err, ErrUnknownProfile)
}

// TestWindowList_Refresh 测试刷新请求
func TestWindowList_Refresh(t *testing.T) {
	agg := messenger.NewAggregator()
	vm, err := NewWindowList(agg, newMatcher(t))
	require.NoError(t, err)
	defer vm.Close()

	requests := 0
	_, err = messenger.GetEvent[events.RefreshRequestedEvent](agg).Subscribe(func() { requests++ })
	require.NoError(t, err)

	require.NoError(t, vm.Refresh())
	assert.Equal(t, 1, requests)
}

// TestWindowList_CloseIdempotent 测试关闭后不再接收事件
func TestWindowList_CloseIdempotent(t *testing.T) {
	agg := messenger.NewAggregator()
	vm, err := NewWindowList(agg, newMatcher(t))
	require.NoError(t, err)

	refreshed := messenger.GetEvent[events.WindowsRefreshedEvent](agg)
	assert.Equal(t, 1, refreshed.Len())

	vm.Close()
	vm.Close()
	assert.Zero(t, refreshed.Len())

	require.NoError(t, refreshed.Publish(testWindows))
	assert.Empty(t, vm.Windows())
}

// TestWindowList_NotKeptAlive 测试订阅不会阻止视图模型被回收
func TestWindowList_NotKeptAlive(t *testing.T) {
	agg := messenger.NewAggregator()
	refreshed := messenger.GetEvent[events.WindowsRefreshedEvent](agg)

	func() {
		_, err := NewWindowList(agg, newMatcher(t))
		require.NoError(t, err)
	}()
	require.Equal(t, 1, refreshed.Len())

	require.Eventually(t, func() bool {
		runtime.GC()
		_ = refreshed.Publish(testWindows)
		return refreshed.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

// TestStatusBar_Filter 测试级别过滤和历史上限
func TestStatusBar_Filter(t *testing.T) {
	agg := messenger.NewAggregator()
	sb, err := NewStatusBar(agg, types.StatusWarning, 2)
	require.NoError(t, err)
	defer sb.Close()

	status := messenger.GetEvent[events.StatusMessageEvent](agg)
	require.NoError(t, status.Publish(types.StatusMessage{Level: types.StatusInfo, Text: "ignored"}))

	_, ok := sb.Last()
	assert.False(t, ok)

	for _, text := range []string{"w1", "e1", "w2"} {
		level := types.StatusWarning
		if text[0] == 'e' {
			level = types.StatusError
		}
		require.NoError(t, status.Publish(types.StatusMessage{Level: level, Text: text}))
	}

	history := sb.History()
	require.Len(t, history, 2)
	assert.Equal(t, "e1", history[0].Text)
	assert.Equal(t, "w2", history[1].Text)

	sb.Close()
	sb.Close()
	assert.Zero(t, status.Len())
}

// TestStatusBar_UIThread 测试回调在 UI 循环上执行
func TestStatusBar_UIThread(t *testing.T) {
	loop := dispatch.NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	defer loop.Close(context.Background())

	agg := messenger.NewAggregator(messenger.WithDispatcher(loop))
	sb, err := NewStatusBar(agg, types.StatusInfo, 0)
	require.NoError(t, err)
	defer sb.Close()

	require.NoError(t, messenger.GetEvent[events.StatusMessageEvent](agg).Publish(
		types.StatusMessage{Level: types.StatusError, Text: "boom"}))

	select {
	case <-sb.Changes():
	case <-time.After(time.Second):
		t.Fatal("UI 线程未投递消息")
	}
	last, ok := sb.Last()
	require.True(t, ok)
	assert.Equal(t, "boom", last.Text)
}
