package messenger

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 调度策略测试
// ============================================================================

// TestDispatch_PublisherAndBackground 同步订阅者在 Publish 返回前完成，后台订阅者最终完成
func TestDispatch_PublisherAndBackground(t *testing.T) {
	agg := NewAggregator()
	ev := GetEvent[intEvent](agg)

	var a atomic.Int64
	_, err := ev.Subscribe(func(v int) { a.Store(int64(v)) })
	require.NoError(t, err)

	release := make(chan struct{})
	b := make(chan int, 1)
	_, err = ev.Subscribe(func(v int) {
		<-release
		b <- v
	}, OnThread(BackgroundThread))
	require.NoError(t, err)

	// 后台订阅者被阻塞时 Publish 仍然返回
	require.NoError(t, ev.Publish(42))
	assert.Equal(t, int64(42), a.Load())

	close(release)
	select {
	case v := <-b:
		assert.Equal(t, 42, v)
	case <-time.After(2 * time.Second):
		t.Fatal("后台订阅者未收到事件")
	}
}

// TestDispatch_UIThread 测试 UI 线程封送
func TestDispatch_UIThread(t *testing.T) {
	ui := &queueDispatcher{}
	agg := NewAggregator(WithDispatcher(ui))
	ev := GetEvent[intEvent](agg)

	var got []int
	_, err := ev.Subscribe(func(v int) { got = append(got, v) }, OnThread(UIThread))
	require.NoError(t, err)

	require.NoError(t, ev.Publish(1))
	require.NoError(t, ev.Publish(2))
	assert.Empty(t, got)
	assert.Equal(t, 2, ui.pending())

	ui.drain()
	assert.Equal(t, []int{1, 2}, got)
}

// TestDispatch_UIThreadFallback 测试 UI 线程不可用时退化为发布者线程
func TestDispatch_UIThreadFallback(t *testing.T) {
	t.Run("NoDispatcher", func(t *testing.T) {
		var ev PubSubEvent[int]
		got := 0
		_, err := ev.Subscribe(func(v int) { got = v }, OnThread(UIThread))
		require.NoError(t, err)

		require.NoError(t, ev.Publish(3))
		assert.Equal(t, 3, got)
	})

	t.Run("ClosedDispatcher", func(t *testing.T) {
		ui := &queueDispatcher{closed: true}
		ev := GetEvent[intEvent](NewAggregator(WithDispatcher(ui)))
		got := 0
		_, err := ev.Subscribe(func(v int) { got = v }, OnThread(UIThread))
		require.NoError(t, err)

		require.NoError(t, ev.Publish(4))
		assert.Equal(t, 4, got)
		assert.Zero(t, ui.pending())
	})

	t.Run("ClosedDispatcherFault", func(t *testing.T) {
		ui := &queueDispatcher{closed: true}
		ev := GetEvent[intEvent](NewAggregator(WithDispatcher(ui)))
		_, err := ev.Subscribe(func(int) { panic("ui") }, OnThread(UIThread))
		require.NoError(t, err)

		var fault *HandlerFault
		require.ErrorAs(t, ev.Publish(5), &fault)
		assert.Equal(t, PublisherThread, fault.Thread)
	})
}

// TestDispatch_AsyncFaultNotReturned 测试异步故障不返回给发布者
func TestDispatch_AsyncFaultNotReturned(t *testing.T) {
	ui := &queueDispatcher{}
	ev := GetEvent[intEvent](NewAggregator(WithDispatcher(ui)))

	_, err := ev.Subscribe(func(int) { panic("ui boom") }, OnThread(UIThread))
	require.NoError(t, err)

	assert.NoError(t, ev.Publish(1))
	assert.NotPanics(t, ui.drain)
}

// TestDispatch_DeadLetter 测试异步故障路由到死信事件
func TestDispatch_DeadLetter(t *testing.T) {
	agg := NewAggregator(WithFaultRoute(true))
	ev := GetEvent[intEvent](agg)

	reports := make(chan FaultReport, 1)
	_, err := GetEvent[DeadLetterEvent](agg).Subscribe(func(r FaultReport) { reports <- r })
	require.NoError(t, err)

	token, err := ev.Subscribe(func(int) { panic("background boom") }, OnThread(BackgroundThread))
	require.NoError(t, err)

	require.NoError(t, ev.Publish(1))

	select {
	case r := <-reports:
		assert.Equal(t, "messenger.intEvent", r.Event)
		assert.Equal(t, token, r.Token)
		assert.Equal(t, BackgroundThread, r.Thread)
		assert.Equal(t, "background boom", r.Reason)
		assert.False(t, r.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("未收到死信")
	}
}

// TestDispatch_DeadLetterNoRecursion 测试死信订阅者的异步故障不会再次路由
func TestDispatch_DeadLetterNoRecursion(t *testing.T) {
	ui := &queueDispatcher{}
	agg := NewAggregator(WithFaultRoute(true), WithDispatcher(ui))
	dead := GetEvent[DeadLetterEvent](agg)

	var deliveries atomic.Int32
	_, err := dead.Subscribe(func(FaultReport) {
		deliveries.Add(1)
		panic("dead letter handler")
	}, OnThread(UIThread))
	require.NoError(t, err)

	ev := GetEvent[intEvent](agg)
	_, err = ev.Subscribe(func(int) { panic("origin") }, OnThread(UIThread))
	require.NoError(t, err)

	require.NoError(t, ev.Publish(1))
	ui.drain() // 原始故障 → 死信入队
	ui.drain() // 死信处理器 panic，不再路由
	ui.drain()

	assert.Equal(t, int32(1), deliveries.Load())
	assert.Zero(t, ui.pending())
}

// TestDispatch_Observer 测试观察者回调
func TestDispatch_Observer(t *testing.T) {
	obs := newRecordingObserver()
	ui := &queueDispatcher{}
	ev := GetEvent[intEvent](NewAggregator(WithObserver(obs), WithDispatcher(ui)))

	_, _ = ev.Subscribe(func(int) {})
	_, _ = ev.Subscribe(func(int) { panic("x") })
	_, _ = ev.Subscribe(func(int) {}, OnThread(UIThread))

	_ = ev.Publish(1)
	ui.drain()

	snap := obs.snapshot()
	assert.Equal(t, 1, snap.published)
	assert.Equal(t, 2, snap.delivered["publisher"])
	assert.Equal(t, 1, snap.delivered["ui"])
	assert.Equal(t, 1, snap.faulted["publisher"])
	assert.Equal(t, 3, snap.subscribers)
}

// fixedScheduler 同步执行的调度器，记录调度次数
type fixedScheduler struct {
	scheduled atomic.Int32
}

func (s *fixedScheduler) Schedule(fn func()) bool {
	s.scheduled.Add(1)
	fn()
	return true
}

// TestDispatch_CustomScheduler 测试自定义后台调度器
func TestDispatch_CustomScheduler(t *testing.T) {
	sch := &fixedScheduler{}
	ev := GetEvent[intEvent](NewAggregator(WithScheduler(sch)))

	got := 0
	_, err := ev.Subscribe(func(v int) { got = v }, OnThread(BackgroundThread))
	require.NoError(t, err)

	require.NoError(t, ev.Publish(9))
	assert.Equal(t, 9, got)
	assert.Equal(t, int32(1), sch.scheduled.Load())
}

// closedScheduler 已关闭的后台调度器
type closedScheduler struct {
	rejected atomic.Int32
}

func (s *closedScheduler) Schedule(func()) bool {
	s.rejected.Add(1)
	return false
}

// TestDispatch_BackgroundFallback 测试后台调度器关闭后在发布者线程执行且故障不返回
func TestDispatch_BackgroundFallback(t *testing.T) {
	sch := &closedScheduler{}
	obs := newRecordingObserver()
	ev := GetEvent[intEvent](NewAggregator(WithScheduler(sch), WithObserver(obs)))

	got := 0
	_, err := ev.Subscribe(func(v int) { got = v }, OnThread(BackgroundThread))
	require.NoError(t, err)
	_, err = ev.Subscribe(func(int) { panic("background") }, OnThread(BackgroundThread))
	require.NoError(t, err)

	require.NoError(t, ev.Publish(11))
	assert.Equal(t, 11, got)
	assert.Equal(t, int32(2), sch.rejected.Load())

	snap := obs.snapshot()
	assert.Equal(t, 2, snap.delivered["background"])
	assert.Equal(t, 1, snap.faulted["background"])
}
