package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUILoop_FIFO 测试回调按提交顺序执行
func TestUILoop_FIFO(t *testing.T) {
	loop := NewUILoop(0)

	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 100; i++ {
		i := i
		require.True(t, loop.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)
	require.NoError(t, loop.Close(context.Background()))

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

// TestUILoop_OnLoop 测试回调运行在循环 goroutine 上
func TestUILoop_OnLoop(t *testing.T) {
	loop := NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	assert.False(t, loop.OnLoop())

	result := make(chan bool, 1)
	require.True(t, loop.Post(func() { result <- loop.OnLoop() }))

	select {
	case on := <-result:
		assert.True(t, on)
	case <-time.After(time.Second):
		t.Fatal("回调未执行")
	}
	require.NoError(t, loop.Close(context.Background()))
}

// TestUILoop_PostAfterClose 测试关闭后 Post 返回 false
func TestUILoop_PostAfterClose(t *testing.T) {
	loop := NewUILoop(0)
	require.NoError(t, loop.Close(context.Background()))

	var ran atomic.Bool
	assert.False(t, loop.Post(func() { ran.Store(true) }))
	assert.False(t, ran.Load())
}

// TestUILoop_PanicDoesNotStopLoop 测试回调 panic 不影响后续回调
func TestUILoop_PanicDoesNotStopLoop(t *testing.T) {
	loop := NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	done := make(chan struct{})
	loop.Post(func() { panic("boom") })
	loop.Post(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panic 后循环停止")
	}
	require.NoError(t, loop.Close(context.Background()))
}

// TestUILoop_ContextCancelDrains 测试 ctx 取消时排空队列
func TestUILoop_ContextCancelDrains(t *testing.T) {
	loop := NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())

	var count atomic.Int32
	for i := 0; i < 10; i++ {
		loop.Post(func() { count.Add(1) })
	}
	cancel()
	loop.Run(ctx)

	assert.Equal(t, int32(10), count.Load())
	assert.False(t, loop.Post(func() {}))
	assert.Zero(t, loop.Pending())
}

// TestUILoop_NestedPost 测试回调内再次 Post
func TestUILoop_NestedPost(t *testing.T) {
	loop := NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	done := make(chan struct{})
	loop.Post(func() {
		loop.Post(func() { close(done) })
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("嵌套回调未执行")
	}
	require.NoError(t, loop.Close(context.Background()))
}

// TestUILoop_CloseFromLoop 测试在 UI 回调中关闭循环不会等待自身
func TestUILoop_CloseFromLoop(t *testing.T) {
	loop := NewUILoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	var tail atomic.Bool
	closed := make(chan error, 1)
	require.True(t, loop.Post(func() {
		// 排在关闭之前的回调仍会执行
		_ = loop.Post(func() { tail.Store(true) })

		closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second)
		defer closeCancel()
		closed <- loop.Close(closeCtx)
	}))

	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("在循环内关闭时阻塞")
	}

	select {
	case <-loop.done:
	case <-time.After(time.Second):
		t.Fatal("循环未退出")
	}
	assert.True(t, tail.Load())
	assert.False(t, loop.Post(func() {}))
}
