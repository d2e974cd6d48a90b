package dispatch

import (
	"context"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-winbus/pkg/lib/log"
)

var logger = log.Logger("core/dispatch")

// UILoop UI 线程循环
//
// Post 的回调在 Run 所在的 goroutine 上按提交顺序执行。
// 关闭后 Post 返回 false，由调用者自行执行回调。
type UILoop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	closed  bool
	done    chan struct{}
	running atomic.Bool
	gid     atomic.Uint64

	warnAt int
	warned bool
}

// NewUILoop 创建 UI 循环
//
// warnAt > 0 时，队列积压达到该值输出一次警告。
func NewUILoop(warnAt int) *UILoop {
	return &UILoop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		warnAt: warnAt,
	}
}

// Post 将 fn 排入队列
func (l *UILoop) Post(fn func()) bool {
	if fn == nil {
		return true
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	depth := len(l.queue)
	warn := l.warnAt > 0 && depth >= l.warnAt && !l.warned
	if warn {
		l.warned = true
	}
	l.mu.Unlock()

	if warn {
		logger.Warn("UI 队列积压", "depth", depth)
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run 在当前 goroutine 上运行循环，直到 ctx 取消或 Close
//
// 退出前执行完已入队的回调。
func (l *UILoop) Run(ctx context.Context) {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.loop(ctx)
}

// Start 在新 goroutine 上运行循环
func (l *UILoop) Start(ctx context.Context) {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	go l.loop(ctx)
}

func (l *UILoop) loop(ctx context.Context) {
	l.gid.Store(goroutineID())
	defer func() {
		l.gid.Store(0)
		close(l.done)
	}()

	for {
		l.runPending()

		l.mu.Lock()
		closed := l.closed && len(l.queue) == 0
		l.mu.Unlock()
		if closed {
			return
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			l.markClosed()
			l.runPending()
			return
		}
	}
}

// Close 停止接收新回调，并等待循环排空后退出
//
// 循环从未启动时直接返回。在循环自身的回调中调用时不等待，
// 循环在当前回调和剩余队列执行完后退出。
func (l *UILoop) Close(ctx context.Context) error {
	l.markClosed()
	if !l.running.Load() || l.OnLoop() {
		return nil
	}

	select {
	case l.wake <- struct{}{}:
	default:
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OnLoop 调用者是否运行在 UI 循环上
func (l *UILoop) OnLoop() bool {
	id := l.gid.Load()
	return id != 0 && id == goroutineID()
}

// Pending 当前积压的回调数
func (l *UILoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *UILoop) markClosed() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

// runPending 执行当前队列中的全部回调
func (l *UILoop) runPending() {
	for {
		l.mu.Lock()
		queue := l.queue
		l.queue = nil
		if len(queue) < l.warnAt/2 {
			l.warned = false
		}
		l.mu.Unlock()

		if len(queue) == 0 {
			return
		}
		for _, fn := range queue {
			l.safeRun(fn)
		}
	}
}

// safeRun 回调 panic 不能终止 UI 循环
func (l *UILoop) safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("UI 回调 panic", "panic", r)
		}
	}()
	fn()
}

// goroutineID 从栈信息解析当前 goroutine ID
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))
	if len(field) == 0 {
		return 0
	}
	id, err := strconv.ParseUint(field[0], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
