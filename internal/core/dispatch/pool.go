package dispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Pool 后台调度器
//
// Schedule 立即返回；任务在新 goroutine 中等待信号量，
// 同时运行的任务数不超过 workers。
type Pool struct {
	sem     *semaphore.Weighted
	mu      sync.RWMutex
	wg      sync.WaitGroup
	closed  bool
	pending atomic.Int64

	// OnFault 任务 panic 时调用，为 nil 时只记录日志
	OnFault func(value any)
}

// NewPool 创建后台调度器
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		sem: semaphore.NewWeighted(int64(workers)),
	}
}

// Schedule 调度 fn 异步执行
//
// 关闭后返回 false，任务不会被执行，由调用者决定如何处理。
// 已提交的任务不会被取消。
func (p *Pool) Schedule(fn func()) bool {
	if fn == nil {
		return true
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		logger.Debug("后台调度器已关闭，拒绝任务")
		return false
	}
	p.wg.Add(1)
	p.pending.Add(1)
	p.mu.RUnlock()

	go func() {
		defer p.wg.Done()
		defer p.pending.Add(-1)

		// context.Background 不会取消，Acquire 只会在拿到信号量后返回
		_ = p.sem.Acquire(context.Background(), 1)
		defer p.sem.Release(1)

		p.run(fn)
	}()
	return true
}

// run 执行任务并兜底 recover
func (p *Pool) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if p.OnFault != nil {
				p.OnFault(r)
				return
			}
			logger.Error("后台任务 panic", "panic", r)
		}
	}()
	fn()
}

// Pending 已提交但尚未完成的任务数
func (p *Pool) Pending() int {
	return int(p.pending.Load())
}

// Wait 等待已提交的任务全部完成
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close 停止接收新任务，等待已提交任务完成或 ctx 结束
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn("后台任务未在期限内完成", "pending", p.Pending())
		return ctx.Err()
	}
}
