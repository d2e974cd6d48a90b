package messenger

import (
	"golang.org/x/time/rate"

	"github.com/dep2p/go-winbus/pkg/interfaces"
	"github.com/dep2p/go-winbus/pkg/lib/log"
)

var logger = log.Logger("core/messenger")

// environment 聚合器共享给所有事件通道的调度能力
type environment struct {
	dispatcher interfaces.Dispatcher
	scheduler  interfaces.Scheduler
	observer   interfaces.MessengerObserver
	faultLog   *rate.Limiter
	route      func(FaultReport)
}

// defaultEnv 未经聚合器创建的事件使用的环境
var defaultEnv = newEnvironment(defaultAggregatorSettings())

func newEnvironment(s *aggregatorSettings) *environment {
	env := &environment{
		dispatcher: s.dispatcher,
		scheduler:  s.scheduler,
		observer:   s.observer,
		faultLog:   rate.NewLimiter(rate.Limit(s.faultLogRate), s.faultLogBurst),
	}
	if env.scheduler == nil {
		env.scheduler = goScheduler{}
	}
	if env.observer == nil {
		env.observer = nopObserver{}
	}
	return env
}

// reportAsync 报告异步处理器的故障
func (env *environment) reportAsync(f *HandlerFault) {
	if env.faultLog.Allow() {
		logger.Warn("异步处理器 panic",
			"event", f.Event,
			"token", f.Token.String(),
			"thread", f.Thread.String(),
			"panic", f.Value)
	}
	if env.route != nil {
		env.route(f.Report())
	}
}

// goScheduler 每个任务一个 goroutine
type goScheduler struct{}

func (goScheduler) Schedule(fn func()) bool {
	go fn()
	return true
}

type nopObserver struct{}

func (nopObserver) Published(string, int)    {}
func (nopObserver) Delivered(string, string) {}
func (nopObserver) Pruned(string, int)       {}
func (nopObserver) Faulted(string, string)   {}
func (nopObserver) Subscribers(string, int)  {}

// ============================================================================
// 调度上下文
// ============================================================================

// dispatchContext 单个事件通道的调度上下文
type dispatchContext struct {
	name string
	env  *environment
}

// invoke 调用 fn 并将 panic 转换为 HandlerFault
func (dc dispatchContext) invoke(token SubscriptionToken, thread ThreadOption, fn func()) (fault *HandlerFault) {
	defer func() {
		if r := recover(); r != nil {
			fault = &HandlerFault{Event: dc.name, Token: token, Thread: thread, Value: r}
			dc.env.observer.Faulted(dc.name, thread.String())
		}
		dc.env.observer.Delivered(dc.name, thread.String())
	}()
	fn()
	return nil
}

// invokeAsync 异步调用，故障不返回给发布者
func (dc dispatchContext) invokeAsync(token SubscriptionToken, thread ThreadOption, fn func()) {
	if fault := dc.invoke(token, thread, fn); fault != nil {
		dc.env.reportAsync(fault)
	}
}
