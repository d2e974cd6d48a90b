package messenger

import (
	"fmt"

	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// ============================================================================
// 订阅选项
// ============================================================================

// SubscribeOption 订阅选项函数类型
type SubscribeOption func(*subscribeSettings)

type subscribeSettings struct {
	thread ThreadOption
}

// OnThread 设置处理器的调度策略，默认 PublisherThread
func OnThread(thread ThreadOption) SubscribeOption {
	return func(s *subscribeSettings) {
		s.thread = thread
	}
}

func applySubscribeOptions(opts []SubscribeOption) (subscribeSettings, error) {
	s := subscribeSettings{thread: PublisherThread}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if !s.thread.valid() {
		return s, fmt.Errorf("%w: %s", ErrInvalidArgument, s.thread)
	}
	return s, nil
}

// ============================================================================
// 聚合器选项
// ============================================================================

// Option 聚合器选项函数类型
type Option func(*aggregatorSettings)

type aggregatorSettings struct {
	dispatcher    interfaces.Dispatcher
	scheduler     interfaces.Scheduler
	observer      interfaces.MessengerObserver
	routeFaults   bool
	faultLogRate  float64
	faultLogBurst int
}

func defaultAggregatorSettings() *aggregatorSettings {
	return &aggregatorSettings{
		faultLogRate:  5,
		faultLogBurst: 10,
	}
}

// WithDispatcher 设置 UI 线程调度器
func WithDispatcher(d interfaces.Dispatcher) Option {
	return func(s *aggregatorSettings) {
		s.dispatcher = d
	}
}

// WithScheduler 设置后台调度器，默认每个任务一个 goroutine
func WithScheduler(sch interfaces.Scheduler) Option {
	return func(s *aggregatorSettings) {
		s.scheduler = sch
	}
}

// WithObserver 设置观察者（指标）
func WithObserver(o interfaces.MessengerObserver) Option {
	return func(s *aggregatorSettings) {
		s.observer = o
	}
}

// WithFaultRoute 是否将异步处理器的故障发布到 DeadLetterEvent
func WithFaultRoute(enabled bool) Option {
	return func(s *aggregatorSettings) {
		s.routeFaults = enabled
	}
}

// WithFaultLogLimit 设置异步故障日志限流
func WithFaultLogLimit(perSecond float64, burst int) Option {
	return func(s *aggregatorSettings) {
		if perSecond > 0 && burst > 0 {
			s.faultLogRate = perSecond
			s.faultLogBurst = burst
		}
	}
}
