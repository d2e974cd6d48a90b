package messenger

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidArgument 无效参数（空处理器、空 owner 等）
var ErrInvalidArgument = errors.New("messenger: invalid argument")

// HandlerFault 处理器 panic
//
// 同步处理器的 HandlerFault 会返回给发布者；
// 异步处理器的 HandlerFault 通过日志和死信事件报告。
type HandlerFault struct {
	// Event 事件通道名称
	Event string

	// Token 出错的订阅
	Token SubscriptionToken

	// Thread 处理器运行的策略
	Thread ThreadOption

	// Value recover() 得到的值
	Value any
}

// Error 实现 error 接口
func (f *HandlerFault) Error() string {
	return fmt.Sprintf("messenger: %s handler %s on %s thread panicked: %v", f.Event, f.Token, f.Thread, f.Value)
}

// Unwrap panic 值本身是 error 时返回它
func (f *HandlerFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

// Report 转换为死信载荷
func (f *HandlerFault) Report() FaultReport {
	return FaultReport{
		Event:  f.Event,
		Token:  f.Token,
		Thread: f.Thread,
		Reason: fmt.Sprint(f.Value),
		At:     time.Now(),
	}
}
