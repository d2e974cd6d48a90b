package messenger

import (
	"reflect"
	"time"
)

// FaultReport 异步处理器故障报告
type FaultReport struct {
	// Event 出错的事件通道
	Event string

	// Token 出错的订阅
	Token SubscriptionToken

	// Thread 处理器运行的策略
	Thread ThreadOption

	// Reason panic 值的文本
	Reason string

	// At 发生时间
	At time.Time
}

// DeadLetterEvent 异步处理器故障的死信通道
//
// 仅在聚合器启用 WithFaultRoute(true) 时发布。
type DeadLetterEvent struct {
	PubSubEvent[FaultReport]
}

var deadLetterName = reflect.TypeFor[DeadLetterEvent]().String()
