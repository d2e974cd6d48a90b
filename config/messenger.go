package config

import "fmt"

// MessengerConfig 消息总线配置
type MessengerConfig struct {
	// BackgroundWorkers 后台线程策略的最大并发处理器数
	// 默认值: 4
	BackgroundWorkers int `json:"background_workers"`

	// UIQueueWarn UI 队列积压超过该值时输出警告，0 表示不警告
	// 默认值: 256
	UIQueueWarn int `json:"ui_queue_warn"`

	// RouteFaults 是否将异步处理器的 panic 发布到死信事件
	// 默认值: true
	RouteFaults bool `json:"route_faults"`

	// FaultLogRate 异步故障日志每秒最多条数
	// 默认值: 5
	FaultLogRate float64 `json:"fault_log_rate"`

	// FaultLogBurst 异步故障日志突发上限
	// 默认值: 10
	FaultLogBurst int `json:"fault_log_burst"`
}

// DefaultMessengerConfig 返回默认的消息总线配置
func DefaultMessengerConfig() MessengerConfig {
	return MessengerConfig{
		BackgroundWorkers: 4,
		UIQueueWarn:       256,
		RouteFaults:       true,
		FaultLogRate:      5,
		FaultLogBurst:     10,
	}
}

// Validate 验证消息总线配置
func (c MessengerConfig) Validate() error {
	if c.BackgroundWorkers <= 0 {
		return fmt.Errorf("messenger: background_workers must be positive, got %d", c.BackgroundWorkers)
	}
	if c.UIQueueWarn < 0 {
		return fmt.Errorf("messenger: ui_queue_warn cannot be negative")
	}
	if c.FaultLogRate <= 0 || c.FaultLogBurst <= 0 {
		return fmt.Errorf("messenger: fault log rate and burst must be positive")
	}
	return nil
}
