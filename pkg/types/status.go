package types

import "time"

// StatusLevel 状态消息级别
type StatusLevel int

const (
	// StatusInfo 普通提示
	StatusInfo StatusLevel = iota
	// StatusWarning 警告
	StatusWarning
	// StatusError 错误
	StatusError
)

// String 返回级别名称
func (l StatusLevel) String() string {
	switch l {
	case StatusInfo:
		return "info"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// StatusMessage 状态栏消息
type StatusMessage struct {
	Level StatusLevel `json:"level"`
	Text  string      `json:"text"`
	At    time.Time   `json:"at"`
}
