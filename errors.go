package winbus

import "errors"

// 公共错误定义
var (
	// ErrAlreadyStarted 应用已启动
	ErrAlreadyStarted = errors.New("winbus: already started")

	// ErrAppClosed 应用已停止
	ErrAppClosed = errors.New("winbus: app closed")

	// ErrNilOption 选项参数为空
	ErrNilOption = errors.New("winbus: nil option value")
)
