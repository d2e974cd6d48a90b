package messenger

import (
	"fmt"
	"strings"
)

// ThreadOption 处理器的调度策略
type ThreadOption int

const (
	// PublisherThread 在发布者的 goroutine 上同步调用
	PublisherThread ThreadOption = iota
	// UIThread 封送到 UI 线程；没有可用的 Dispatcher 时退化为 PublisherThread
	UIThread
	// BackgroundThread 在后台 goroutine 上异步调用
	BackgroundThread
)

// String 返回策略名称
func (t ThreadOption) String() string {
	switch t {
	case PublisherThread:
		return "publisher"
	case UIThread:
		return "ui"
	case BackgroundThread:
		return "background"
	default:
		return fmt.Sprintf("ThreadOption(%d)", int(t))
	}
}

// ParseThreadOption 解析策略名称
func ParseThreadOption(s string) (ThreadOption, error) {
	switch strings.ToLower(s) {
	case "", "publisher":
		return PublisherThread, nil
	case "ui":
		return UIThread, nil
	case "background":
		return BackgroundThread, nil
	default:
		return PublisherThread, fmt.Errorf("%w: unknown thread option %q", ErrInvalidArgument, s)
	}
}

func (t ThreadOption) valid() bool {
	return t >= PublisherThread && t <= BackgroundThread
}
