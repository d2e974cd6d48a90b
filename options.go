package winbus

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// Option 应用配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config

	// dispatcher 宿主提供的 UI 调度器，为空时使用内置 UI 循环
	dispatcher interfaces.Dispatcher

	// source 窗口清单来源，为空时使用配置中的固定清单
	source WindowSource

	fxOptions []fx.Option
	verbose   bool
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// WithConfig 使用给定配置（会被复制）
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return ErrNilOption
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		o.config = cfg
		return nil
	}
}

// WithDataDir 设置数据目录
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return fmt.Errorf("data dir cannot be empty")
		}
		o.config.Storage.DataDir = dir
		o.config.Storage.InMemory = false
		return nil
	}
}

// WithInMemoryStorage 设置只保存在内存中
func WithInMemoryStorage() Option {
	return func(o *options) error {
		o.config.Storage.InMemory = true
		return nil
	}
}

// WithUIDispatcher 使用宿主 GUI 框架的 UI 调度器
func WithUIDispatcher(d interfaces.Dispatcher) Option {
	return func(o *options) error {
		if d == nil {
			return ErrNilOption
		}
		o.dispatcher = d
		return nil
	}
}

// WithWindowSource 设置窗口清单来源
func WithWindowSource(src WindowSource) Option {
	return func(o *options) error {
		if src == nil {
			return ErrNilOption
		}
		o.source = src
		return nil
	}
}

// WithFxOptions 追加自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}

// WithVerboseContainer 输出依赖注入容器的事件日志
func WithVerboseContainer() Option {
	return func(o *options) error {
		o.verbose = true
		return nil
	}
}
