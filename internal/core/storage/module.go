package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/internal/core/storage/engine"
	"github.com/dep2p/go-winbus/internal/core/storage/engine/badger"
	"github.com/dep2p/go-winbus/internal/core/storage/kv"
	"github.com/dep2p/go-winbus/pkg/lib/log"
)

var logger = log.Logger("core/storage")

// Params Storage 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Storage 模块提供的结果
type Result struct {
	fx.Out

	Engine engine.Engine
}

// Module 返回 Storage Fx 模块
//
// 提供:
//   - engine.Engine: 存储引擎实例
//
// 生命周期:
//   - OnStop: 关闭引擎
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStorage),
		fx.Invoke(registerLifecycle),
	)
}

// ConfigFromUnified 从统一配置提取存储配置
func ConfigFromUnified(cfg *config.Config) config.StorageConfig {
	if cfg == nil {
		return config.DefaultStorageConfig()
	}
	return cfg.Storage
}

// ProvideStorage 提供存储引擎
func ProvideStorage(p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	eng, err := NewEngine(cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Engine: eng}, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, eng engine.Engine) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("正在关闭存储引擎")
			if err := eng.Close(); err != nil {
				logger.Warn("存储引擎关闭失败", "error", err)
				return err
			}
			logger.Info("存储引擎已关闭")
			return nil
		},
	})
}

// NewEngine 根据配置创建存储引擎
func NewEngine(cfg config.StorageConfig) (engine.Engine, error) {
	engineCfg := engine.Config{
		InMemory:   cfg.InMemory,
		SyncWrites: cfg.SyncWrites,
	}
	if !cfg.InMemory {
		engineCfg.Path = cfg.DBPath()
	}

	logger.Debug("创建存储引擎", "path", engineCfg.Path, "inMemory", cfg.InMemory)
	eng, err := badger.New(engineCfg)
	if err != nil {
		logger.Error("创建存储引擎失败", "error", err)
		return nil, err
	}
	return eng, nil
}

// NewKVStore 创建带前缀的 KVStore
func NewKVStore(eng engine.Engine, prefix []byte) *kv.Store {
	return kv.New(eng, prefix)
}

// KVStore 是 kv.Store 的类型别名
type KVStore = kv.Store
