package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/internal/core/storage/engine"
)

// TestModule_InMemory 测试模块提供引擎并在停止时关闭
func TestModule_InMemory(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.InMemory = true

	var eng engine.Engine
	app := fxtest.New(t, fx.Supply(cfg), Module(), fx.Populate(&eng))
	app.RequireStart()

	store := NewKVStore(eng, []byte("t/"))
	require.NoError(t, store.Put([]byte("k"), []byte("v")))

	app.RequireStop()
	assert.True(t, engine.IsClosed(store.Put([]byte("k"), []byte("v"))))
}

// TestModule_DataDir 测试磁盘模式在数据目录下创建数据库
func TestModule_DataDir(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Storage.DataDir = t.TempDir()

	var eng engine.Engine
	app := fxtest.New(t, fx.Supply(cfg), Module(), fx.Populate(&eng))
	defer app.RequireStart().RequireStop()

	require.NoError(t, eng.Put([]byte("k"), []byte("v")))
	assert.DirExists(t, cfg.Storage.DBPath())
}
