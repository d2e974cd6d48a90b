package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-winbus/internal/core/messenger"
)

const importJSON = `{
  "profiles": [
    {"name": "editor", "process_name": "code", "bounds": {"x": 0, "y": 0, "width": 1280, "height": 900}}
  ],
  "active_profile": "editor",
  "refresh_interval": "45s"
}`

// TestReadImportFile 测试解析外部设置文件
func TestReadImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(importJSON), 0o600))

	got, err := ReadImportFile(path)
	require.NoError(t, err)
	require.Len(t, got.Profiles, 1)
	assert.Equal(t, "editor", got.ActiveProfile)
	assert.Equal(t, 45*time.Second, got.RefreshInterval)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = ReadImportFile(path)
	assert.Error(t, err)
}

// TestWatcher_ImportOnWrite 测试文件写入后经过去抖延迟自动导入
func TestWatcher_ImportOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	clk := clock.NewMock()
	svc := New(newTestStore(t), messenger.NewAggregator(), clk, 0)
	w, err := NewWatcher(path, svc)
	require.NoError(t, err)
	defer w.Close()

	// 文件尚不存在
	require.NoError(t, w.Import())

	imported := make(chan error, 4)
	w.OnImport = func(err error) { imported <- err }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte(importJSON), 0o600))

	// 时钟不前进时不导入
	select {
	case <-imported:
		t.Fatal("去抖延迟未到就导入了")
	case <-time.After(2 * importDebounce):
	}

	var importErr error
	require.Eventually(t, func() bool {
		clk.Add(importDebounce)
		select {
		case importErr = <-imported:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, importErr)
	assert.Equal(t, "editor", svc.Current().ActiveProfile)

	cancel()
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("监听循环未退出")
	}
}
