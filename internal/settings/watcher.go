package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"

	"github.com/dep2p/go-winbus/config"
	"github.com/dep2p/go-winbus/pkg/types"
)

// importDebounce 编辑器保存时通常连续触发多次写事件
const importDebounce = 200 * time.Millisecond

// ImportFile 外部设置文件格式
//
//	{
//	  "profiles": [{"name": "editor", "process_name": "code", "bounds": {...}}],
//	  "active_profile": "editor",
//	  "refresh_interval": "30s"
//	}
type ImportFile struct {
	Profiles        []types.WindowProfile `json:"profiles"`
	ActiveProfile   string                `json:"active_profile,omitempty"`
	RefreshInterval config.Duration       `json:"refresh_interval,omitempty"`
}

// ReadImportFile 读取并解析外部设置文件
func ReadImportFile(path string) (types.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Settings{}, err
	}

	var f ImportFile
	if err := json.Unmarshal(data, &f); err != nil {
		return types.Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}

	out := types.DefaultSettings()
	out.Profiles = append(out.Profiles, f.Profiles...)
	out.ActiveProfile = f.ActiveProfile
	out.RefreshInterval = f.RefreshInterval.Std()
	return out, nil
}

// Watcher 监听外部设置文件并导入
//
// 监听的是文件所在目录，编辑器通过重命名保存时也能收到事件。
type Watcher struct {
	path    string
	service *Service
	watcher *fsnotify.Watcher
	clk     clock.Clock

	// OnImport 每次导入完成后调用（测试用），err 为导入结果
	OnImport func(err error)

	closeOnce sync.Once
	done      chan struct{}
}

// NewWatcher 创建文件监听器，去抖使用设置服务的时钟
func NewWatcher(path string, service *Service) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		service: service,
		watcher: w,
		clk:     service.clk,
		done:    make(chan struct{}),
	}, nil
}

// Import 立即导入一次，文件不存在时忽略
func (w *Watcher) Import() error {
	next, err := ReadImportFile(w.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err == nil {
		err = w.service.Replace(next)
	}
	if err != nil {
		logger.Warn("导入设置文件失败", "file", w.path, "error", err)
	} else {
		logger.Info("已导入设置文件", "file", w.path, "profiles", len(next.Profiles))
	}
	if w.OnImport != nil {
		w.OnImport(err)
	}
	return err
}

// Start 在后台处理文件事件，直到 ctx 取消或 Close
func (w *Watcher) Start(ctx context.Context) {
	debounce := w.clk.Timer(time.Hour)
	debounce.Stop()

	go func() {
		defer close(w.done)
		defer debounce.Stop()

		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.shouldProcessEvent(event) {
					logger.Debug("设置文件变化", "file", event.Name, "op", event.Op.String())
					debounce.Reset(importDebounce)
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Error("文件监听出错", "error", err)

			case <-debounce.C:
				_ = w.Import()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// shouldProcessEvent 只关心目标文件的创建和写入
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}

// Close 停止监听
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

// Done 监听循环退出后关闭
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
