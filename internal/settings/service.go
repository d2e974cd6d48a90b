package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/core/storage/engine"
	"github.com/dep2p/go-winbus/internal/core/storage/kv"
	"github.com/dep2p/go-winbus/internal/events"
	"github.com/dep2p/go-winbus/pkg/lib/log"
	"github.com/dep2p/go-winbus/pkg/types"
)

var logger = log.Logger("settings")

// ErrClosed 服务已关闭
var ErrClosed = errors.New("settings: service closed")

// KVPrefix 设置在存储中的前缀
var KVPrefix = []byte("settings/")

var (
	metaKey       = []byte("meta")
	profilePrefix = []byte("profile/")
)

// meta 持久化的设置元数据
type meta struct {
	ActiveProfile   string        `json:"active_profile,omitempty"`
	RefreshInterval time.Duration `json:"refresh_interval"`
	Order           []string      `json:"order"`
}

// Service 设置服务
type Service struct {
	store   *kv.Store
	changed *events.SettingsChangedEvent
	status  *events.StatusMessageEvent
	applied *events.ProfileAppliedEvent
	clk     clock.Clock
	delay   time.Duration

	appliedToken messenger.SubscriptionToken

	// updateMu 串行化 读取→修改→提交，避免并发修改互相覆盖
	updateMu sync.Mutex

	mu      sync.Mutex
	current types.Settings
	timer   *clock.Timer
	dirty   bool
	closed  bool

	saveMu sync.Mutex
}

// New 创建设置服务
//
// delay 为 0 时每次变更立即保存。
func New(store *kv.Store, agg *messenger.Aggregator, clk clock.Clock, delay time.Duration) *Service {
	if clk == nil {
		clk = clock.New()
	}
	s := &Service{
		store:   store,
		changed: messenger.GetEvent[events.SettingsChangedEvent](agg),
		status:  messenger.GetEvent[events.StatusMessageEvent](agg),
		applied: messenger.GetEvent[events.ProfileAppliedEvent](agg),
		clk:     clk,
		delay:   delay,
		current: types.DefaultSettings(),
	}
	// 记住最近应用的布局；action 非 nil，Subscribe 不会失败
	s.appliedToken, _ = s.applied.Subscribe(s.onProfileApplied)
	return s
}

// onProfileApplied 布局应用后更新 ActiveProfile
func (s *Service) onProfileApplied(app types.ProfileApplication) {
	if s.Current().ActiveProfile == app.Profile.Name {
		return
	}
	err := s.Update(func(next *types.Settings) {
		next.ActiveProfile = app.Profile.Name
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		logger.Warn("更新活动布局失败", "profile", app.Profile.Name, "error", err)
	}
}

// Load 从存储读取设置并发布
//
// 存储中没有设置时使用默认值。
func (s *Service) Load() error {
	loaded, err := s.read()
	if err != nil {
		return err
	}

	s.updateMu.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.updateMu.Unlock()
		return ErrClosed
	}
	s.current = loaded
	s.mu.Unlock()
	s.updateMu.Unlock()

	logger.Info("设置已加载", "profiles", len(loaded.Profiles))
	s.publish(loaded)
	return nil
}

// read 读取元数据和全部布局
func (s *Service) read() (types.Settings, error) {
	var m meta
	err := s.store.GetJSON(metaKey, &m)
	switch {
	case engine.IsNotFound(err):
		return types.DefaultSettings(), nil
	case err != nil:
		return types.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	byName := make(map[string]types.WindowProfile)
	var decodeErr error
	err = s.store.PrefixScan(profilePrefix, func(_, value []byte) bool {
		var p types.WindowProfile
		if decodeErr = json.Unmarshal(value, &p); decodeErr != nil {
			return false
		}
		byName[p.Name] = p
		return true
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return types.Settings{}, fmt.Errorf("load profiles: %w", err)
	}

	out := types.DefaultSettings()
	out.RefreshInterval = m.RefreshInterval
	for _, name := range m.Order {
		if p, ok := byName[name]; ok {
			out.Profiles = append(out.Profiles, p)
		}
	}
	if _, ok := out.Profile(m.ActiveProfile); ok {
		out.ActiveProfile = m.ActiveProfile
	}
	return out, nil
}

// Current 返回当前设置的副本
func (s *Service) Current() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update 修改当前设置
//
// fn 在副本上修改，校验通过后才生效并发布。并发的 Update 依次执行，
// 每个 fn 都能看到之前所有修改的结果。fn 不能再调用 Update 或 Replace。
func (s *Service) Update(fn func(*types.Settings)) error {
	s.updateMu.Lock()
	next := s.Current()
	fn(&next)
	committed, immediate, err := s.commit(next)
	s.updateMu.Unlock()
	if err != nil {
		return err
	}
	return s.afterCommit(committed, immediate)
}

// Replace 整体替换当前设置
func (s *Service) Replace(next types.Settings) error {
	s.updateMu.Lock()
	committed, immediate, err := s.commit(next)
	s.updateMu.Unlock()
	if err != nil {
		return err
	}
	return s.afterCommit(committed, immediate)
}

// commit 校验并替换当前设置，调用方持有 updateMu
func (s *Service) commit(next types.Settings) (types.Settings, bool, error) {
	if err := next.Validate(); err != nil {
		return types.Settings{}, false, fmt.Errorf("invalid settings: %w", err)
	}
	next = next.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return types.Settings{}, false, ErrClosed
	}
	s.current = next
	s.dirty = true
	immediate := s.delay <= 0
	if !immediate {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = s.clk.AfterFunc(s.delay, s.autosave)
	}
	return next, immediate, nil
}

// afterCommit 在锁外发布变更，必要时立即保存
func (s *Service) afterCommit(committed types.Settings, immediate bool) error {
	s.publish(committed)
	if immediate {
		return s.Save()
	}
	return nil
}

// publish 发布变更；订阅者的故障只记录，不影响设置本身
func (s *Service) publish(settings types.Settings) {
	if err := s.changed.Publish(settings.Clone()); err != nil {
		logger.Warn("设置变更订阅者出错", "error", err)
	}
}

// autosave 延迟保存回调
func (s *Service) autosave() {
	if err := s.Save(); err != nil {
		logger.Error("自动保存设置失败", "error", err)
		_ = s.status.Publish(types.StatusMessage{
			Level: types.StatusError,
			Text:  "保存设置失败: " + err.Error(),
			At:    s.clk.Now(),
		})
	}
}

// Save 立即保存当前设置
func (s *Service) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.current.Clone()
	s.dirty = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if err := s.write(snapshot); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	logger.Debug("设置已保存", "profiles", len(snapshot.Profiles))
	return nil
}

// write 在一个批量写入中替换全部布局和元数据
func (s *Service) write(settings types.Settings) error {
	stale, err := s.store.Keys(profilePrefix)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	keep := make(map[string]struct{}, len(settings.Profiles))
	for _, p := range settings.Profiles {
		keep[string(profileKey(p.Name))] = struct{}{}
	}

	batch := s.store.NewBatch()
	for _, key := range stale {
		if _, ok := keep[string(key)]; !ok {
			batch.Delete(key)
		}
	}

	m := meta{
		ActiveProfile:   settings.ActiveProfile,
		RefreshInterval: settings.RefreshInterval,
		Order:           make([]string, 0, len(settings.Profiles)),
	}
	for _, p := range settings.Profiles {
		m.Order = append(m.Order, p.Name)
		if err := batch.PutJSON(profileKey(p.Name), p); err != nil {
			batch.Cancel()
			return err
		}
	}
	if err := batch.PutJSON(metaKey, m); err != nil {
		batch.Cancel()
		return err
	}

	if err := batch.Write(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Close 停止自动保存并写入未保存的变更
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.applied.Unsubscribe(s.appliedToken)
	return s.Save()
}

func profileKey(name string) []byte {
	return append(append([]byte(nil), profilePrefix...), name...)
}
