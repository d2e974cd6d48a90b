package viewmodel

import (
	"sync"

	"github.com/dep2p/go-winbus/internal/core/messenger"
	"github.com/dep2p/go-winbus/internal/events"
	"github.com/dep2p/go-winbus/pkg/types"
)

// DefaultHistorySize 状态栏默认保留的消息数
const DefaultHistorySize = 50

// StatusBar 状态栏视图模型
//
// 只接收不低于 minLevel 的消息。
type StatusBar struct {
	status   *events.StatusMessageEvent
	minLevel types.StatusLevel
	limit    int

	mu      sync.RWMutex
	history []types.StatusMessage
	token   messenger.SubscriptionToken
	closed  bool

	changes chan struct{}
}

// NewStatusBar 创建状态栏
func NewStatusBar(agg *messenger.Aggregator, minLevel types.StatusLevel, historySize int) (*StatusBar, error) {
	if historySize <= 0 {
		historySize = DefaultHistorySize
	}
	sb := &StatusBar{
		status:   messenger.GetEvent[events.StatusMessageEvent](agg),
		minLevel: minLevel,
		limit:    historySize,
		changes:  make(chan struct{}, 1),
	}

	token, err := messenger.SubscribeWeakWhere(&sb.status.PubSubEvent, sb,
		(*StatusBar).onMessage,
		(*StatusBar).accepts,
		messenger.OnThread(messenger.UIThread),
	)
	if err != nil {
		return nil, err
	}
	sb.token = token
	return sb, nil
}

func (sb *StatusBar) accepts(m types.StatusMessage) bool {
	return m.Level >= sb.minLevel
}

func (sb *StatusBar) onMessage(m types.StatusMessage) {
	sb.mu.Lock()
	sb.history = append(sb.history, m)
	if over := len(sb.history) - sb.limit; over > 0 {
		sb.history = append(sb.history[:0:0], sb.history[over:]...)
	}
	sb.mu.Unlock()
	notify(sb.changes)
}

// Last 最近一条消息
func (sb *StatusBar) Last() (types.StatusMessage, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if len(sb.history) == 0 {
		return types.StatusMessage{}, false
	}
	return sb.history[len(sb.history)-1], true
}

// History 按时间顺序返回保留的消息
func (sb *StatusBar) History() []types.StatusMessage {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return append([]types.StatusMessage(nil), sb.history...)
}

// Changes 收到新消息时通知（合并）
func (sb *StatusBar) Changes() <-chan struct{} {
	return sb.changes
}

// Close 取消订阅，多次调用是安全的
func (sb *StatusBar) Close() {
	sb.mu.Lock()
	if sb.closed {
		sb.mu.Unlock()
		return
	}
	sb.closed = true
	sb.mu.Unlock()

	sb.status.Unsubscribe(sb.token)
}
