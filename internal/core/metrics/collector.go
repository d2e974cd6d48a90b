package metrics

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-winbus/pkg/interfaces"
	"github.com/dep2p/go-winbus/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// 编译期接口检查
var _ interfaces.MessengerObserver = (*Collector)(nil)

// Collector 消息总线指标收集器
type Collector struct {
	registry *prometheus.Registry

	published   *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	pruned      *prometheus.CounterVec
	faults      *prometheus.CounterVec
	subscribers *prometheus.GaugeVec

	clk   clock.Clock
	mu    sync.Mutex
	rates map[string]*RateMeter
	stats map[string]*EventStats
}

// EventStats 单个事件的统计快照
type EventStats struct {
	Event       string  `json:"event"`
	Published   int64   `json:"published"`
	Delivered   int64   `json:"delivered"`
	Faults      int64   `json:"faults"`
	Pruned      int64   `json:"pruned"`
	Subscribers int     `json:"subscribers"`
	PublishRate float64 `json:"publishRate"`
}

// NewCollector 创建收集器并注册到独立的 Registry
func NewCollector(namespace string, clk clock.Clock) (*Collector, error) {
	if clk == nil {
		clk = clock.New()
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messenger",
			Name:      "published_total",
			Help:      "Number of publish calls per event.",
		}, []string{"event"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messenger",
			Name:      "delivered_total",
			Help:      "Number of handler invocations per event and thread option.",
		}, []string{"event", "thread"}),
		pruned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messenger",
			Name:      "pruned_total",
			Help:      "Number of subscriptions removed because their target was collected.",
		}, []string{"event"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messenger",
			Name:      "faults_total",
			Help:      "Number of handler panics per event and thread option.",
		}, []string{"event", "thread"}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "messenger",
			Name:      "subscribers",
			Help:      "Current number of subscriptions per event.",
		}, []string{"event"}),
		clk:   clk,
		rates: make(map[string]*RateMeter),
		stats: make(map[string]*EventStats),
	}

	for _, col := range []prometheus.Collector{
		c.published, c.delivered, c.pruned, c.faults, c.subscribers,
	} {
		if err := c.registry.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Registry 返回收集器使用的 Registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 返回 /metrics HTTP 处理器
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ============================================================================
// MessengerObserver 实现
// ============================================================================

// Published 记录一次发布
func (c *Collector) Published(event string, subscribers int) {
	c.published.WithLabelValues(event).Inc()

	c.mu.Lock()
	c.entry(event).Published++
	rate, ok := c.rates[event]
	if !ok {
		rate = NewRateMeter(c.clk)
		c.rates[event] = rate
	}
	c.mu.Unlock()

	rate.Add(1)
}

// Delivered 记录一次处理器调用
func (c *Collector) Delivered(event, thread string) {
	c.delivered.WithLabelValues(event, thread).Inc()

	c.mu.Lock()
	c.entry(event).Delivered++
	c.mu.Unlock()
}

// Pruned 记录回收的订阅
func (c *Collector) Pruned(event string, n int) {
	if n <= 0 {
		return
	}
	c.pruned.WithLabelValues(event).Add(float64(n))

	c.mu.Lock()
	c.entry(event).Pruned += int64(n)
	c.mu.Unlock()

	logger.Debug("回收失效订阅", "event", event, "count", n)
}

// Faulted 记录处理器 panic
func (c *Collector) Faulted(event, thread string) {
	c.faults.WithLabelValues(event, thread).Inc()

	c.mu.Lock()
	c.entry(event).Faults++
	c.mu.Unlock()
}

// Subscribers 更新订阅数
func (c *Collector) Subscribers(event string, n int) {
	c.subscribers.WithLabelValues(event).Set(float64(n))

	c.mu.Lock()
	c.entry(event).Subscribers = n
	c.mu.Unlock()
}

// entry 调用者持有锁
func (c *Collector) entry(event string) *EventStats {
	s, ok := c.stats[event]
	if !ok {
		s = &EventStats{Event: event}
		c.stats[event] = s
	}
	return s
}

// Snapshot 返回按事件名排序的统计快照
func (c *Collector) Snapshot() []EventStats {
	c.mu.Lock()
	out := make([]EventStats, 0, len(c.stats))
	rates := make([]*RateMeter, 0, len(c.stats))
	for name, s := range c.stats {
		out = append(out, *s)
		rates = append(rates, c.rates[name])
	}
	c.mu.Unlock()

	for i, r := range rates {
		if r != nil {
			out[i].PublishRate = r.Rate()
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event < out[j].Event })
	return out
}

// String 便于日志输出
func (s EventStats) String() string {
	return s.Event + " published=" + strconv.FormatInt(s.Published, 10) +
		" delivered=" + strconv.FormatInt(s.Delivered, 10) +
		" faults=" + strconv.FormatInt(s.Faults, 10) +
		" subscribers=" + strconv.Itoa(s.Subscribers)
}

// ============================================================================
// 空观察者
// ============================================================================

// NopObserver 指标关闭时使用的空观察者
type NopObserver struct{}

var _ interfaces.MessengerObserver = NopObserver{}

func (NopObserver) Published(string, int)    {}
func (NopObserver) Delivered(string, string) {}
func (NopObserver) Pruned(string, int)       {}
func (NopObserver) Faulted(string, string)   {}
func (NopObserver) Subscribers(string, int)  {}
