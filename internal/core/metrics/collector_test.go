package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollector_Counters 测试计数器随观察事件递增
func TestCollector_Counters(t *testing.T) {
	c, err := NewCollector("winbus", clock.NewMock())
	require.NoError(t, err)

	c.Published("Price", 2)
	c.Published("Price", 2)
	c.Delivered("Price", "ui")
	c.Delivered("Price", "background")
	c.Faulted("Price", "background")
	c.Pruned("Price", 3)
	c.Pruned("Price", 0)
	c.Subscribers("Price", 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.published.WithLabelValues("Price")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.delivered.WithLabelValues("Price", "ui")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.faults.WithLabelValues("Price", "background")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.pruned.WithLabelValues("Price")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.subscribers.WithLabelValues("Price")))
}

// TestCollector_Snapshot 测试快照内容和排序
func TestCollector_Snapshot(t *testing.T) {
	c, err := NewCollector("winbus", clock.NewMock())
	require.NoError(t, err)

	c.Subscribers("b", 1)
	c.Published("a", 1)
	c.Delivered("a", "publisher")

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].Event)
	assert.Equal(t, int64(1), snap[0].Published)
	assert.Equal(t, int64(1), snap[0].Delivered)
	assert.InDelta(t, 1.0/60.0, snap[0].PublishRate, 1e-9)
	assert.Equal(t, "b", snap[1].Event)
	assert.Equal(t, 1, snap[1].Subscribers)
	assert.Zero(t, snap[1].PublishRate)
}

// TestCollector_Handler 测试 /metrics 输出
func TestCollector_Handler(t *testing.T) {
	c, err := NewCollector("winbus", nil)
	require.NoError(t, err)
	c.Published("Price", 1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `winbus_messenger_published_total{event="Price"} 1`), body)
}

// TestRateMeter_Window 测试滑动窗口过期
func TestRateMeter_Window(t *testing.T) {
	clk := clock.NewMock()
	r := NewRateMeter(clk)

	r.Add(30)
	clk.Add(10 * time.Second)
	r.Add(30)
	assert.Equal(t, int64(60), r.Total())
	assert.InDelta(t, 1.0, r.Rate(), 1e-9)

	clk.Add(55 * time.Second)
	assert.Equal(t, int64(30), r.Total())

	clk.Add(2 * time.Minute)
	assert.Zero(t, r.Total())
}
