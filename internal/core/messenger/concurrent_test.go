package messenger

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_SubscribeUnsubscribePublish 并发订阅、取消和发布不破坏订阅列表
func TestConcurrent_SubscribeUnsubscribePublish(t *testing.T) {
	ev := GetEvent[intEvent](NewAggregator())

	var stable atomic.Int64
	_, err := ev.Subscribe(func(int) { stable.Add(1) })
	require.NoError(t, err)

	const (
		workers    = 8
		iterations = 200
	)

	var wg sync.WaitGroup
	wg.Add(workers * 2)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				token, err := ev.Subscribe(func(int) {})
				if err != nil {
					t.Error(err)
					return
				}
				ev.Unsubscribe(token)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				_ = ev.Publish(j)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ev.Len())
	assert.Equal(t, int64(workers*iterations), stable.Load())
}

// TestConcurrent_NoDuplicateInvocation 每次发布每个订阅者最多调用一次
func TestConcurrent_NoDuplicateInvocation(t *testing.T) {
	var ev PubSubEvent[int]

	const subscribers = 16
	counts := make([]atomic.Int32, subscribers)
	for i := 0; i < subscribers; i++ {
		_, err := ev.Subscribe(func(int) { counts[i].Add(1) })
		require.NoError(t, err)
	}

	const publishers = 4
	var wg sync.WaitGroup
	wg.Add(publishers)
	for p := 0; p < publishers; p++ {
		go func() {
			defer wg.Done()
			_ = ev.Publish(p)
		}()
	}
	wg.Wait()

	for i := range counts {
		assert.Equal(t, int32(publishers), counts[i].Load())
	}
}

// TestConcurrent_UnsubscribeFromHandler 处理器内取消自身订阅不会死锁
func TestConcurrent_UnsubscribeFromHandler(t *testing.T) {
	var ev PubSubEvent[int]

	var token SubscriptionToken
	n := 0
	token, err := ev.Subscribe(func(int) {
		n++
		ev.Unsubscribe(token)
	})
	require.NoError(t, err)

	require.NoError(t, ev.Publish(1))
	require.NoError(t, ev.Publish(2))
	assert.Equal(t, 1, n)
	assert.Zero(t, ev.Len())
}
