package messenger

import (
	"sync"
	"sync/atomic"
)

// intEvent 测试用事件类型
type intEvent struct {
	PubSubEvent[int]
}

// pingSignal 测试用无载荷事件
type pingSignal struct {
	Signal
}

// viewModel 测试用订阅者
//
// 含指针字段，避免被分配到 tiny 分配器（弱指针回收会被延迟）。
type viewModel struct {
	name string
	hits *atomic.Int32
	min  int
}

func (vm *viewModel) onValue(int) {
	vm.hits.Add(1)
}

func (vm *viewModel) onPing() {
	vm.hits.Add(1)
}

func (vm *viewModel) accepts(v int) bool {
	return v >= vm.min
}

// queueDispatcher 手动排空的 UI 调度器
type queueDispatcher struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
}

func (d *queueDispatcher) Post(fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	d.queue = append(d.queue, fn)
	return true
}

func (d *queueDispatcher) pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *queueDispatcher) drain() {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}

// recordingObserver 记录观察者回调
type recordingObserver struct {
	mu          sync.Mutex
	published   int
	delivered   map[string]int
	pruned      int
	faulted     map[string]int
	subscribers int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{delivered: map[string]int{}, faulted: map[string]int{}}
}

func (o *recordingObserver) Published(string, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.published++
}

func (o *recordingObserver) Delivered(_ string, thread string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.delivered[thread]++
}

func (o *recordingObserver) Pruned(_ string, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pruned += n
}

func (o *recordingObserver) Faulted(_ string, thread string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.faulted[thread]++
}

func (o *recordingObserver) Subscribers(_ string, n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = n
}

func (o *recordingObserver) snapshot() *recordingObserver {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := &recordingObserver{
		published:   o.published,
		pruned:      o.pruned,
		subscribers: o.subscribers,
		delivered:   map[string]int{},
		faulted:     map[string]int{},
	}
	for k, v := range o.delivered {
		out.delivered[k] = v
	}
	for k, v := range o.faulted {
		out.faulted[k] = v
	}
	return out
}
