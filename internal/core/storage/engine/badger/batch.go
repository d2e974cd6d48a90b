package badger

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-winbus/internal/core/storage/engine"
)

// WriteBatch BadgerDB 批量写入实现
type WriteBatch struct {
	db      *Engine
	batch   *badger.WriteBatch
	puts    int
	deletes int
	err     error
	done    bool
}

// Put 添加一个写入操作到批量中
func (b *WriteBatch) Put(key, value []byte) {
	if b.done || b.err != nil || len(key) == 0 {
		return
	}
	// 错误延迟到 Write 返回
	if b.err = b.batch.Set(key, value); b.err == nil {
		b.puts++
	}
}

// Delete 添加一个删除操作到批量中
func (b *WriteBatch) Delete(key []byte) {
	if b.done || b.err != nil || len(key) == 0 {
		return
	}
	if b.err = b.batch.Delete(key); b.err == nil {
		b.deletes++
	}
}

// Write 执行批量写入
func (b *WriteBatch) Write() error {
	if b.done {
		return engine.ErrBatchClosed
	}
	if b.db.closed.Load() {
		b.Cancel()
		return engine.ErrClosed
	}
	b.done = true

	if b.err != nil {
		b.batch.Cancel()
		return convertError(b.err)
	}
	if err := b.batch.Flush(); err != nil {
		return convertError(err)
	}

	b.db.stats.writes.Add(int64(b.puts))
	b.db.stats.deletes.Add(int64(b.deletes))
	return nil
}

// Cancel 放弃未提交的操作
func (b *WriteBatch) Cancel() {
	if b.done {
		return
	}
	b.done = true
	b.batch.Cancel()
}

// Size 返回批量中的操作数量
func (b *WriteBatch) Size() int {
	return b.puts + b.deletes
}

// 编译时检查接口实现
var _ engine.Batch = (*WriteBatch)(nil)
