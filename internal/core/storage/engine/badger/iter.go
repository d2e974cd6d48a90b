package badger

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-winbus/internal/core/storage/engine"
)

// Iterator BadgerDB 迭代器实现
//
// 迭代器持有只读事务，看到的是创建时的快照。
type Iterator struct {
	txn    *badger.Txn
	iter   *badger.Iterator
	prefix []byte
	closed bool
	err    error
}

// First 移动到第一个键值对
func (it *Iterator) First() bool {
	if it.closed {
		return false
	}
	it.iter.Seek(it.prefix)
	return it.Valid()
}

// Next 移动到下一个键值对
func (it *Iterator) Next() bool {
	if it.closed {
		return false
	}
	it.iter.Next()
	return it.Valid()
}

// Valid 检查迭代器是否指向有效位置
func (it *Iterator) Valid() bool {
	if it.closed {
		return false
	}
	return it.iter.ValidForPrefix(it.prefix)
}

// Key 返回当前键
func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.iter.Item().KeyCopy(nil)
}

// Value 返回当前值
func (it *Iterator) Value() []byte {
	if !it.Valid() {
		return nil
	}
	value, err := it.iter.Item().ValueCopy(nil)
	if err != nil {
		it.err = err
		return nil
	}
	return value
}

// Close 关闭迭代器
func (it *Iterator) Close() {
	if it.closed {
		return
	}
	it.closed = true
	it.iter.Close()
	it.txn.Discard()
}

// Error 返回迭代过程中的错误
func (it *Iterator) Error() error {
	return it.err
}

// closedIterator 引擎关闭后返回的空迭代器
type closedIterator struct{}

func (closedIterator) First() bool   { return false }
func (closedIterator) Next() bool    { return false }
func (closedIterator) Valid() bool   { return false }
func (closedIterator) Key() []byte   { return nil }
func (closedIterator) Value() []byte { return nil }
func (closedIterator) Close()        {}
func (closedIterator) Error() error  { return engine.ErrClosed }

// 编译时检查接口实现
var (
	_ engine.Iterator = (*Iterator)(nil)
	_ engine.Iterator = closedIterator{}
)
