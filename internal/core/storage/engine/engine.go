package engine

import (
	"errors"
	"os"

	"github.com/dep2p/go-winbus/pkg/interfaces"
)

// Engine 内部扩展接口
type Engine interface {
	interfaces.Engine

	// NewBatch 创建批量写入对象，Write 时原子提交
	NewBatch() Batch

	// NewPrefixIterator 创建前缀迭代器，调用者负责 Close
	NewPrefixIterator(prefix []byte) Iterator
}

// Batch 批量写入接口
//
// Batch 不是线程安全的。
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)

	// Write 提交全部操作，提交后 Batch 不可再用
	Write() error

	// Cancel 放弃未提交的操作
	Cancel()

	// Size 待提交的操作数量
	Size() int
}

// Iterator 迭代器接口
//
//	iter := eng.NewPrefixIterator(prefix)
//	defer iter.Close()
//
//	for iter.First(); iter.Valid(); iter.Next() {
//	    key, value := iter.Key(), iter.Value()
//	}
//	if err := iter.Error(); err != nil {
//	    return err
//	}
type Iterator interface {
	First() bool
	Next() bool
	Valid() bool

	// Key 返回当前键的副本
	Key() []byte

	// Value 返回当前值的副本
	Value() []byte

	Close()
	Error() error
}

// Config 引擎配置
type Config struct {
	// Path 数据库目录，InMemory 时忽略
	Path string

	// InMemory 仅使用内存
	InMemory bool

	// SyncWrites 每次写入同步到磁盘
	SyncWrites bool
}

// Validate 验证配置
func (c Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.Join(ErrInvalidConfig, errors.New("path is required"))
	}
	return nil
}

// EnsureDir 确保数据目录存在
func (c Config) EnsureDir() error {
	if c.InMemory {
		return nil
	}
	return os.MkdirAll(c.Path, 0o755)
}
