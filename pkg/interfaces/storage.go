// Package interfaces - Storage 存储引擎接口
//
// 设置服务通过该接口持久化用户配置（窗口布局等），
// 默认实现基于 BadgerDB。
package interfaces

// Engine 存储引擎基础接口
//
// 线程安全：实现必须保证所有方法的线程安全性。
type Engine interface {
	// Get 获取指定键的值
	//
	// 键不存在时返回 ErrNotFound。返回值是副本，调用者可以安全修改。
	Get(key []byte) ([]byte, error)

	// Put 设置键值对，已存在则覆盖
	Put(key, value []byte) error

	// Delete 删除指定键，键不存在不返回错误
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Stats 返回运行时统计
	Stats() EngineStats

	// Close 关闭存储引擎，多次调用是安全的
	Close() error
}

// EngineStats 引擎统计信息
type EngineStats struct {
	// Reads 读取次数
	Reads int64 `json:"reads"`

	// Writes 写入次数
	Writes int64 `json:"writes"`

	// Deletes 删除次数
	Deletes int64 `json:"deletes"`
}
