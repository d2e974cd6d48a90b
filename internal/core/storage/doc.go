// Package storage 提供 winbus 的持久化存储
//
// 分层结构：
//
//	storage            Fx 模块，按 StorageConfig 创建引擎
//	storage/engine     引擎接口（批量写入、前缀迭代）和错误
//	storage/engine/badger  BadgerDB 实现，支持磁盘和内存模式
//	storage/kv         带前缀隔离的 KV 存储，提供 JSON 便捷方法
//
// 设置服务使用 "settings/" 前缀保存窗口布局和刷新间隔。
package storage
