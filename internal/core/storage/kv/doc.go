// Package kv 提供带前缀隔离的 KV 存储
//
// Store 为所有键自动添加前缀，不同组件可以共享同一个引擎。
//
// # 键空间
//
//   - settings/meta        当前设置（活动布局、刷新间隔）
//   - settings/profile/    每个窗口布局一条记录
//
// # 使用示例
//
//	store := kv.New(eng, []byte("settings/"))
//	err := store.PutJSON([]byte("meta"), meta)
//	err = store.GetJSON([]byte("meta"), &meta)
package kv
