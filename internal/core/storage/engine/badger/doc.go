// Package badger 实现 BadgerDB 存储引擎
//
//	eng, err := badger.New(engine.Config{InMemory: true})
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	err = eng.Put([]byte("key"), []byte("value"))
//	value, err := eng.Get([]byte("key"))
//
// 磁盘模式下后台定期执行 value log GC。
package badger
