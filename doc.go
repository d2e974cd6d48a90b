// Package winbus 提供进程内的发布/订阅消息总线及其窗口管理示例应用
//
// 消息总线让互不引用的组件通过强类型事件通信：发布者和订阅者只共享
// 事件类型。订阅可以持有弱引用，不会延长订阅者的生命周期；处理器可以
// 在发布者线程、UI 线程或后台执行。
//
// # 快速开始
//
//	app, err := winbus.New(
//	    winbus.WithDataDir("./data"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Stop(context.Background())
//
//	// 请求刷新窗口列表，结果在 UI 线程上更新视图模型
//	_ = app.WindowList().Refresh()
//
// # 自定义事件
//
//	type PriceChanged struct {
//	    winbus.PubSubEvent[float64]
//	}
//
//	ev := winbus.GetEvent[PriceChanged](app.Aggregator())
//	token, _ := ev.Subscribe(func(p float64) { ... }, winbus.OnThread(winbus.UIThread))
//	_ = ev.Publish(42)
//	ev.Unsubscribe(token)
//
// # 组件
//
//	dispatch    UI 循环和后台调度器
//	messenger   事件聚合器
//	metrics     Prometheus 指标
//	storage     BadgerDB 持久化
//	settings    设置服务和导入文件监听
//	windows     窗口清单刷新和布局匹配
//	viewmodel   窗口列表和状态栏视图模型
package winbus
