// Package metrics 采集消息总线运行指标
//
// Collector 实现 interfaces.MessengerObserver，把发布、投递、回收、
// 故障和订阅数导出为 Prometheus 指标，并为每个事件维护最近 60 秒的
// 发布速率。
//
// # 指标
//
//	winbus_messenger_published_total{event}
//	winbus_messenger_delivered_total{event,thread}
//	winbus_messenger_pruned_total{event}
//	winbus_messenger_faults_total{event,thread}
//	winbus_messenger_subscribers{event}
//
// 命名空间由 MetricsConfig.Namespace 决定。Collector 使用独立的
// prometheus.Registry，通过 Handler() 暴露。
//
// # Fx 模块
//
//	app := fx.New(
//	    metrics.Module(),
//	    messenger.Module(),
//	)
//
// 指标关闭时模块提供空观察者，消息总线的行为不受影响。
package metrics
