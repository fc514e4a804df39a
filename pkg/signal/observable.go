// Package signal 基于 actor 的发布订阅：Signal 串行化 connect / emit / disconnect，
// Map 在其上组合出派生信号。
package signal

import (
	"github.com/dzm2020/actress/pkg/actor"
	"github.com/dzm2020/actress/pkg/dispatch"
	"github.com/dzm2020/actress/pkg/dispose"
)

// Observable 可以被观察的值来源
type Observable[T any] interface {
	// Connect 连接 observer，返回的 Disposable 投递到 queue 上的 cont，释放它即断开连接
	Connect(observer Observer[T], queue *dispatch.Queue, cont actor.Continuation[dispose.Disposable])
	// Emit 把 value 发给所有已连接的 observer
	Emit(value T)
}

// Observer 接收 Observable 发出的值
type Observer[T any] interface {
	Detect(value T)
}

// ObserverFunc 同步执行的 Observer，fn 运行在 Signal 的队列上
type ObserverFunc[T any] func(value T)

func (f ObserverFunc[T]) Detect(value T) {
	f(value)
}
