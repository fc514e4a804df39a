package signal

import "github.com/dzm2020/actress/pkg/dispose"

const mapProcessorName = "MapProcessor"

// Map 订阅 src，对每个值执行 f 后从返回的派生 Signal 发出。
// 派生 Signal 的最后一个 observer 断开时，会一并释放对 src 的订阅。
func Map[T any, U any](src Observable[T], f func(T) U) *Signal[U] {
	processor := New[U](WithName(mapProcessorName), WithDisposeOnLastDisconnect())
	src.Connect(ClosureSlotFor(processor.Actor, func(value T) {
		processor.Emit(f(value))
	}), processor.Queue(), func(d dispose.Disposable) {
		processor.adopt(d)
	})
	return processor
}
