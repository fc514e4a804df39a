package signal

import "weak"

// adapter 连接记录，同时也是返回给订阅者的 Disposable。
// 对 Signal 只持有弱引用，Signal 被回收后 Dispose 什么也不做。
type adapter[T any] struct {
	signal   weak.Pointer[Signal[T]]
	observer Observer[T]
}

func newAdapter[T any](s *Signal[T], observer Observer[T]) *adapter[T] {
	return &adapter[T]{
		signal:   weak.Make(s),
		observer: observer,
	}
}

func (ad *adapter[T]) Detect(value T) {
	ad.observer.Detect(value)
}

func (ad *adapter[T]) Dispose() {
	if s := ad.signal.Value(); s != nil {
		s.disconnect(ad)
	}
}
