package signal

import (
	"github.com/dzm2020/actress/pkg/actor"
	"github.com/dzm2020/actress/pkg/dispatch"
)

// MethodSlot 收到值时调用 receiver 的方法，通常是一个 actor 方法，例如 (*Receiver).DidReceive
type MethodSlot[A any, T any] struct {
	receiver A
	method   func(A, T)
}

func NewMethodSlot[A any, T any](receiver A, method func(A, T)) MethodSlot[A, T] {
	return MethodSlot[A, T]{receiver: receiver, method: method}
}

func (s MethodSlot[A, T]) Detect(value T) {
	s.method(s.receiver, value)
}

// ClosureSlot 收到值时把 fn 投递到指定队列上执行
type ClosureSlot[T any] struct {
	queue *dispatch.Queue
	fn    func(T)
}

func NewClosureSlot[T any](queue *dispatch.Queue, fn func(T)) ClosureSlot[T] {
	return ClosureSlot[T]{queue: queue, fn: fn}
}

// ClosureSlotFor fn 在 actor 的队列上执行
func ClosureSlotFor[T any](a *actor.Actor, fn func(T)) ClosureSlot[T] {
	return NewClosureSlot(a.Queue(), fn)
}

func (s ClosureSlot[T]) Detect(value T) {
	s.queue.Async(func() {
		s.fn(value)
	})
}
